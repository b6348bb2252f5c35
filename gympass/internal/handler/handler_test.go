package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gym-server/gympass/internal/mocks"
	"gym-server/gympass/internal/service"
	"gym-server/shared/i18n"
	sharedMocks "gym-server/shared/interfaces/mocks"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	e        *echo.Echo
	offers   *mocks.OfferService
	passes   *mocks.GymPassService
	verifier *sharedMocks.TokenVerifier
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	v := validator.New()
	tr, err := i18n.NewTranslator(v)
	require.NoError(t, err)

	env := &testEnv{
		offers:   new(mocks.OfferService),
		passes:   new(mocks.GymPassService),
		verifier: new(sharedMocks.TokenVerifier),
	}
	env.e = echo.New()
	env.e.Validator = i18n.NewEchoValidator(v)
	env.e.Use(sharedMiddleware.EchoLocale())
	NewGymPassHandler(env.offers, env.passes, env.verifier, tr, zap.NewNop()).RegisterRoutes(env.e)

	t.Cleanup(func() {
		env.offers.AssertExpectations(t)
		env.passes.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) loginAs(token string, userID uuid.UUID, roles ...string) map[string]string {
	e.verifier.On("VerifyToken", mock.Anything, token).Return(&models.Claims{UserID: userID, Roles: roles}, nil)
	return map[string]string{"Authorization": "Bearer " + token}
}

func doJSON(h http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListOffersIsPublic(t *testing.T) {
	env := setup(t)
	env.offers.On("ListOffers", mock.Anything).Return([]models.GymPassOffer{{Title: "Open"}}, nil).Once()

	w := doJSON(env.e, http.MethodGet, "/gympass/offers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Open"`)
}

func TestCreateOffer(t *testing.T) {
	body := map[string]interface{}{
		"title": "Open", "amount": 99.5, "currency": "PLN",
		"timeUnit": "MONTH", "duration": 1,
	}

	t.Run("member is forbidden", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", uuid.New(), models.RoleUser)

		w := doJSON(env.e, http.MethodPost, "/gympass/offers", body, headers)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("manager creates", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("manager", uuid.New(), models.RoleUser, models.RoleManager)
		env.offers.On("CreateOffer", mock.Anything, mock.MatchedBy(func(in service.OfferInput) bool {
			return in.TimeUnit == models.TimeUnitMonth && in.Duration == 1
		})).Return(&models.GymPassOffer{ID: uuid.New(), Title: "Open"}, nil).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/offers", body, headers)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation details are localized", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("manager", uuid.New(), models.RoleManager)
		headers["Accept-Language"] = "ru"

		w := doJSON(env.e, http.MethodPost, "/gympass/offers", map[string]interface{}{"title": "Open", "timeUnit": "DECADE"}, headers)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, models.ErrCodeValidation, resp.Code)
		assert.Contains(t, resp.Details, "timeUnit")
		assert.Contains(t, resp.Details, "currency")
	})

	t.Run("duplicate title", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("admin", uuid.New(), models.RoleAdmin)
		env.offers.On("CreateOffer", mock.Anything, mock.Anything).Return(nil, models.ErrOfferTitleTaken).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/offers", body, headers)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, models.ErrCodeOfferTitleTaken, decodeError(t, w).Code)
	})
}

func TestPurchase(t *testing.T) {
	userID := uuid.New()
	offerID := uuid.New()

	t.Run("requires auth", func(t *testing.T) {
		env := setup(t)
		w := doJSON(env.e, http.MethodPost, "/gympass/purchases", map[string]string{"offerId": offerID.String()}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("passes start date", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)
		start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		env.passes.On("Purchase", mock.Anything, models.Actor{UserID: userID, Roles: []string{models.RoleUser}},
			mock.MatchedBy(func(in service.PurchaseInput) bool {
				return in.OfferID == offerID && in.UserID == nil && in.StartDate != nil && in.StartDate.Equal(start)
			}),
		).Return(&models.PurchasedGymPass{ID: uuid.New(), OfferTitle: "Open", StartDate: start, EndDate: start.AddDate(0, 1, -1)}, nil).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases",
			map[string]string{"offerId": offerID.String(), "startDate": "2026-05-01"}, headers)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"endDate":"2026-05-31"`)
	})

	t.Run("bad date format", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases",
			map[string]string{"offerId": offerID.String(), "startDate": "01.05.2026"}, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeValidation, decodeError(t, w).Code)
	})

	t.Run("past start", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)
		env.passes.On("Purchase", mock.Anything, mock.Anything, mock.Anything).Return(nil, models.ErrInvalidStartDate).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases",
			map[string]string{"offerId": offerID.String(), "startDate": "2020-01-01"}, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, models.ErrCodeInvalidStartDate, decodeError(t, w).Code)
	})
}

func TestRegisterEntry(t *testing.T) {
	passID := uuid.New()

	t.Run("employee only", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", uuid.New(), models.RoleUser)

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases/"+passID.String()+"/entries", nil, headers)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("expired pass", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("employee", uuid.New(), models.RoleEmployee)
		env.passes.On("RegisterEntry", mock.Anything, mock.Anything, passID).Return(nil, models.ErrGymPassExpired).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases/"+passID.String()+"/entries", nil, headers)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, models.ErrCodeGymPassExpired, decodeError(t, w).Code)
	})

	t.Run("accepted", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("employee", uuid.New(), models.RoleEmployee)
		env.passes.On("RegisterEntry", mock.Anything, mock.Anything, passID).
			Return(&models.PurchasedGymPass{ID: passID, EntriesLeft: models.IntPtr(4)}, nil).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases/"+passID.String()+"/entries", nil, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"entriesLeft":4`)
	})
}

func TestSuspend(t *testing.T) {
	passID := uuid.New()
	userID := uuid.New()

	t.Run("parses date", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)
		until := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
		env.passes.On("Suspend", mock.Anything, mock.Anything, passID, until).
			Return(&models.PurchasedGymPass{ID: passID, SuspensionDate: &until}, nil).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases/"+passID.String()+"/suspend", map[string]string{"until": "2026-03-20"}, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"suspensionDate":"2026-03-20"`)
	})

	t.Run("not time limited", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)
		env.passes.On("Suspend", mock.Anything, mock.Anything, passID, mock.Anything).Return(nil, models.ErrGymPassNotTimeLimited).Once()

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases/"+passID.String()+"/suspend", map[string]string{"until": "2026-03-20"}, headers)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)

		w := doJSON(env.e, http.MethodPost, "/gympass/purchases/xyz/suspend", map[string]string{"until": "2026-03-20"}, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStatusAndLists(t *testing.T) {
	userID := uuid.New()
	pass := &models.PurchasedGymPass{ID: uuid.New(), UserID: userID}

	t.Run("status", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)
		env.passes.On("Status", mock.Anything, mock.Anything, pass.ID).
			Return(&service.PassStatus{Pass: pass, Status: models.GymPassNoEntries}, nil).Once()

		w := doJSON(env.e, http.MethodGet, "/gympass/purchases/"+pass.ID.String()+"/status", nil, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"NO_ENTRIES"`)
	})

	t.Run("mine", func(t *testing.T) {
		env := setup(t)
		headers := env.loginAs("member", userID, models.RoleUser)
		env.passes.On("ListForUser", mock.Anything, mock.Anything, userID).
			Return([]service.PassStatus{{Pass: pass, Status: models.GymPassValid}}, nil).Once()

		w := doJSON(env.e, http.MethodGet, "/gympass/purchases/me", nil, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"VALID"`)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		env := setup(t)
		other := uuid.New()
		headers := env.loginAs("member", userID, models.RoleUser)
		env.passes.On("ListForUser", mock.Anything, mock.Anything, other).Return(nil, models.ErrForbidden).Once()

		w := doJSON(env.e, http.MethodGet, "/gympass/purchases/users/"+other.String(), nil, headers)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
