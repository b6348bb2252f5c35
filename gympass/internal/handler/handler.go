package handler

import (
	"errors"
	"net/http"

	"gym-server/gympass/internal/service"
	"gym-server/shared/i18n"
	"gym-server/shared/interfaces"
	sharedMiddleware "gym-server/shared/middleware"
	"gym-server/shared/models"
	"gym-server/shared/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GymPassHandler - HTTP API абонементов.
type GymPassHandler struct {
	offers     service.OfferService
	passes     service.GymPassService
	verifier   interfaces.TokenVerifier
	translator *i18n.Translator
	logger     *zap.Logger
}

func NewGymPassHandler(
	offers service.OfferService,
	passes service.GymPassService,
	verifier interfaces.TokenVerifier,
	translator *i18n.Translator,
	logger *zap.Logger,
) *GymPassHandler {
	return &GymPassHandler{
		offers:     offers,
		passes:     passes,
		verifier:   verifier,
		translator: translator,
		logger:     logger.Named("GymPassHandler"),
	}
}

// RegisterRoutes регистрирует маршруты /gympass.
func (h *GymPassHandler) RegisterRoutes(e *echo.Echo) {
	auth := sharedMiddleware.EchoAuth(h.verifier, h.translator, h.logger)
	managers := sharedMiddleware.EchoRequireRoles(h.translator, models.RoleManager, models.RoleAdmin)
	employees := sharedMiddleware.EchoRequireRoles(h.translator, models.RoleEmployee)

	g := e.Group("/gympass")

	// каталог открыт всем
	g.GET("/offers", h.listOffers)
	g.GET("/offers/:id", h.getOffer)
	g.POST("/offers", h.createOffer, auth, managers)
	g.PUT("/offers/:id", h.updateOffer, auth, managers)
	g.DELETE("/offers/:id", h.deleteOffer, auth, managers)

	purchases := g.Group("/purchases", auth)
	{
		purchases.POST("", h.purchase)
		purchases.GET("/me", h.listMine)
		purchases.GET("/users/:user_id", h.listForUser)
		purchases.GET("/:id/status", h.status)
		purchases.POST("/:id/entries", h.registerEntry, employees)
		purchases.POST("/:id/suspend", h.suspend)
	}
}

func (h *GymPassHandler) actor(c echo.Context) (models.Actor, error) {
	userID, ok := sharedMiddleware.EchoUserID(c)
	if !ok {
		return models.Actor{}, errors.New("context missing user id")
	}
	return models.Actor{UserID: userID, Roles: sharedMiddleware.EchoRoles(c)}, nil
}

func (h *GymPassHandler) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func (h *GymPassHandler) listOffers(c echo.Context) error {
	offers, err := h.offers.ListOffers(c.Request().Context())
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": offers})
}

func (h *GymPassHandler) getOffer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.badRequest(c)
	}
	offer, err := h.offers.GetOffer(c.Request().Context(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, offer)
}

func (h *GymPassHandler) createOffer(c echo.Context) error {
	var req offerRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return h.handleBindError(c, err)
	}
	offer, err := h.offers.CreateOffer(c.Request().Context(), req.toInput())
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, offer)
}

func (h *GymPassHandler) updateOffer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.badRequest(c)
	}
	var req offerRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return h.handleBindError(c, err)
	}
	offer, err := h.offers.UpdateOffer(c.Request().Context(), id, req.toInput())
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, offer)
}

func (h *GymPassHandler) deleteOffer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.badRequest(c)
	}
	if err := h.offers.DeleteOffer(c.Request().Context(), id); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *GymPassHandler) purchase(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	var req purchaseRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return h.handleBindError(c, err)
	}

	in := service.PurchaseInput{OfferID: uuid.MustParse(req.OfferID)}
	if req.UserID != nil {
		uid := uuid.MustParse(*req.UserID)
		in.UserID = &uid
	}
	if req.StartDate != nil {
		start, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			return h.badRequest(c)
		}
		in.StartDate = &start
	}

	pass, err := h.passes.Purchase(c.Request().Context(), actor, in)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	purchasesTotal.WithLabelValues(pass.OfferTitle).Inc()
	return c.JSON(http.StatusCreated, toGymPassResponse(pass, ""))
}

func (h *GymPassHandler) listMine(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	items, err := h.passes.ListForUser(c.Request().Context(), actor, actor.UserID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toGymPassList(items)})
}

func (h *GymPassHandler) listForUser(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return h.badRequest(c)
	}
	items, err := h.passes.ListForUser(c.Request().Context(), actor, userID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toGymPassList(items)})
}

func (h *GymPassHandler) status(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	passID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.badRequest(c)
	}
	st, err := h.passes.Status(c.Request().Context(), actor, passID)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toGymPassResponse(st.Pass, st.Status))
}

func (h *GymPassHandler) registerEntry(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	passID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.badRequest(c)
	}

	pass, err := h.passes.RegisterEntry(c.Request().Context(), actor, passID)
	if err != nil {
		entriesTotal.WithLabelValues("rejected").Inc()
		return h.handleServiceError(c, err)
	}
	entriesTotal.WithLabelValues("accepted").Inc()
	return c.JSON(http.StatusOK, toGymPassResponse(pass, models.GymPassValid))
}

func (h *GymPassHandler) suspend(c echo.Context) error {
	actor, err := h.actor(c)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	passID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return h.badRequest(c)
	}
	var req suspendRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return h.handleBindError(c, err)
	}
	until, err := utils.ParseDate(req.Until)
	if err != nil {
		return h.badRequest(c)
	}

	pass, err := h.passes.Suspend(c.Request().Context(), actor, passID, until)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toGymPassResponse(pass, models.GymPassSuspended))
}
