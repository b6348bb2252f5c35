package i18n

import (
	"testing"

	"gym-server/shared/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func newTestTranslator(t *testing.T) (*Translator, *validator.Validate) {
	t.Helper()
	v := validator.New()
	tr, err := NewTranslator(v)
	require.NoError(t, err)
	return tr, v
}

func TestParseAcceptLanguage(t *testing.T) {
	cases := map[string]string{
		"":                        LocaleEN,
		"ru-RU,ru;q=0.9,en;q=0.8": LocaleRU,
		"en-US":                   LocaleEN,
		"de-DE":                   LocaleEN,
		"garbage;;q=x":            LocaleEN,
	}
	for header, want := range cases {
		assert.Equal(t, want, ParseAcceptLanguage(header), "header %q", header)
	}
}

func TestMessage(t *testing.T) {
	tr, _ := newTestTranslator(t)

	assert.Equal(t, "Gym pass not found", tr.Message(LocaleEN, models.ErrCodeGymPassNotFound))
	assert.Equal(t, "Абонемент не найден", tr.Message(LocaleRU, models.ErrCodeGymPassNotFound))
	assert.Equal(t, "Gym pass not found", tr.Message("xx", models.ErrCodeGymPassNotFound))
	assert.Equal(t, "SOME_UNKNOWN_CODE", tr.Message(LocaleRU, "SOME_UNKNOWN_CODE"))
}

func TestValidationDetails(t *testing.T) {
	tr, v := newTestTranslator(t)

	err := v.Struct(registerRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	details := tr.ValidationDetails(LocaleEN, err)
	require.Len(t, details, 2)
	assert.Contains(t, details, "email")
	assert.Contains(t, details["password"], "at least one letter and one digit")

	detailsRU := tr.ValidationDetails(LocaleRU, err)
	assert.Contains(t, detailsRU["password"], "хотя бы одну букву")

	assert.Nil(t, tr.ValidationDetails(LocaleEN, assert.AnError))
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("secret123"))
	assert.True(t, IsStrongPassword("пароль123"))
	assert.False(t, IsStrongPassword("12345678"))
	assert.False(t, IsStrongPassword("onlyletters"))
	assert.False(t, IsStrongPassword("a1"))
}
