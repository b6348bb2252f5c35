// Package i18n локализует сообщения об ошибках API и ошибки валидации.
package i18n

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
	"golang.org/x/text/language"
)

const (
	LocaleEN      = "en"
	LocaleRU      = "ru"
	DefaultLocale = LocaleEN
)

var (
	supportedTags = []language.Tag{language.English, language.Russian}
	matcher       = language.NewMatcher(supportedTags)
)

// Translator хранит переводчики для всех поддерживаемых локалей.
type Translator struct {
	uni *ut.UniversalTranslator
}

// NewTranslator настраивает validator (json-имена полей, правило password) и регистрирует
// переводы ошибок валидации и каталог сообщений API. v может быть nil, если валидация не нужна.
func NewTranslator(v *validator.Validate) (*Translator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, ru.New())

	enTrans, _ := uni.GetTranslator(LocaleEN)
	ruTrans, _ := uni.GetTranslator(LocaleRU)

	if err := addCatalog(enTrans, catalogEN); err != nil {
		return nil, err
	}
	if err := addCatalog(ruTrans, catalogRU); err != nil {
		return nil, err
	}
	if err := addCatalog(enTrans, pushEN); err != nil {
		return nil, err
	}
	if err := addCatalog(ruTrans, pushRU); err != nil {
		return nil, err
	}

	if v != nil {
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("password", validatePassword); err != nil {
			return nil, fmt.Errorf("register password rule: %w", err)
		}
		if err := en_translations.RegisterDefaultTranslations(v, enTrans); err != nil {
			return nil, fmt.Errorf("register en validation translations: %w", err)
		}
		if err := ru_translations.RegisterDefaultTranslations(v, ruTrans); err != nil {
			return nil, fmt.Errorf("register ru validation translations: %w", err)
		}
		if err := registerCustomTranslations(v, enTrans, customEN); err != nil {
			return nil, err
		}
		if err := registerCustomTranslations(v, ruTrans, customRU); err != nil {
			return nil, err
		}
	}

	return &Translator{uni: uni}, nil
}

// ParseAcceptLanguage выбирает поддерживаемую локаль по заголовку Accept-Language.
func ParseAcceptLanguage(header string) string {
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	base, _ := supportedTags[idx].Base()
	return base.String()
}

// Message возвращает локализованный текст для кода ошибки. Неизвестный код возвращается как есть.
func (t *Translator) Message(locale, code string, params ...string) string {
	trans, _ := t.uni.GetTranslator(locale)
	if msg, err := trans.T(code, params...); err == nil {
		return msg
	}
	if locale != DefaultLocale {
		return t.Message(DefaultLocale, code, params...)
	}
	return code
}

// ValidationDetails переводит ошибки validator в map "поле -> сообщение".
// Для ошибок другого типа возвращает nil.
func (t *Translator) ValidationDetails(locale string, err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	trans, _ := t.uni.GetTranslator(locale)
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Translate(trans)
	}
	return details
}

func addCatalog(trans ut.Translator, catalog map[string]string) error {
	for code, text := range catalog {
		if err := trans.Add(code, text, false); err != nil {
			return fmt.Errorf("add message %s for %s: %w", code, trans.Locale(), err)
		}
	}
	return nil
}

func registerCustomTranslations(v *validator.Validate, trans ut.Translator, texts map[string]string) error {
	for tag, text := range texts {
		tag, text := tag, text
		err := v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error { return ut.Add(tag, text, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, err := ut.T(tag, fe.Field(), fe.Param())
				if err != nil {
					return fe.Error()
				}
				return msg
			})
		if err != nil {
			return fmt.Errorf("register %s translation for %s: %w", tag, trans.Locale(), err)
		}
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tagName := range []string{"json", "query", "form"} {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}
