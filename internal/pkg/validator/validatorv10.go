package validator

import (
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/artmatch/internal/pkg/strcase"
)

// Password length bounds in characters.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

var reSlug = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// FieldErrors maps snake_case field names to human readable messages.
type FieldErrors map[string]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation error"
	}

	b, _ := json.Marshal(map[string]string(fe))
	return string(b)
}

// Values returns the field error map.
func (fe FieldErrors) Values() map[string]string {
	return fe
}

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewV10Validator constructs a V10Validator with English translations and the
// custom rules "password", "slug" and "matchid".
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	enTrans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerCustom(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, translator: enTrans}, nil
}

// Validate validates a struct and returns FieldErrors on rule failures.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	out := make(FieldErrors, len(validateErrs))
	for _, fe := range validateErrs {
		out[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}

	return out
}

type customRule struct {
	tag  string
	msg  string
	rule validator.Func
}

func registerCustom(validate *validator.Validate, trans ut.Translator) error {
	rules := []customRule{
		{
			tag: "password",
			msg: "{0} must be 8-72 characters",
			rule: func(fl validator.FieldLevel) bool {
				n := utf8.RuneCountInString(fl.Field().String())
				return n >= PasswordMinLength && n <= PasswordMaxLength
			},
		},
		{
			tag: "slug",
			msg: "{0} can contain only lowercase letters, digits and dashes",
			rule: func(fl validator.FieldLevel) bool {
				return reSlug.MatchString(fl.Field().String())
			},
		},
		{
			tag: "matchid",
			msg: "{0} must look like category_author_picture",
			rule: func(fl validator.FieldLevel) bool {
				parts := strings.Split(fl.Field().String(), "_")
				if len(parts) < 3 {
					return false
				}
				for _, p := range parts[:2] {
					if p == "" || strings.ContainsAny(p, `/\.`) {
						return false
					}
				}
				return true
			},
		},
	}

	for _, r := range rules {
		if err := validate.RegisterValidation(r.tag, r.rule); err != nil {
			return err
		}

		msg := r.msg
		err := validate.RegisterTranslation(r.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(r.tag, msg, false)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, err := ut.T(fe.Tag(), fe.Field())
				if err != nil {
					slog.Warn("validator: translation failed", "tag", fe.Tag(), "error", err)
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}
