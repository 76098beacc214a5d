package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en_CA"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Struct tags backed by the registration rules.
const (
	TagPersonName   = "person_name"
	TagPhone        = "ca_phone"
	TagEmail        = "email_strict"
	TagAddress      = "ca_address"
	TagBirthDate    = "birth_date"
	TagGrade        = "grade"
	TagOptionalText = "optional_text"
)

var tagRules = map[string]Validator{
	TagPersonName:   ValidateName,
	TagPhone:        ValidatePhone,
	TagEmail:        ValidateEmail,
	TagAddress:      ValidateAddress,
	TagBirthDate:    ValidateDateOfBirth,
	TagGrade:        ValidateGrade,
	TagOptionalText: ValidateOptionalText,
}

// StructValidator validates request payloads and renders field errors in
// Canadian English.
type StructValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewStructValidator registers the registration rules as validator tags.
func NewStructValidator() *StructValidator {
	locale := en_CA.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator(locale.Locale())

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, rule := range tagRules {
		registerRule(validate, translator, tag, rule)
	}
	return &StructValidator{validate: validate, translator: translator}
}

func registerRule(validate *validator.Validate, translator ut.Translator, tag string, rule Validator) {
	_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return rule(fl.Field().String()).Valid
	})
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, "{0} is invalid", false) },
		func(t ut.Translator, fe validator.FieldError) string {
			if value, ok := fe.Value().(string); ok {
				if res := rule(value); res.Reason != "" {
					return res.Reason
				}
			}
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Engine exposes the underlying validator, e.g. for gin binding.
func (v *StructValidator) Engine() *validator.Validate {
	return v.validate
}

// Struct validates s and returns translated messages keyed by JSON field
// name. The map is nil when s is valid. Errors that are not field errors are
// returned as-is.
func (v *StructValidator) Struct(s interface{}) (map[string]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, err
	}
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = fe.Translate(v.translator)
	}
	return out, nil
}
