// Package bind decodes and validates request input for handlers
package bind

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// tagQuery names the struct tag that maps a field to a URL query key
const tagQuery = "query"

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// messages name the query key the client sent
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := tagName(fld); name != "" {
				return name
			}
			return fld.Name
		})

		if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
			logger.Named("bind").Warn().Err(err).Msg("validator translations unavailable")
		}
		registerShortOneOf(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Issue describes a query field that failed validation and was reset
type Issue struct {
	Field   string
	Message string
}

// Query decodes query:"..." tagged string fields of T from the URL and validates them
// fields that fail their tag are reset to zero and reported, never rejected
func Query[T any](r *http.Request) (T, []Issue) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, nil
	}

	values := r.URL.Query()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := tagName(f)
		if name == "" || f.Type.Kind() != reflect.String || !values.Has(name) {
			continue
		}
		rv.Field(i).SetString(strings.TrimSpace(values.Get(name)))
	}

	err := Get().Validator.Struct(dst)
	if err == nil {
		return dst, nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		logger.Named("bind").Error().Err(err).Msg("validator internal error")
		return dst, nil
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		if fv := rv.FieldByName(fe.StructField()); fv.IsValid() && fv.CanSet() {
			fv.SetZero()
		}
		issues = append(issues, Issue{Field: fe.Field(), Message: fe.Translate(Get().Translator)})
	}
	return dst, issues
}

// Valid reports whether v satisfies a single validator tag expression
func Valid(v any, tag string) bool { return Get().Validator.Var(v, tag) == nil }

func tagName(f reflect.StructField) string {
	tag := f.Tag.Get(tagQuery)
	if tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

func registerShortOneOf(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("oneof", trans,
		func(ut ut.Translator) error {
			return ut.Add("oneof", "{0} must be one of [{1}]", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("oneof", fe.Field(), fe.Param())
			return msg
		},
	)
}
