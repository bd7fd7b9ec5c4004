package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"houseprice/internal/model"
	"houseprice/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the house feature validators on gin's
// binding engine and makes errors report JSON field names. Safe to call
// more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("yesno", func(fl validator.FieldLevel) bool {
			return service.IsBinaryValue(fl.Field().String())
		}); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("furnishing", func(fl validator.FieldLevel) bool {
			return service.IsFurnishingValue(fl.Field().String())
		})
	})
	return registerErr
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// decodeRecord parses and validates one house record
func decodeRecord(raw json.RawMessage) (model.HouseFeatures, error) {
	var h model.HouseFeatures
	if err := json.Unmarshal(raw, &h); err != nil {
		return h, err
	}
	if err := binding.Validator.ValidateStruct(&h); err != nil {
		return h, err
	}
	return h, nil
}

// fieldErrors converts binding failures into per-field details. ok is
// false when err is not about a specific field (e.g. a syntax error or a
// body that is not an object at all).
func fieldErrors(err error) (fields []model.FieldError, ok bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, model.FieldError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Message: fieldMessage(fe),
			})
		}
		return fields, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []model.FieldError{{
			Field:   typeErr.Field,
			Tag:     "type",
			Message: fmt.Sprintf("%s must be of type %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value),
		}}, true
	}
	return nil, false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "yesno":
		return fmt.Sprintf("%s must be %q or %q, got %q", fe.Field(), service.Yes, service.No, fe.Value())
	case "furnishing":
		return fmt.Sprintf("%s must be one of %q, %q, %q, got %q", fe.Field(),
			service.Furnished, service.SemiFurnished, service.Unfurnished, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func summarize(fields []model.FieldError) string {
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}
