package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Pratham6392/shipment/internal/domain/shared"
	"github.com/Pratham6392/shipment/internal/domain/shipment"
	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's validator: JSON names in errors and the
// "waybill" tag backed by shipment.ValidateWaybill.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	registerValidations(v)
	return nil
}

func registerValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// RegisterValidation only fails for an empty tag or a nil func
	_ = v.RegisterValidation("waybill", func(fl validator.FieldLevel) bool {
		_, err := shipment.ValidateWaybill(fl.Field().String())
		return err == nil
	})
}

// ValidationMessage turns a binding error into the message sent to the caller.
// Decode failures and unknown errors get the generic required message.
func ValidationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return dto.MsgWaybillRequired
	}
	return fieldMessage(validationErrors[0])
}

// fieldMessage returns a human-readable validation message
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		if e.Field() == "waybill" {
			return dto.MsgWaybillRequired
		}
		return e.Field() + " is required"
	case "waybill":
		// Re-run the domain check for its precise message
		raw, _ := e.Value().(string)
		var domainErr *shared.DomainError
		if _, err := shipment.ValidateWaybill(raw); errors.As(err, &domainErr) {
			return domainErr.Message
		}
		return "Invalid waybill"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	default:
		return "Invalid value for " + e.Field()
	}
}
