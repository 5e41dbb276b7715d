package validator

import (
	"barcode-scanner/models"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("barcodeformat", validateBarcodeFormat)
	v.RegisterValidation("barcodeschema", validateBarcodeSchema)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var validationErrs ValidationErrors
	for _, fe := range fieldErrs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "barcodeformat":
		return fmt.Sprintf("%s must be a known barcode format such as QR_CODE or EAN_13", field)
	case "barcodeschema":
		return fmt.Sprintf("%s must be a known barcode schema such as URL or OTHER", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func validateBarcodeFormat(fl validator.FieldLevel) bool {
	_, err := models.ParseBarcodeFormat(fl.Field().String())
	return err == nil
}

func validateBarcodeSchema(fl validator.FieldLevel) bool {
	_, err := models.ParseBarcodeSchema(fl.Field().String())
	return err == nil
}
