package http

import (
	"github.com/go-playground/validator/v10"

	loanDomain "microfin-backend/internal/domain/loan"
	repayDomain "microfin-backend/internal/domain/repayment"
	savingsDomain "microfin-backend/internal/domain/savings"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// loan category must be one of the configured set
	_ = v.RegisterValidation("loancategory", func(fl validator.FieldLevel) bool {
		_, ok := loanDomain.ConfigFor(loanDomain.Category(fl.Field().String()))
		return ok
	})
	// payment method enum
	_ = v.RegisterValidation("paymethod", func(fl validator.FieldLevel) bool {
		return repayDomain.Method(fl.Field().String()).Valid()
	})
	// savings transaction type enum
	_ = v.RegisterValidation("txntype", func(fl validator.FieldLevel) bool {
		return savingsDomain.TxType(fl.Field().String()).Valid()
	})
	// loan status enum
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		return loanDomain.Status(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "loancategory":
			out = append(out, FieldError{Field: field, Message: "must be a configured loan category"})
		case "paymethod":
			out = append(out, FieldError{Field: field, Message: "must be a supported payment method"})
		case "txntype":
			out = append(out, FieldError{Field: field, Message: "must be 'deposit' or 'withdrawal'"})
		case "loanstatus":
			out = append(out, FieldError{Field: field, Message: "must be a valid loan status"})
		case "datetime":
			out = append(out, FieldError{Field: field, Message: "must be a date in YYYY-MM-DD form"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
