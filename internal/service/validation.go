package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

// SignupInput is the data a new user submits.  The validate tags mirror the
// users table constraints.
type SignupInput struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=30"`
	LastName  string `json:"lastName" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,len=10,number"`
	Password  string `json:"password" validate:"required,min=6"`
}

func (in *SignupInput) trim() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
}

func (in SignupInput) missingField() bool {
	return in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" || in.Password == ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps "Field.tag" to the message shown for that failure.
var fieldMessages = map[string]string{
	"FirstName.required": "First name is required",
	"FirstName.min":      "First name must be at least 3 characters",
	"FirstName.max":      "First name cannot exceed 30 characters",
	"LastName.required":  "Last name is required",
	"LastName.min":       "Last name must be at least 3 characters",
	"LastName.max":       "Last name cannot exceed 30 characters",
	"Email.required":     "Email is required",
	"Email.email":        "Please provide a valid email",
	"Phone.required":     "Phone number is required",
	"Phone.len":          "Phone number must contain 10 digits",
	"Phone.number":       "Phone number must contain 10 digits",
	"Password.required":  "Password is required",
	"Password.min":       "Password must be at least 6 characters",
}

// validateSignup checks in against its tags and joins every field message
// into one validation error.
func validateSignup(in SignupInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrInternal("validate signup", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]
		if !ok {
			msg = fe.StructField() + " is invalid"
		}
		msgs = append(msgs, msg)
	}
	return ErrValidation(strings.Join(msgs, ", "))
}

// columnLabels names table columns the way field messages do.
var columnLabels = map[string]string{
	"first_name":    "First name",
	"last_name":     "Last name",
	"email":         "Email",
	"phone":         "Phone number",
	"password_hash": "Password",
	"date":          "Date",
	"time":          "Time",
	"status":        "Status",
}

var reasonSuffix = map[string]string{
	repository.ReasonTooLong:  " is too long",
	repository.ReasonRequired: " is required",
	repository.ReasonInvalid:  " is invalid",
}

// storeValidation collects every *repository.ConstraintError in err's
// chain into one validation error.  ok is false when there is none.
func storeValidation(err error) (*Error, bool) {
	var msgs []string
	collectConstraints(err, func(ce *repository.ConstraintError) {
		label, ok := columnLabels[ce.Column]
		if !ok {
			label = "Field"
			if ce.Column != "" {
				label = ce.Column
			}
		}
		suffix, ok := reasonSuffix[ce.Reason]
		if !ok {
			suffix = " is invalid"
		}
		msgs = append(msgs, label+suffix)
	})
	if len(msgs) == 0 {
		return nil, false
	}
	return &Error{Kind: KindValidation, Message: strings.Join(msgs, ", "), Err: err}, true
}

func collectConstraints(err error, fn func(*repository.ConstraintError)) {
	switch e := err.(type) {
	case nil:
		return
	case *repository.ConstraintError:
		fn(e)
		return
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collectConstraints(inner, fn)
		}
	case interface{ Unwrap() error }:
		collectConstraints(e.Unwrap(), fn)
	}
}
