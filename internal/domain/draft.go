package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/consultation-booking/pkg/types"
)

var whatsAppRegex = regexp.MustCompile(`^\+\d{7,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		return whatsAppRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register whatsapp validation: %v", err))
	}
	return v
}

// ContactDetails customer identity collected by the booking form
type ContactDetails struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	WhatsApp string `json:"whatsapp" validate:"required,whatsapp"`
}

// Normalize trims surrounding whitespace from every field
func (c *ContactDetails) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.WhatsApp = strings.TrimSpace(c.WhatsApp)
}

// Validate returns *ValidationError describing every rejected field
func (c ContactDetails) Validate() error {
	c.Normalize()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range validationErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   contactFieldName(fe.Field()),
			Message: contactFieldMessage(fe),
		})
	}
	return out
}

func contactFieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Email":
		return "email"
	case "WhatsApp":
		return "whatsapp"
	default:
		return strings.ToLower(structField)
	}
}

func contactFieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "whatsapp":
		return "must be in international format, e.g. +491234567890"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// AppointmentDraft in-progress booking. Never a booking by itself.
type AppointmentDraft struct {
	ServiceID     string           `json:"serviceId"`
	Date          types.DateKey    `json:"date"`
	Time          types.TimeString `json:"time"`
	Contact       ContactDetails   `json:"contact"`
	Price         string           `json:"price,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
}

// Validate checks the draft is complete enough to commit
func (d *AppointmentDraft) Validate() error {
	d.Contact.Normalize()

	out := &ValidationError{}
	if strings.TrimSpace(d.ServiceID) == "" {
		out.Fields = append(out.Fields, FieldError{Field: "serviceId", Message: "is required"})
	}
	if _, err := types.ParseDateKey(d.Date.String()); err != nil {
		out.Fields = append(out.Fields, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if err := d.Time.Validate(); err != nil {
		out.Fields = append(out.Fields, FieldError{Field: "time", Message: "must be HH:MM"})
	}
	if err := d.Contact.Validate(); err != nil {
		var contactErr *ValidationError
		if !errors.As(err, &contactErr) {
			return err
		}
		out.Fields = append(out.Fields, contactErr.Fields...)
	}

	if len(out.Fields) > 0 {
		return out
	}
	return nil
}
