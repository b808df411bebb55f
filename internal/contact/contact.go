// Package contact handles the enquiry form shown in the contact section.
package contact

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"finitefield.org/prangana-web/internal/observability"
)

const submissionIDPrefix = "enq_"

// ErrInvalid is returned by Submit when required fields are missing.
var ErrInvalid = errors.New("contact: invalid form")

// Form is the submitted enquiry.
type Form struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Submission is an accepted enquiry.
type Submission struct {
	ID          string
	Form        Form
	SubmittedAt time.Time
}

// Parse reads the form fields from posted values.
func Parse(values url.Values) Form {
	return Form{
		Name:    strings.TrimSpace(values.Get("name")),
		Email:   strings.TrimSpace(values.Get("email")),
		Phone:   strings.TrimSpace(values.Get("phone")),
		Message: strings.TrimSpace(values.Get("message")),
	}
}

// Values returns the form as a field map for re-rendering.
func (f Form) Values() map[string]string {
	return map[string]string{
		"name":    f.Name,
		"email":   f.Email,
		"phone":   f.Phone,
		"message": f.Message,
	}
}

// Validate returns field errors keyed by input name. Only presence is checked.
func (f Form) Validate() map[string]string {
	errs := map[string]string{}
	if f.Name == "" {
		errs["name"] = "Please tell us your name."
	}
	if f.Email == "" {
		errs["email"] = "An email address is required."
	} else if !strings.Contains(f.Email, "@") {
		errs["email"] = "That does not look like an email address."
	}
	if f.Message == "" {
		errs["message"] = "Write a short note about your project."
	}
	return errs
}

// Submit accepts a valid form. Nothing is stored; the enquiry is logged with its id.
func Submit(ctx context.Context, form Form) (Submission, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return Submission{}, ErrInvalid
	}
	now := time.Now().UTC()
	sub := Submission{
		ID:          submissionIDPrefix + ulid.Make().String(),
		Form:        form,
		SubmittedAt: now,
	}
	observability.FromContext(ctx).Info("contact enquiry received",
		zap.String("submissionID", sub.ID),
		zap.Bool("hasPhone", form.Phone != ""),
		zap.Int("messageLength", len(form.Message)),
	)
	return sub, nil
}
