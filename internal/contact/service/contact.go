package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sofcar/pkg/config"
	apperrors "sofcar/pkg/errors"
	"sofcar/pkg/notify"
	"sofcar/pkg/ratelimit"
	"sofcar/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// Inquiry is a contact-form submission from the public site.
type Inquiry struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Message string `json:"message" validate:"required,min=10,max=2000"`

	IPAddress string `json:"-"`
}

type ContactService interface {
	Submit(ctx context.Context, inquiry *Inquiry) error
}

type contactService struct {
	notifier notify.Notifier
	limiter  ratelimit.Limiter
	validate *validator.Validate
	cfg      *config.Config
}

func NewContactService(notifier notify.Notifier, limiter ratelimit.Limiter, cfg *config.Config) ContactService {
	return &contactService{
		notifier: notifier,
		limiter:  limiter,
		validate: validator.New(),
		cfg:      cfg,
	}
}

// Submit validates and forwards an inquiry to the notification pipeline.
// Dispatch is asynchronous; a 2xx answer means accepted, not delivered.
func (s *contactService) Submit(ctx context.Context, inquiry *Inquiry) error {
	if err := s.limiter.Admit(inquiry.IPAddress); err != nil {
		s.cfg.Log.Warn("Contact submission rate limited", "ip", inquiry.IPAddress)
		return err
	}

	s.sanitize(inquiry)

	if err := s.validate.Struct(inquiry); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			var messages []string
			for _, fieldErr := range validationErrs {
				messages = append(messages, fmt.Sprintf("%s is invalid", fieldErr.Field()))
			}
			return apperrors.Validation("Inquiry validation failed", map[string]any{
				"error": strings.Join(messages, "; "),
			})
		}
		return apperrors.Internal("Failed to validate inquiry", err)
	}

	message := &notify.ContactInquiry{
		Name:    inquiry.Name,
		Email:   inquiry.Email,
		Phone:   inquiry.Phone,
		Message: inquiry.Message,
	}

	go func() {
		dispatchCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notifier.ContactMessage(dispatchCtx, message); err != nil {
			s.cfg.Log.Error("Failed to dispatch contact inquiry",
				"email", message.Email,
				"error", err,
			)
		}
	}()

	s.cfg.Log.Info("Contact inquiry accepted", "email", inquiry.Email)
	return nil
}

func (s *contactService) sanitize(inquiry *Inquiry) {
	inquiry.Name = sanitizer.NormalizeName(inquiry.Name)
	inquiry.Email = sanitizer.NormalizeEmail(inquiry.Email)
	if phone := sanitizer.NormalizePhone(inquiry.Phone); phone != "" {
		inquiry.Phone = phone
	}
	inquiry.Message = sanitizer.NormalizeMessage(inquiry.Message)
}
