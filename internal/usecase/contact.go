package usecase

import (
	"context"
	"fmt"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
	"time"

	"github.com/google/uuid"
)

type contactUsecase struct {
	relay domain.MessageRelay
	now   func() time.Time
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(relay domain.MessageRelay) domain.ContactUsecase {
	return NewContactUsecaseWithClock(relay, time.Now)
}

// NewContactUsecaseWithClock lets callers pin the submission timestamp
func NewContactUsecaseWithClock(relay domain.MessageRelay, now func() time.Time) domain.ContactUsecase {
	return &contactUsecase{
		relay: relay,
		now:   now,
	}
}

// SendContactMessage checks presence of the three fields and relays the message once.
// No trimming or format checks happen here.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil || req.Name == "" || req.Email == "" || req.Message == "" {
		return domain.ErrMissingFields
	}

	if uc.relay == nil || !uc.relay.IsConfigured() {
		logger.Log.Error("Contact relay credentials not configured")
		return domain.ErrRelayNotConfigured
	}

	msg := &domain.ContactMessage{
		ReferenceID: uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Message:     req.Message,
		SubmittedAt: uc.now(),
	}

	if err := uc.relay.Deliver(ctx, msg); err != nil {
		logger.Log.Error("Contact message delivery failed",
			"relay", uc.relay.Name(),
			"reference_id", msg.ReferenceID,
			"error", err,
		)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	logger.Log.Info("Contact message relayed",
		"relay", uc.relay.Name(),
		"reference_id", msg.ReferenceID,
	)
	return nil
}
