package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sushii-shop/storefront/internal/models"
	"github.com/sushii-shop/storefront/internal/store"
	"github.com/sushii-shop/storefront/internal/transport"
)

const MessageCollection = "messages"

type ContactService struct {
	Store *store.Store
}

// Submit validates and persists a contact message. All three fields are
// required; name, email and the message body are trimmed and truncated.
func (s *ContactService) Submit(ctx context.Context, req transport.ContactRequest) (*models.ContactMessage, error) {
	name := truncate(strings.TrimSpace(req.Name), 120)
	email := truncate(strings.TrimSpace(req.Email), 160)
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return nil, &ValidationError{Message: "Champs requis manquants."}
	}

	entry := &models.ContactMessage{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Message:     truncate(message, 800),
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.Store.Append(MessageCollection, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListMessages returns the persisted contact messages, oldest first.
func (s *ContactService) ListMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := s.Store.ReadCollection(MessageCollection, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
