package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushii-shop/storefront/internal/store"
	"github.com/sushii-shop/storefront/internal/transport"
)

func newTestContactService(t *testing.T) *ContactService {
	t.Helper()
	return &ContactService{Store: store.New(t.TempDir())}
}

func TestContactSubmit_MissingFieldsRejected(t *testing.T) {
	t.Parallel()

	svc := newTestContactService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.ContactRequest
	}{
		{name: "blank name", req: transport.ContactRequest{Name: "  ", Email: "a@b.fr", Message: "bonjour"}},
		{name: "blank email", req: transport.ContactRequest{Name: "Jean", Email: "", Message: "bonjour"}},
		{name: "blank message", req: transport.ContactRequest{Name: "Jean", Email: "a@b.fr", Message: "   "}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Submit(ctx, tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Champs requis manquants.", verr.Message)
		})
	}
}

func TestContactSubmit_PersistsTrimmedTruncatedEntry(t *testing.T) {
	t.Parallel()

	svc := newTestContactService(t)

	entry, err := svc.Submit(context.Background(), transport.ContactRequest{
		Name:    "  Jean Dupont  ",
		Email:   "jean@example.fr",
		Message: strings.Repeat("m", 1000),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Jean Dupont", entry.Name)
	assert.Len(t, entry.Message, 800)
	assert.False(t, entry.SubmittedAt.IsZero())

	messages, err := svc.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, entry.ID, messages[0].ID)
}
