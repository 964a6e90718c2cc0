package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
)

func TestContactCreateStoresAndNotifies(t *testing.T) {
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	svc := NewContactService(store.Contacts(), notifier, nil, nil)

	msg, err := svc.Create(context.Background(), dto.CreateContactMessageRequest{
		Name: "Ada", Email: "ada@example.com", Subject: "Question", Message: "When does the next cohort start?",
	})
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	require.Len(t, notifier.contacts, 1)
	assert.Equal(t, "Question", notifier.contacts[0].Subject)
}

func TestContactCreateRejectsMissingFields(t *testing.T) {
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	svc := NewContactService(store.Contacts(), notifier, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateContactMessageRequest{Name: "Ada"})
	require.Error(t, err)
	assert.Empty(t, notifier.contacts)
}
