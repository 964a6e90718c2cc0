package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
)

func TestSettingUpsertThenUpdateValue(t *testing.T) {
	store := memory.NewStore()
	svc := NewSettingService(store.Settings(), nil, nil)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, dto.UpsertSettingRequest{
		Key: "registration_open", Value: "true", Type: "boolean",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := svc.UpdateValue(ctx, "registration_open", dto.UpdateSettingValueRequest{Value: "false"})
	require.NoError(t, err)
	assert.Equal(t, "false", updated.Value)
	assert.Equal(t, created.ID, updated.ID)
}

func TestSettingUpdateValueUnknownKey(t *testing.T) {
	store := memory.NewStore()
	svc := NewSettingService(store.Settings(), nil, nil)

	_, err := svc.UpdateValue(context.Background(), "missing", dto.UpdateSettingValueRequest{Value: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSettingUpsertRejectsUnknownType(t *testing.T) {
	store := memory.NewStore()
	svc := NewSettingService(store.Settings(), nil, nil)

	_, err := svc.Upsert(context.Background(), dto.UpsertSettingRequest{
		Key: "site_title", Value: "Hub", Type: "blob",
	})
	require.Error(t, err)
}
