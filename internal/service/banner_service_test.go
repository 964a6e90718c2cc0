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

func TestBannerListRespectsDisplayOrder(t *testing.T) {
	store := memory.NewStore()
	svc := NewBannerService(store.Banners(), nil, nil)
	ctx := context.Background()

	second := 2
	first := 1
	_, err := svc.Create(ctx, dto.CreateBannerRequest{Title: "Late", ImageURL: "/img/late.jpg", DisplayOrder: &second})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateBannerRequest{Title: "Early", ImageURL: "/img/early.jpg", DisplayOrder: &first})
	require.NoError(t, err)

	banners, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, banners, 2)
	assert.Equal(t, "Early", banners[0].Title)
}

func TestBannerPublicListHidesInactive(t *testing.T) {
	store := memory.NewStore()
	svc := NewBannerService(store.Banners(), nil, nil)
	ctx := context.Background()

	inactive := false
	_, err := svc.Create(ctx, dto.CreateBannerRequest{Title: "Hidden", ImageURL: "/img/h.jpg", IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateBannerRequest{Title: "Shown", ImageURL: "/img/s.jpg"})
	require.NoError(t, err)

	public, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Shown", public[0].Title)

	admin, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, admin, 2)
}

func TestBannerUpdateNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := NewBannerService(store.Banners(), nil, nil)

	title := "New"
	_, err := svc.Update(context.Background(), 99, dto.UpdateBannerRequest{Title: &title})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestBannerDeleteIsPermanent(t *testing.T) {
	store := memory.NewStore()
	svc := NewBannerService(store.Banners(), nil, nil)
	ctx := context.Background()

	banner, err := svc.Create(ctx, dto.CreateBannerRequest{Title: "Gone", ImageURL: "/img/g.jpg"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, banner.ID))

	_, err = svc.Get(ctx, banner.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
