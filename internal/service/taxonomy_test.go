package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"halo_sync/internal/halo"
	"halo_sync/internal/service/mocks"
)

func newTestReconciler(t *testing.T) (*TaxonomyReconciler, *mocks.MockGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockGateway(ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	slugify := func(text string) string { return "slug-" + text }
	return NewTaxonomyReconciler(gateway, slugify, logger), gateway
}

func TestResolveCategories_CreatesOnlyMissing(t *testing.T) {
	ctx := context.Background()
	reconciler, gateway := newTestReconciler(t)

	gateway.EXPECT().ListCategories(ctx).Return([]halo.Category{
		{Metadata: halo.Metadata{Name: "c-news"}, Spec: halo.CategorySpec{DisplayName: "News"}},
	}, nil)

	gateway.EXPECT().CreateCategory(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, category *halo.Category) (*halo.Category, error) {
			assert.Equal(t, "Guides", category.Spec.DisplayName)
			assert.Equal(t, "slug-Guides", category.Spec.Slug)
			assert.Equal(t, "category-", category.Metadata.GenerateName)
			// priority continues from the current remote count
			assert.Equal(t, 1, category.Spec.Priority)

			created := *category
			created.Metadata.Name = "c-guides"
			return &created, nil
		},
	)

	names, err := reconciler.ResolveCategories(ctx, []string{"News", "Guides"})

	require.NoError(t, err)
	assert.Equal(t, []string{"c-news", "c-guides"}, names)
}

func TestResolveCategories_ExistingKeepInputOrder(t *testing.T) {
	ctx := context.Background()
	reconciler, gateway := newTestReconciler(t)

	gateway.EXPECT().ListCategories(ctx).Return([]halo.Category{
		{Metadata: halo.Metadata{Name: "c-a"}, Spec: halo.CategorySpec{DisplayName: "A"}},
		{Metadata: halo.Metadata{Name: "c-b"}, Spec: halo.CategorySpec{DisplayName: "B"}},
	}, nil)

	names, err := reconciler.ResolveCategories(ctx, []string{"B", "A"})

	require.NoError(t, err)
	assert.Equal(t, []string{"c-b", "c-a"}, names)
}

func TestResolveCategories_CreateFailurePropagates(t *testing.T) {
	ctx := context.Background()
	reconciler, gateway := newTestReconciler(t)

	gateway.EXPECT().ListCategories(ctx).Return(nil, nil)

	first := gateway.EXPECT().CreateCategory(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, category *halo.Category) (*halo.Category, error) {
			created := *category
			created.Metadata.Name = "c-one"
			return &created, nil
		},
	)
	gateway.EXPECT().CreateCategory(ctx, gomock.Any()).After(first).Return(nil, errors.New("boom"))

	_, err := reconciler.ResolveCategories(ctx, []string{"One", "Two"})

	// the first create is not rolled back
	require.Error(t, err)
	assert.Contains(t, err.Error(), `create category "Two"`)
}

func TestResolveTags_CreatesMissing(t *testing.T) {
	ctx := context.Background()
	reconciler, gateway := newTestReconciler(t)

	gateway.EXPECT().ListTags(ctx).Return([]halo.Tag{
		{Metadata: halo.Metadata{Name: "t-go"}, Spec: halo.TagSpec{DisplayName: "go"}},
	}, nil)

	gateway.EXPECT().CreateTag(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tag *halo.Tag) (*halo.Tag, error) {
			assert.Equal(t, "sync", tag.Spec.DisplayName)
			assert.Equal(t, "tag-", tag.Metadata.GenerateName)

			created := *tag
			created.Metadata.Name = "t-sync"
			return &created, nil
		},
	)

	names, err := reconciler.ResolveTags(ctx, []string{"go", "sync"})

	require.NoError(t, err)
	assert.Equal(t, []string{"t-go", "t-sync"}, names)
}

func TestCategoryDisplayNames_DropsUnknown(t *testing.T) {
	ctx := context.Background()
	reconciler, gateway := newTestReconciler(t)

	gateway.EXPECT().ListCategories(ctx).Return([]halo.Category{
		{Metadata: halo.Metadata{Name: "c-news"}, Spec: halo.CategorySpec{DisplayName: "News"}},
	}, nil)

	names, err := reconciler.CategoryDisplayNames(ctx, []string{"c-news", "c-stale"})

	require.NoError(t, err)
	assert.Equal(t, []string{"News"}, names)
}

func TestTagDisplayNames_DropsUnknown(t *testing.T) {
	ctx := context.Background()
	reconciler, gateway := newTestReconciler(t)

	gateway.EXPECT().ListTags(ctx).Return([]halo.Tag{
		{Metadata: halo.Metadata{Name: "t-go"}, Spec: halo.TagSpec{DisplayName: "go"}},
	}, nil)

	names, err := reconciler.TagDisplayNames(ctx, []string{"t-stale", "t-go"})

	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, names)
}
