package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"halo_sync/internal/domain"
	"halo_sync/internal/halo"
)

// Gateway issues requests against one remote site.
type Gateway interface {
	GetPost(ctx context.Context, name string) (*halo.PostWithContent, error)
	CreatePost(ctx context.Context, post *halo.Post) (*halo.Post, error)
	UpdatePost(ctx context.Context, post *halo.Post) error
	GetDraft(ctx context.Context, name string) (*halo.Snapshot, error)
	UpdateDraft(ctx context.Context, name string, snapshot *halo.Snapshot) error
	Publish(ctx context.Context, name string) error
	Unpublish(ctx context.Context, name string) error
	ListPosts(ctx context.Context) ([]halo.ListedPost, error)
	ListCategories(ctx context.Context) ([]halo.Category, error)
	CreateCategory(ctx context.Context, category *halo.Category) (*halo.Category, error)
	ListTags(ctx context.Context) ([]halo.Tag, error)
	CreateTag(ctx context.Context, tag *halo.Tag) (*halo.Tag, error)
}

// Vault is the local document store. The service borrows a document for the
// duration of one operation and writes back at most once.
type Vault interface {
	Load(name string) (*domain.Document, error)
	FrontMatter(name string) (map[string]any, error)
	Create(name, content string) error
	Write(name, content string) error
	ProcessFrontMatter(name string, fn func(matter map[string]any)) error
}

// RenderFunc converts markdown to HTML.
type RenderFunc func(markdown string) (string, error)

// SlugifyFunc derives a URL slug from display text.
type SlugifyFunc func(text string) string
