package service

import (
	"path"
	"strings"

	"github.com/google/uuid"

	"halo_sync/internal/domain"
	"halo_sync/internal/halo"
)

// Front matter keys the mapper projects between local documents and posts.
const (
	matterKeyTitle      = "title"
	matterKeySlug       = "slug"
	matterKeyExcerpt    = "excerpt"
	matterKeyCover      = "cover"
	matterKeyCategories = "categories"
	matterKeyTags       = "tags"
)

// overlayMatter applies the scalar front matter fields onto a post. Fields
// absent from the front matter keep the remote value; this is a field-level
// merge, not a replace.
func overlayMatter(post *halo.Post, matter map[string]any) {
	if title, ok := domain.StringField(matter, matterKeyTitle); ok {
		post.Spec.Title = title
	}
	if slug, ok := domain.StringField(matter, matterKeySlug); ok {
		post.Spec.Slug = slug
	}
	if excerpt, ok := domain.StringField(matter, matterKeyExcerpt); ok {
		post.Spec.Excerpt.Raw = excerpt
		post.Spec.Excerpt.AutoGenerate = false
	}
	if cover, ok := domain.StringField(matter, matterKeyCover); ok {
		post.Spec.Cover = cover
	}
}

// applyCreateDefaults synthesizes the identity, title and slug for a post
// being created for the first time. The title falls back to the document's
// file name, the slug to a slugified title.
func applyCreateDefaults(post *halo.Post, matter map[string]any, docName string, slugify SlugifyFunc) {
	post.Metadata.Name = uuid.NewString()

	if title, ok := domain.StringField(matter, matterKeyTitle); ok {
		post.Spec.Title = title
	} else {
		post.Spec.Title = strings.TrimSuffix(path.Base(docName), path.Ext(docName))
	}

	if slug, ok := domain.StringField(matter, matterKeySlug); ok {
		post.Spec.Slug = slug
	} else {
		post.Spec.Slug = slugify(post.Spec.Title)
	}
}

// applyPostToMatter is the inverse projection: after a round trip it rewrites
// the document's front matter from the authoritative server-side post. An
// auto-generated excerpt maps to an explicit nil so a stale local excerpt is
// cleared rather than kept.
func applyPostToMatter(matter map[string]any, post *halo.Post, categories, tags []string, ref domain.SyncRef) {
	matter[matterKeyTitle] = post.Spec.Title
	matter[matterKeySlug] = post.Spec.Slug
	matter[matterKeyCover] = post.Spec.Cover

	if post.Spec.Excerpt.AutoGenerate {
		matter[matterKeyExcerpt] = nil
	} else {
		matter[matterKeyExcerpt] = post.Spec.Excerpt.Raw
	}

	matter[matterKeyCategories] = categories
	matter[matterKeyTags] = tags
	matter[domain.MatterKeySyncRef] = ref.ToMatter()
}
