package service

import (
	"context"
	"fmt"
	"log/slog"

	"halo_sync/internal/halo"
)

// TaxonomyReconciler maps human-readable category and tag names to remote
// stable identifiers, creating missing remote entries on the way. Display
// names are the effective editing key: a name that already exists remotely
// is never created twice.
type TaxonomyReconciler struct {
	gateway Gateway
	slugify SlugifyFunc
	logger  *slog.Logger
}

func NewTaxonomyReconciler(gateway Gateway, slugify SlugifyFunc, logger *slog.Logger) *TaxonomyReconciler {
	return &TaxonomyReconciler{
		gateway: gateway,
		slugify: slugify,
		logger:  logger,
	}
}

// ResolveCategories turns display names into category identifiers. Existing
// matches come first in input order, then newly created ones in creation
// order. A failed create aborts without rolling back earlier creates.
func (r *TaxonomyReconciler) ResolveCategories(ctx context.Context, displayNames []string) ([]string, error) {
	all, err := r.gateway.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	byDisplayName := make(map[string]string, len(all))
	for _, c := range all {
		if _, ok := byDisplayName[c.Spec.DisplayName]; !ok {
			byDisplayName[c.Spec.DisplayName] = c.Metadata.Name
		}
	}

	var resolved, missing []string
	for _, displayName := range displayNames {
		if name, ok := byDisplayName[displayName]; ok {
			resolved = append(resolved, name)
		} else {
			missing = append(missing, displayName)
		}
	}

	for i, displayName := range missing {
		created, err := r.gateway.CreateCategory(ctx, &halo.Category{
			APIVersion: "content.halo.run/v1alpha1",
			Kind:       "Category",
			Metadata:   halo.Metadata{GenerateName: "category-"},
			Spec: halo.CategorySpec{
				DisplayName: displayName,
				Slug:        r.slugify(displayName),
				Priority:    len(all) + i,
				Children:    []string{},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create category %q: %w", displayName, err)
		}
		r.logger.Debug("created category", "display_name", displayName, "name", created.Metadata.Name)
		resolved = append(resolved, created.Metadata.Name)
	}

	return resolved, nil
}

// ResolveTags is ResolveCategories for tags.
func (r *TaxonomyReconciler) ResolveTags(ctx context.Context, displayNames []string) ([]string, error) {
	all, err := r.gateway.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	byDisplayName := make(map[string]string, len(all))
	for _, t := range all {
		if _, ok := byDisplayName[t.Spec.DisplayName]; !ok {
			byDisplayName[t.Spec.DisplayName] = t.Metadata.Name
		}
	}

	var resolved, missing []string
	for _, displayName := range displayNames {
		if name, ok := byDisplayName[displayName]; ok {
			resolved = append(resolved, name)
		} else {
			missing = append(missing, displayName)
		}
	}

	for _, displayName := range missing {
		created, err := r.gateway.CreateTag(ctx, &halo.Tag{
			APIVersion: "content.halo.run/v1alpha1",
			Kind:       "Tag",
			Metadata:   halo.Metadata{GenerateName: "tag-"},
			Spec: halo.TagSpec{
				DisplayName: displayName,
				Slug:        r.slugify(displayName),
				Color:       "#ffffff",
			},
		})
		if err != nil {
			return nil, fmt.Errorf("create tag %q: %w", displayName, err)
		}
		r.logger.Debug("created tag", "display_name", displayName, "name", created.Metadata.Name)
		resolved = append(resolved, created.Metadata.Name)
	}

	return resolved, nil
}

// CategoryDisplayNames maps identifiers back to display names. Identifiers
// with no remote match are dropped silently; one stale taxonomy entry must
// not fail the whole operation.
func (r *TaxonomyReconciler) CategoryDisplayNames(ctx context.Context, names []string) ([]string, error) {
	all, err := r.gateway.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(all))
	for _, c := range all {
		byName[c.Metadata.Name] = c.Spec.DisplayName
	}

	displayNames := make([]string, 0, len(names))
	for _, name := range names {
		if displayName, ok := byName[name]; ok {
			displayNames = append(displayNames, displayName)
		}
	}
	return displayNames, nil
}

// TagDisplayNames is CategoryDisplayNames for tags.
func (r *TaxonomyReconciler) TagDisplayNames(ctx context.Context, names []string) ([]string, error) {
	all, err := r.gateway.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]string, len(all))
	for _, t := range all {
		byName[t.Metadata.Name] = t.Spec.DisplayName
	}

	displayNames := make([]string, 0, len(names))
	for _, name := range names {
		if displayName, ok := byName[name]; ok {
			displayNames = append(displayNames, displayName)
		}
	}
	return displayNames, nil
}
