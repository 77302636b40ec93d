package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"halo_sync/internal/config"
	"halo_sync/internal/domain"
	"halo_sync/internal/halo"
)

// SyncService drives the publish, update and pull operations between the
// vault and one remote site. Each operation is a sequential chain of
// requests; only the category and tag reconciliation batches run
// concurrently with each other. Nothing is retried: a failed request aborts
// the operation and leaves whatever earlier requests committed in place.
type SyncService struct {
	site     config.Site
	gateway  Gateway
	vault    Vault
	taxonomy *TaxonomyReconciler
	render   RenderFunc
	slugify  SlugifyFunc
	logger   *slog.Logger
	config   config.SyncConfig
}

func NewSyncService(
	site config.Site,
	gateway Gateway,
	vault Vault,
	render RenderFunc,
	slugify SlugifyFunc,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	return &SyncService{
		site:     site,
		gateway:  gateway,
		vault:    vault,
		taxonomy: NewTaxonomyReconciler(gateway, slugify, logger),
		render:   render,
		slugify:  slugify,
		logger:   logger.With("site", site.URL),
		config:   cfg,
	}
}

// Publish pushes a document to the site, creating the remote post on first
// publish and updating it afterwards, then rewrites the document's front
// matter from the authoritative server state.
func (s *SyncService) Publish(ctx context.Context, docName string) (*domain.Result, error) {
	startTime := time.Now()
	s.logger.Info("starting publish", "document", docName)

	matter, err := s.vault.FrontMatter(docName)
	if err != nil {
		return nil, fmt.Errorf("read front matter: %w", err)
	}

	ref, _ := domain.SyncRefFrom(matter)
	if err := s.checkSite(ref); err != nil {
		return nil, err
	}

	doc, err := s.vault.Load(docName)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	params := halo.NewPost()
	content := halo.NewMarkdownContent()

	if ref.Name != "" {
		existing, err := s.gateway.GetPost(ctx, ref.Name)
		switch {
		case err == nil:
			params = existing.Post
			content = existing.Content
		case errors.Is(err, domain.ErrNotFound):
			// The remote post is gone; fall through to the create path.
			s.logger.Warn("recorded post no longer exists, recreating", "post", ref.Name)
		default:
			return nil, err
		}
	}

	content.Raw = doc.Body
	if content.Content, err = s.render(doc.Body); err != nil {
		return nil, err
	}

	overlayMatter(&params, matter)

	// Local names are the source of truth for taxonomy membership; the
	// remote id lists are derived even on the update path.
	if err := s.reconcileTaxonomy(ctx, matter, &params); err != nil {
		return nil, err
	}

	operation := domain.OperationUpdate
	if params.Metadata.Name != "" {
		if err := s.updateExisting(ctx, &params, content); err != nil {
			return nil, err
		}
	} else {
		operation = domain.OperationCreate
		created, err := s.createNew(ctx, &params, content, docName, matter)
		if err != nil {
			return nil, err
		}
		params = *created
	}

	if err := s.applyPublishPolicy(ctx, ref, &params); err != nil {
		return nil, err
	}

	// Re-fetch for server-computed fields. A failure here only costs the
	// rewrite some freshness, so the just-written state stands in.
	if refreshed, err := s.gateway.GetPost(ctx, params.Metadata.Name); err == nil {
		params = refreshed.Post
	}

	rewrite, err := s.resolveFrontMatter(ctx, &params)
	if err != nil {
		return nil, err
	}
	if err := s.vault.ProcessFrontMatter(docName, rewrite); err != nil {
		return nil, err
	}

	result := &domain.Result{
		Operation: operation,
		PostName:  params.Metadata.Name,
		Title:     params.Spec.Title,
		Document:  docName,
		Published: params.Spec.Publish,
		Duration:  time.Since(startTime),
	}

	s.logger.Info("publish completed",
		"operation", result.Operation,
		"post", result.PostName,
		"published", result.Published,
		"duration", result.Duration,
	)

	return result, nil
}

// Update pulls remote changes into an already-synced document, overwriting
// the local body without republishing anything.
func (s *SyncService) Update(ctx context.Context, docName string) (*domain.Result, error) {
	startTime := time.Now()
	s.logger.Info("starting update", "document", docName)

	matter, err := s.vault.FrontMatter(docName)
	if err != nil {
		return nil, fmt.Errorf("read front matter: %w", err)
	}

	ref, ok := domain.SyncRefFrom(matter)
	if !ok || ref.Name == "" {
		return nil, domain.ErrNotYetSynced
	}
	if err := s.checkSite(ref); err != nil {
		return nil, err
	}

	post, err := s.gateway.GetPost(ctx, ref.Name)
	if err != nil {
		return nil, err
	}

	// The display-name lookups come first so a failed fetch leaves the
	// note, and with it the recorded identity, untouched.
	rewrite, err := s.resolveFrontMatter(ctx, &post.Post)
	if err != nil {
		return nil, err
	}
	if err := s.vault.Write(docName, post.Content.Raw); err != nil {
		return nil, err
	}
	if err := s.vault.ProcessFrontMatter(docName, rewrite); err != nil {
		return nil, err
	}

	result := &domain.Result{
		Operation: domain.OperationUpdate,
		PostName:  post.Post.Metadata.Name,
		Title:     post.Post.Spec.Title,
		Document:  docName,
		Published: post.Post.Spec.Publish,
		Duration:  time.Since(startTime),
	}

	s.logger.Info("update completed", "post", result.PostName, "duration", result.Duration)

	return result, nil
}

// Pull creates a new local document from a remote post.
func (s *SyncService) Pull(ctx context.Context, postName string) (*domain.Result, error) {
	startTime := time.Now()
	s.logger.Info("starting pull", "post", postName)

	post, err := s.gateway.GetPost(ctx, postName)
	if err != nil {
		return nil, err
	}

	docName := post.Post.Spec.Title + ".md"
	rewrite, err := s.resolveFrontMatter(ctx, &post.Post)
	if err != nil {
		return nil, err
	}
	if err := s.vault.Create(docName, post.Content.Raw); err != nil {
		return nil, err
	}
	if err := s.vault.ProcessFrontMatter(docName, rewrite); err != nil {
		return nil, err
	}

	result := &domain.Result{
		Operation: domain.OperationPull,
		PostName:  postName,
		Title:     post.Post.Spec.Title,
		Document:  docName,
		Published: post.Post.Spec.Publish,
		Duration:  time.Since(startTime),
	}

	s.logger.Info("pull completed", "document", docName, "duration", result.Duration)

	return result, nil
}

// ListPosts exposes the remote post listing for selection steps.
func (s *SyncService) ListPosts(ctx context.Context) ([]halo.ListedPost, error) {
	return s.gateway.ListPosts(ctx)
}

// checkSite guards against cross-site identity reassignment: a document
// bound to another site never proceeds.
func (s *SyncService) checkSite(ref domain.SyncRef) error {
	if ref.Site != "" && ref.Site != s.site.URL {
		return fmt.Errorf("%w: document is bound to %s, operation targets %s",
			domain.ErrIdentityMismatch, ref.Site, s.site.URL)
	}
	return nil
}

// reconcileTaxonomy resolves the front matter's category and tag names into
// remote identifiers. The two batches are independent writes and run
// concurrently.
func (s *SyncService) reconcileTaxonomy(ctx context.Context, matter map[string]any, params *halo.Post) error {
	categoryNames, hasCategories := domain.StringListField(matter, matterKeyCategories)
	tagNames, hasTags := domain.StringListField(matter, matterKeyTags)

	g, gctx := errgroup.WithContext(ctx)

	if hasCategories {
		g.Go(func() error {
			names, err := s.taxonomy.ResolveCategories(gctx, categoryNames)
			if err != nil {
				return err
			}
			params.Spec.Categories = names
			return nil
		})
	}

	if hasTags {
		g.Go(func() error {
			names, err := s.taxonomy.ResolveTags(gctx, tagNames)
			if err != nil {
				return err
			}
			params.Spec.Tags = names
			return nil
		})
	}

	return g.Wait()
}

// updateExisting writes the post record, then the draft content. The draft
// snapshot is re-fetched first so unrelated annotation keys survive the
// write.
func (s *SyncService) updateExisting(ctx context.Context, params *halo.Post, content halo.Content) error {
	if err := s.gateway.UpdatePost(ctx, params); err != nil {
		return err
	}

	snapshot, err := s.gateway.GetDraft(ctx, params.Metadata.Name)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	if snapshot.Metadata.Annotations == nil {
		snapshot.Metadata.Annotations = map[string]string{}
	}
	snapshot.Metadata.Annotations[halo.AnnotationContentJSON] = string(encoded)

	return s.gateway.UpdateDraft(ctx, params.Metadata.Name, snapshot)
}

// createNew mints the identity and defaults, attaches the content and issues
// the create request.
func (s *SyncService) createNew(ctx context.Context, params *halo.Post, content halo.Content, docName string, matter map[string]any) (*halo.Post, error) {
	applyCreateDefaults(params, matter, docName, s.slugify)

	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	if params.Metadata.Annotations == nil {
		params.Metadata.Annotations = map[string]string{}
	}
	params.Metadata.Annotations[halo.AnnotationContentJSON] = string(encoded)

	return s.gateway.CreatePost(ctx, params)
}

// applyPublishPolicy decides publish vs unpublish: an explicit flag in the
// sync reference wins, otherwise the configured default applies, otherwise
// the current remote state stays as it is. The decision is recorded on the
// post so the result stays accurate even when the later re-fetch fails.
func (s *SyncService) applyPublishPolicy(ctx context.Context, ref domain.SyncRef, post *halo.Post) error {
	switch {
	case ref.Publish != nil && *ref.Publish:
		if err := s.gateway.Publish(ctx, post.Metadata.Name); err != nil {
			return err
		}
		post.Spec.Publish = true
	case ref.Publish != nil:
		if err := s.gateway.Unpublish(ctx, post.Metadata.Name); err != nil {
			return err
		}
		post.Spec.Publish = false
	case s.config.PublishByDefault:
		if err := s.gateway.Publish(ctx, post.Metadata.Name); err != nil {
			return err
		}
		post.Spec.Publish = true
	}
	return nil
}

// resolveFrontMatter prepares the single local write-back of an operation:
// taxonomy identifiers become display names again and the sync reference is
// stamped with the active site. The remote lookups happen here, before the
// caller touches the note, so a failed lookup never strands a half-written
// document.
func (s *SyncService) resolveFrontMatter(ctx context.Context, post *halo.Post) (func(matter map[string]any), error) {
	categories, err := s.taxonomy.CategoryDisplayNames(ctx, post.Spec.Categories)
	if err != nil {
		return nil, err
	}
	tags, err := s.taxonomy.TagDisplayNames(ctx, post.Spec.Tags)
	if err != nil {
		return nil, err
	}

	publish := post.Spec.Publish
	ref := domain.SyncRef{
		Site:    s.site.URL,
		Name:    post.Metadata.Name,
		Publish: &publish,
	}

	return func(matter map[string]any) {
		applyPostToMatter(matter, post, categories, tags, ref)
	}, nil
}
