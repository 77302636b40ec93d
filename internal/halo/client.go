// Package halo is the REST gateway to a Halo site. It speaks the
// uc.api.content.halo.run post endpoints plus the content.halo.run taxonomy
// endpoints and knows nothing about local documents.
package halo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const (
	ucPostsPath   = "/apis/uc.api.content.halo.run/v1alpha1/posts"
	consolePosts  = "/apis/api.console.halo.run/v1alpha1/posts"
	categoriesURL = "/apis/content.halo.run/v1alpha1/categories"
	tagsURL       = "/apis/content.halo.run/v1alpha1/tags"

	notDeletedSelector = "labelSelector=content.halo.run%2Fdeleted%3Dfalse"
)

// Config holds the connection settings for one site. Either Token or the
// Username/Password pair must be set.
type Config struct {
	BaseURL  string
	Token    string
	Username string
	Password string
}

// Client issues requests against a single Halo site. The auth header is
// built once and reused for every request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
	logger     *slog.Logger
}

// NewClient creates a gateway for the given site. The supplied http.Client
// carries the transport timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	auth := "Bearer " + cfg.Token
	if cfg.Token == "" {
		creds := cfg.Username + ":" + cfg.Password
		auth = "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		authHeader: auth,
		logger:     logger.With("site", cfg.BaseURL),
	}
}

// GetPost fetches a post and its current draft content by identity.
func (c *Client) GetPost(ctx context.Context, name string) (*PostWithContent, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, ucPostsPath+"/"+name, nil, &post); err != nil {
		return nil, fmt.Errorf("get post %q: %w", name, err)
	}

	snapshot, err := c.GetDraft(ctx, name)
	if err != nil {
		return nil, err
	}

	return &PostWithContent{
		Post:    post,
		Content: contentFromSnapshot(snapshot),
	}, nil
}

// contentFromSnapshot assembles the draft content out of a snapshot. Recent
// servers expose it through the patched-* annotations; older ones only carry
// the JSON-encoded content annotation, so both shapes are accepted.
func contentFromSnapshot(snapshot *Snapshot) Content {
	annotations := snapshot.Metadata.Annotations

	content := Content{
		Raw:     annotations[annotationPatchedRaw],
		Content: annotations[annotationPatchedContent],
		RawType: snapshot.Spec.RawType,
	}

	if content.Raw == "" {
		if encoded, ok := annotations[AnnotationContentJSON]; ok {
			_ = json.Unmarshal([]byte(encoded), &content)
		}
	}

	return content
}

// CreatePost creates a new post and returns the server's view of it.
func (c *Client) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	var created Post
	if err := c.do(ctx, http.MethodPost, ucPostsPath, post, &created); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &created, nil
}

// UpdatePost replaces the stored post record.
func (c *Client) UpdatePost(ctx context.Context, post *Post) error {
	path := ucPostsPath + "/" + post.Metadata.Name
	if err := c.do(ctx, http.MethodPut, path, post, nil); err != nil {
		return fmt.Errorf("update post %q: %w", post.Metadata.Name, err)
	}
	return nil
}

// GetDraft fetches the current draft snapshot of a post.
func (c *Client) GetDraft(ctx context.Context, name string) (*Snapshot, error) {
	var snapshot Snapshot
	path := ucPostsPath + "/" + name + "/draft?patched=true"
	if err := c.do(ctx, http.MethodGet, path, nil, &snapshot); err != nil {
		return nil, fmt.Errorf("get draft %q: %w", name, err)
	}
	return &snapshot, nil
}

// UpdateDraft writes a draft snapshot back, annotations included.
func (c *Client) UpdateDraft(ctx context.Context, name string, snapshot *Snapshot) error {
	path := ucPostsPath + "/" + name + "/draft"
	if err := c.do(ctx, http.MethodPut, path, snapshot, nil); err != nil {
		return fmt.Errorf("update draft %q: %w", name, err)
	}
	return nil
}

// Publish makes the post's current content publicly visible.
func (c *Client) Publish(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodPut, ucPostsPath+"/"+name+"/publish", nil, nil); err != nil {
		return fmt.Errorf("publish post %q: %w", name, err)
	}
	return nil
}

// Unpublish reverts the post to draft state.
func (c *Client) Unpublish(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodPut, ucPostsPath+"/"+name+"/unpublish", nil, nil); err != nil {
		return fmt.Errorf("unpublish post %q: %w", name, err)
	}
	return nil
}

// ListPosts returns the console listing of non-deleted posts.
func (c *Client) ListPosts(ctx context.Context) ([]ListedPost, error) {
	var resp listResponse[ListedPost]
	if err := c.do(ctx, http.MethodGet, consolePosts+"?"+notDeletedSelector, nil, &resp); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return resp.Items, nil
}

// ListCategories fetches the complete remote category set.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var resp listResponse[Category]
	if err := c.do(ctx, http.MethodGet, categoriesURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return resp.Items, nil
}

// CreateCategory creates a category and returns the server's view of it.
func (c *Client) CreateCategory(ctx context.Context, category *Category) (*Category, error) {
	var created Category
	if err := c.do(ctx, http.MethodPost, categoriesURL, category, &created); err != nil {
		return nil, fmt.Errorf("create category %q: %w", category.Spec.DisplayName, err)
	}
	return &created, nil
}

// ListTags fetches the complete remote tag set.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var resp listResponse[Tag]
	if err := c.do(ctx, http.MethodGet, tagsURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return resp.Items, nil
}

// CreateTag creates a tag and returns the server's view of it.
func (c *Client) CreateTag(ctx context.Context, tag *Tag) (*Tag, error) {
	var created Tag
	if err := c.do(ctx, http.MethodPost, tagsURL, tag, &created); err != nil {
		return nil, fmt.Errorf("create tag %q: %w", tag.Spec.DisplayName, err)
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	c.logger.Debug("issuing request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
