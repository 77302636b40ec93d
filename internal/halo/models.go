package halo

// Resource shapes follow the Halo v1alpha1 API: every object carries
// apiVersion/kind plus a metadata and a spec section.

const (
	apiVersionContent = "content.halo.run/v1alpha1"

	// AnnotationContentJSON holds the JSON-encoded draft content on a
	// snapshot or a freshly created post.
	AnnotationContentJSON = "content.halo.run/content-json"

	annotationPatchedRaw     = "content.halo.run/patched-raw"
	annotationPatchedContent = "content.halo.run/patched-content"
)

type Metadata struct {
	Name         string            `json:"name"`
	GenerateName string            `json:"generateName,omitempty"`
	Annotations  map[string]string `json:"annotations,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
}

type Post struct {
	APIVersion string   `json:"apiVersion"`
	Kind       string   `json:"kind"`
	Metadata   Metadata `json:"metadata"`
	Spec       PostSpec `json:"spec"`
}

type PostSpec struct {
	Title           string              `json:"title"`
	Slug            string              `json:"slug"`
	Template        string              `json:"template"`
	Cover           string              `json:"cover"`
	Deleted         bool                `json:"deleted"`
	Publish         bool                `json:"publish"`
	PublishTime     string              `json:"publishTime,omitempty"`
	Pinned          bool                `json:"pinned"`
	AllowComment    bool                `json:"allowComment"`
	Visible         string              `json:"visible"`
	Priority        int                 `json:"priority"`
	Excerpt         Excerpt             `json:"excerpt"`
	Categories      []string            `json:"categories"`
	Tags            []string            `json:"tags"`
	HTMLMetas       []map[string]string `json:"htmlMetas"`
	BaseSnapshot    string              `json:"baseSnapshot,omitempty"`
	HeadSnapshot    string              `json:"headSnapshot,omitempty"`
	ReleaseSnapshot string              `json:"releaseSnapshot,omitempty"`
	Owner           string              `json:"owner,omitempty"`
}

type Excerpt struct {
	AutoGenerate bool   `json:"autoGenerate"`
	Raw          string `json:"raw"`
}

// Content is the editable draft content of a post.
type Content struct {
	Raw     string `json:"raw"`
	Content string `json:"content"`
	RawType string `json:"rawType"`
}

// Snapshot is the backend's versioned holder of in-progress content. Fields
// outside our concern are kept so an update does not strip them.
type Snapshot struct {
	APIVersion string       `json:"apiVersion"`
	Kind       string       `json:"kind"`
	Metadata   Metadata     `json:"metadata"`
	Spec       SnapshotSpec `json:"spec"`
}

type SnapshotSpec struct {
	SubjectRef     map[string]string `json:"subjectRef,omitempty"`
	RawType        string            `json:"rawType,omitempty"`
	RawPatch       string            `json:"rawPatch,omitempty"`
	ContentPatch   string            `json:"contentPatch,omitempty"`
	ParentSnapshot string            `json:"parentSnapshotName,omitempty"`
	LastModifyTime string            `json:"lastModifyTime,omitempty"`
	Owner          string            `json:"owner,omitempty"`
	Contributors   []string          `json:"contributors,omitempty"`
}

// PostWithContent pairs a post with its current draft content.
type PostWithContent struct {
	Post    Post
	Content Content
}

type Category struct {
	APIVersion string       `json:"apiVersion"`
	Kind       string       `json:"kind"`
	Metadata   Metadata     `json:"metadata"`
	Spec       CategorySpec `json:"spec"`
}

type CategorySpec struct {
	DisplayName string   `json:"displayName"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Cover       string   `json:"cover"`
	Template    string   `json:"template"`
	Priority    int      `json:"priority"`
	Children    []string `json:"children"`
}

type Tag struct {
	APIVersion string   `json:"apiVersion"`
	Kind       string   `json:"kind"`
	Metadata   Metadata `json:"metadata"`
	Spec       TagSpec  `json:"spec"`
}

type TagSpec struct {
	DisplayName string `json:"displayName"`
	Slug        string `json:"slug"`
	Color       string `json:"color"`
	Cover       string `json:"cover"`
}

// ListedPost is one entry of the console posts listing.
type ListedPost struct {
	Post Post `json:"post"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

// NewPost returns the skeleton the create path starts from, matching the
// server-side defaults for fields the client never edits.
func NewPost() Post {
	return Post{
		APIVersion: apiVersionContent,
		Kind:       "Post",
		Metadata: Metadata{
			Annotations: map[string]string{},
		},
		Spec: PostSpec{
			AllowComment: true,
			Visible:      "PUBLIC",
			Excerpt:      Excerpt{AutoGenerate: true},
			Categories:   []string{},
			Tags:         []string{},
			HTMLMetas:    []map[string]string{},
		},
	}
}

// NewMarkdownContent returns an empty markdown draft.
func NewMarkdownContent() Content {
	return Content{RawType: "markdown"}
}
