package domain

// MatterKeySyncRef is the reserved front matter key that binds a local
// document to a remote post.
const MatterKeySyncRef = "halo"

// Document is a local note: the markdown body plus its parsed front matter.
type Document struct {
	Name   string // file name relative to the vault root
	Matter map[string]any
	Body   string
}

// SyncRef records which remote post a document is bound to. A zero Name
// means the document has never been synced.
type SyncRef struct {
	Site    string
	Name    string
	Publish *bool
}

// SyncRefFrom reads the reserved sync key out of a front matter map.
// The second return value reports whether the key was present at all.
func SyncRefFrom(matter map[string]any) (SyncRef, bool) {
	raw, ok := matter[MatterKeySyncRef]
	if !ok {
		return SyncRef{}, false
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return SyncRef{}, false
	}

	var ref SyncRef
	if site, ok := m["site"].(string); ok {
		ref.Site = site
	}
	if name, ok := m["name"].(string); ok {
		ref.Name = name
	}
	if publish, ok := m["publish"].(bool); ok {
		ref.Publish = &publish
	}

	return ref, true
}

// ToMatter returns the map representation stored under the reserved key.
func (r SyncRef) ToMatter() map[string]any {
	return map[string]any{
		"site":    r.Site,
		"name":    r.Name,
		"publish": r.Publish != nil && *r.Publish,
	}
}

// StringField reads a scalar string field from front matter, reporting
// presence explicitly instead of collapsing missing and empty.
func StringField(matter map[string]any, key string) (string, bool) {
	v, ok := matter[key].(string)
	return v, ok
}

// StringListField reads a list of strings from front matter. YAML decodes
// sequences as []any, so elements are converted one by one; non-string
// elements are skipped.
func StringListField(matter map[string]any, key string) ([]string, bool) {
	raw, ok := matter[key]
	if !ok {
		return nil, false
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}
