// Package search defines the shared result shape produced by every
// federated-search source.
package search

// SourceType identifies which backing source produced a result.
type SourceType string

const (
	// TypeLocation marks a result from the static office list.
	TypeLocation SourceType = "location"
	// TypeArticle marks a result from the content API article feed.
	TypeArticle SourceType = "article"
	// TypePage marks a result from the compiled-in page registry.
	TypePage SourceType = "page"
)

// Metadata is the optional per-type extra fields of a result.
type Metadata struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Result is a single search hit. Results are constructed fresh on every
// search invocation and never reused across queries.
type Result struct {
	ID          string     `json:"id"`
	Type        SourceType `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url"`
	Metadata    *Metadata  `json:"metadata,omitempty"`
}
