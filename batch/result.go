package batch

import (
	"fmt"
	"strings"
)

// Kind tags an input reference as a local file or a stored blob.
type Kind string

const (
	KindFile Kind = "file"
	KindBlob Kind = "blob"
)

// InputRef identifies one batch input. Constructed once per item from the
// CLI arguments and never mutated.
type InputRef struct {
	Kind   Kind
	Path   string
	BlobID int64
}

// FileRef builds a file input reference
func FileRef(path string) InputRef {
	return InputRef{Kind: KindFile, Path: path}
}

// BlobRef builds a blob input reference
func BlobRef(id int64) InputRef {
	return InputRef{Kind: KindBlob, BlobID: id}
}

func (r InputRef) String() string {
	if r.Kind == KindBlob {
		return fmt.Sprintf("blob:%d", r.BlobID)
	}
	return r.Path
}

// PageResult is the extracted text of one raster page. Confidence is always
// the fixed placeholder: the endpoint exposes no per-line confidence and this
// module must not fabricate one.
type PageResult struct {
	Page       int     `json:"page"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ItemError is the structured error marker for a failed batch item.
type ItemError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ItemResult is the outcome for one batch input. A failed item carries an
// Error and zero pages; a successful item carries pages and no Error.
type ItemResult struct {
	Source   Kind         `json:"source"`
	File     string       `json:"file,omitempty"`
	BlobID   *int64       `json:"id,omitempty"`
	Filename string       `json:"filename,omitempty"`
	Pages    []PageResult `json:"pages,omitempty"`
	Success  bool         `json:"success"`
	Error    *ItemError   `json:"error,omitempty"`
}

// CombinedText concatenates the item's pages in order, preserving page breaks
// as blank lines.
func (r ItemResult) CombinedText() string {
	parts := make([]string, 0, len(r.Pages))
	for _, page := range r.Pages {
		parts = append(parts, strings.TrimRight(page.Text, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// BatchResult is the ordered outcome of one invocation, one entry per
// requested input, in request order.
type BatchResult struct {
	Items []ItemResult
}

// Failed counts the items that carry an error marker.
func (b BatchResult) Failed() int {
	n := 0
	for _, item := range b.Items {
		if item.Error != nil {
			n++
		}
	}
	return n
}
