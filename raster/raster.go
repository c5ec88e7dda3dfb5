// Package raster turns arbitrary input documents (images, PDFs, SVGs) into an
// ordered sequence of encoded raster pages sized for the OCR endpoint.
package raster

import (
	"path/filepath"
	"strings"

	"github.com/casevault/ocrbatch/errx"
)

var rasterErrors = errx.NewRegistry("RASTER")

var (
	ErrUnsupportedFormat = rasterErrors.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, "Unsupported input format")
	ErrDecodeFailed      = rasterErrors.Register("DECODE_FAILED", errx.TypeValidation, "Failed to decode input")
	ErrRenderFailed      = rasterErrors.Register("RENDER_FAILED", errx.TypeInternal, "Failed to render page")
)

// Kind is the input category determined from the filename extension.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindPDF
	KindSVG
)

// Classify maps a filename to its input kind. Matching is case-insensitive
// and purely extension based; content sniffing is deliberately not attempted.
func Classify(filename string) Kind {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return KindImage
	case ".pdf":
		return KindPDF
	case ".svg":
		return KindSVG
	default:
		return KindUnknown
	}
}

// Page is one encoded raster page ready to submit for OCR. Number is 1-based
// and contiguous within a source.
type Page struct {
	Number int
	PNG    []byte
}

// Normalizer converts raw input bytes into raster pages.
type Normalizer struct {
	maxDim int
	dpi    int
}

// New creates a Normalizer. maxDim bounds the longest edge of every produced
// page; dpi is the fixed resolution for PDF rasterization.
func New(maxDim, dpi int) *Normalizer {
	return &Normalizer{maxDim: maxDim, dpi: dpi}
}

// Normalize converts data into ordered raster pages, dispatching on the
// filename extension. Unknown extensions fail with ErrUnsupportedFormat and
// produce zero pages.
func (n *Normalizer) Normalize(data []byte, filename string) ([]Page, error) {
	switch Classify(filename) {
	case KindImage:
		return n.normalizeImage(data)
	case KindPDF:
		return n.normalizePDF(data)
	case KindSVG:
		return n.normalizeSVG(data)
	default:
		return nil, rasterErrors.New(ErrUnsupportedFormat).
			WithDetail("filename", filename).
			WithDetail("extension", strings.ToLower(filepath.Ext(filename)))
	}
}
