// Package batch orchestrates one invocation: it resolves each requested
// input, normalizes it into raster pages, runs every page through the OCR
// client, and aggregates the outcomes in request order.
package batch

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"

	"github.com/casevault/ocrbatch/blobstore"
	"github.com/casevault/ocrbatch/errx"
	"github.com/casevault/ocrbatch/logx"
	"github.com/casevault/ocrbatch/ocr"
	"github.com/casevault/ocrbatch/raster"
)

// placeholderConfidence is reported for every page. The endpoint exposes no
// real per-line score.
const placeholderConfidence = 1.0

// TextExtractor runs OCR on one encoded raster page.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageData []byte) (ocr.Result, error)
}

// Normalizer converts raw input bytes into ordered raster pages.
type Normalizer interface {
	Normalize(data []byte, filename string) ([]raster.Page, error)
}

// BlobFetcher retrieves a stored blob by id.
type BlobFetcher interface {
	Fetch(ctx context.Context, id int64) (blobstore.Blob, error)
}

// Runner processes batches sequentially. A nil fetcher means the blob store
// is not configured; blob items then fail per-item, not fatally.
type Runner struct {
	extractor  TextExtractor
	normalizer Normalizer
	fetcher    BlobFetcher
	logger     *logx.Logger
}

// NewRunner creates a Runner. fetcher may be nil when no database is
// configured.
func NewRunner(extractor TextExtractor, normalizer Normalizer, fetcher BlobFetcher) *Runner {
	return &Runner{
		extractor:  extractor,
		normalizer: normalizer,
		fetcher:    fetcher,
		logger:     logx.GetLogger(),
	}
}

// Run processes the inputs in the order supplied. Per-item failures are
// recorded inline and never abort the rest of the batch.
func (r *Runner) Run(ctx context.Context, refs []InputRef) BatchResult {
	runID := uuid.NewString()
	r.logger.Info("batch %s: %d input(s)", runID, len(refs))

	items := make([]ItemResult, 0, len(refs))
	for _, ref := range refs {
		item := r.processOne(ctx, ref)
		if item.Error != nil {
			r.logger.Error("batch %s: %s failed: %s (%s)",
				runID, ref, item.Error.Message, item.Error.Kind)
		} else {
			r.logger.Info("batch %s: %s done, %d page(s)", runID, ref, len(item.Pages))
		}
		items = append(items, item)
	}

	result := BatchResult{Items: items}
	r.logger.Info("batch %s: finished, %d ok / %d failed",
		runID, len(items)-result.Failed(), result.Failed())
	return result
}

func (r *Runner) processOne(ctx context.Context, ref InputRef) ItemResult {
	item := ItemResult{Source: ref.Kind}

	var data []byte
	var filename string

	switch ref.Kind {
	case KindBlob:
		id := ref.BlobID
		item.BlobID = &id
		if r.fetcher == nil {
			item.Error = &ItemError{
				Kind:    "database_unavailable",
				Message: "database is not configured",
			}
			return item
		}
		blob, err := r.fetcher.Fetch(ctx, ref.BlobID)
		if err != nil {
			item.Error = itemError(err)
			return item
		}
		data = blob.Data
		filename = blob.Filename
		item.Filename = blob.Filename
	default:
		item.File = ref.Path
		raw, err := os.ReadFile(ref.Path)
		if err != nil {
			item.Error = itemError(err)
			return item
		}
		data = raw
		filename = ref.Path
	}

	pages, err := r.normalizer.Normalize(data, filename)
	if err != nil {
		item.Error = itemError(err)
		return item
	}

	results := make([]PageResult, 0, len(pages))
	for _, page := range pages {
		res, err := r.extractor.ExtractText(ctx, page.PNG)
		if err != nil {
			// No partial silent results: a failed page fails the item.
			item.Error = itemError(err)
			item.Pages = nil
			return item
		}
		results = append(results, PageResult{
			Page:       page.Number,
			Text:       res.Text,
			Confidence: placeholderConfidence,
		})
	}

	item.Pages = results
	item.Success = true
	return item
}

// itemError converts any lower-level failure into the structured per-item
// error marker; nothing below the orchestrator escapes as a raw error.
func itemError(err error) *ItemError {
	kind := "internal"
	switch {
	case errx.IsCode(err, raster.ErrUnsupportedFormat):
		kind = "unsupported_format"
	case errx.IsCode(err, raster.ErrDecodeFailed), errx.IsCode(err, raster.ErrRenderFailed):
		kind = "decode_failed"
	case errx.IsCode(err, ocr.ErrAuthFailed):
		kind = "authentication_failed"
	case errx.IsCode(err, ocr.ErrCallFailed), errx.IsCode(err, ocr.ErrBadResponse):
		kind = "ocr_call_failed"
	case errx.IsCode(err, blobstore.ErrNotFound):
		kind = "not_found"
	case errx.IsCode(err, blobstore.ErrUnavailable), errx.IsCode(err, blobstore.ErrQueryFailed):
		kind = "database_unavailable"
	case errors.Is(err, os.ErrNotExist):
		kind = "file_not_found"
	}

	msg := err.Error()
	if cause := errors.Unwrap(err); cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &ItemError{Kind: kind, Message: msg}
}
