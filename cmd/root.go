package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/casevault/ocrbatch/batch"
	"github.com/casevault/ocrbatch/blobstore"
	"github.com/casevault/ocrbatch/config"
	"github.com/casevault/ocrbatch/logx"
	"github.com/casevault/ocrbatch/ocr"
	"github.com/casevault/ocrbatch/raster"
)

var blobIDs []int64

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ocrbatch [file ...]",
	Short: "Extract text from images, PDFs and SVGs via an olmOCR endpoint",
	Long: `ocrbatch sends images (or rasterized PDF/SVG pages) to an olmOCR model
served behind an OpenAI-compatible endpoint and prints the extracted text.

Inputs come either from local files or from case_blob rows in Postgres; the
two modes are mutually exclusive.

File mode prints the extracted text of each file to stdout. Blob mode prints
a JSON array with one entry per id, carrying the per-page breakdown.

Configuration is read from the environment (a .env file is honored):
  OLMOCR_SERVER_URL, OLMOCR_MODEL, OLMOCR_API_KEY,
  OLMOCR_MAX_ATTEMPTS, OLMOCR_TIMEOUT_SECONDS, OLMOCR_MAX_IMAGE_DIM,
  DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASS

Examples:
  ocrbatch scan.png report.pdf           # extract local files
  ocrbatch --blob-ids 17,204             # extract stored blobs, JSON output`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(blobIDs) == 0 {
		return errors.New("provide at least one file path or --blob-ids")
	}
	if len(args) > 0 && len(blobIDs) > 0 {
		return errors.New("file paths and --blob-ids are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	provider := ocr.NewOpenAIProvider(cfg.OCR)
	client := ocr.NewClient(provider, ocr.WithMaxAttempts(cfg.OCR.MaxAttempts))
	normalizer := raster.New(cfg.Raster.MaxImageDim, cfg.Raster.PDFRenderDPI)

	var fetcher batch.BlobFetcher
	if cfg.HasDatabase() {
		fetcher = blobstore.NewFetcher(cfg.Database)
	} else if len(blobIDs) > 0 {
		logx.Warn("database configuration incomplete; blob lookups will fail per item")
	}

	runner := batch.NewRunner(client, normalizer, fetcher)

	var refs []batch.InputRef
	for _, path := range args {
		refs = append(refs, batch.FileRef(path))
	}
	for _, id := range blobIDs {
		refs = append(refs, batch.BlobRef(id))
	}

	result := runner.Run(cmd.Context(), refs)

	if len(blobIDs) > 0 {
		return printJSON(result)
	}
	printText(result)
	// Per-item errors are reported inline; a completed batch exits 0.
	return nil
}

func printJSON(result batch.BatchResult) error {
	out, err := json.MarshalIndent(result.Items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printText(result batch.BatchResult) {
	for _, item := range result.Items {
		if item.Error != nil {
			logx.Error("%s: %s", item.File, item.Error.Message)
			continue
		}
		fmt.Println(item.CombinedText())
	}
}

// Execute runs the root command. Usage and startup failures exit non-zero;
// a batch that completes with per-item errors does not.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Int64SliceVar(&blobIDs, "blob-ids", nil,
		"case_blob ids to process via Postgres (mutually exclusive with file paths)")
}
