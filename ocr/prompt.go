package ocr

import "strings"

// defaultPrompt is the fixed transcription instruction sent with every page.
const defaultPrompt = "Attached is one page of a document. " +
	"Transcribe all visible text into clean Markdown, reading in natural order. " +
	"Preserve headings, lists and tables. Render equations as LaTeX. " +
	"Do not describe images and do not add commentary; return only the transcription."

// stripFrontMatter removes a leading YAML front-matter block from a model
// completion. The olmOCR model family prefixes its transcript with metadata
// delimited by "---" lines; only the natural text after it is the result.
func stripFrontMatter(text string) string {
	trimmed := strings.TrimLeft(text, "\r\n")
	if !strings.HasPrefix(trimmed, "---") {
		return text
	}

	rest := trimmed[len("---"):]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return text
	}

	after := rest[idx+len("\n---"):]
	// The closing delimiter must sit on its own line.
	if nl := strings.IndexByte(after, '\n'); nl >= 0 {
		return strings.TrimLeft(after[nl+1:], "\r\n")
	}
	return ""
}
