package raster

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/casevault/ocrbatch/errx"
)

// buildPDF assembles a minimal but well-formed PDF with the given number of
// empty 200x200pt pages, computing xref offsets as it goes.
func buildPDF(t *testing.T, pageCount int) []byte {
	t.Helper()

	var body bytes.Buffer
	var offsets []int
	body.WriteString("%PDF-1.4\n")

	addObj := func(s string) {
		offsets = append(offsets, body.Len())
		body.WriteString(s)
	}

	kids := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pageCount))
	for i := 0; i < pageCount; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] >>\nendobj\n", 3+i))
	}

	xrefOffset := body.Len()
	total := len(offsets) + 1
	fmt.Fprintf(&body, "xref\n0 %d\n", total)
	body.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&body, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&body, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		total, xrefOffset)
	return body.Bytes()
}

func TestNormalizePDFMultiPage(t *testing.T) {
	n := New(1280, 150)
	pages, err := n.Normalize(buildPDF(t, 3), "report.pdf")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	for i, page := range pages {
		if page.Number != i+1 {
			t.Fatalf("page %d: expected number %d, got %d", i, i+1, page.Number)
		}
		w, h := decodeDims(t, page.PNG)
		if w < 1 || h < 1 || w > 1280 || h > 1280 {
			t.Fatalf("page %d: unexpected dimensions %dx%d", i, w, h)
		}
	}
}

func TestNormalizePDFSinglePage(t *testing.T) {
	n := New(1280, 150)
	pages, err := n.Normalize(buildPDF(t, 1), "single.pdf")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Fatalf("expected one page numbered 1, got %+v", pages)
	}
}

func TestNormalizePDFCorrupt(t *testing.T) {
	n := New(1280, 150)
	_, err := n.Normalize([]byte("definitely not a pdf"), "broken.pdf")
	if !errx.IsCode(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}
}
