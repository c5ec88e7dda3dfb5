package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/casevault/ocrbatch/errx"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding produced page: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestClassify(t *testing.T) {
	cases := []struct {
		filename string
		want     Kind
	}{
		{"scan.png", KindImage},
		{"scan.PNG", KindImage},
		{"photo.jpg", KindImage},
		{"photo.JPEG", KindImage},
		{"anim.gif", KindImage},
		{"bitmap.bmp", KindImage},
		{"fax.tif", KindImage},
		{"fax.tiff", KindImage},
		{"report.pdf", KindPDF},
		{"report.PDF", KindPDF},
		{"diagram.svg", KindSVG},
		{"notes.txt", KindUnknown},
		{"archive.zip", KindUnknown},
		{"noextension", KindUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.filename); got != tc.want {
			t.Fatalf("%s: expected kind %d, got %d", tc.filename, tc.want, got)
		}
	}
}

func TestNormalizeUnsupportedFormat(t *testing.T) {
	n := New(1280, 300)
	pages, err := n.Normalize([]byte("whatever"), "notes.txt")
	if !errx.IsCode(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if len(pages) != 0 {
		t.Fatalf("expected zero pages, got %d", len(pages))
	}
}

func TestNormalizeImagePassthrough(t *testing.T) {
	n := New(1280, 300)
	pages, err := n.Normalize(makePNG(t, 640, 480), "small.png")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Fatalf("expected a single page numbered 1, got %+v", pages)
	}
	if w, h := decodeDims(t, pages[0].PNG); w != 640 || h != 480 {
		t.Fatalf("image within bounds must keep its size, got %dx%d", w, h)
	}
}

func TestNormalizeImageDownscalesLongestEdge(t *testing.T) {
	n := New(1280, 300)
	pages, err := n.Normalize(makePNG(t, 2000, 1000), "wide.png")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	w, h := decodeDims(t, pages[0].PNG)
	if w != 1280 {
		t.Fatalf("expected longest edge 1280, got %d", w)
	}
	if h != 640 {
		t.Fatalf("expected aspect-preserving height 640, got %d", h)
	}
}

func TestNormalizeImageDownscalesPortrait(t *testing.T) {
	n := New(1280, 300)
	pages, err := n.Normalize(makePNG(t, 1000, 2000), "tall.png")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	w, h := decodeDims(t, pages[0].PNG)
	if h != 1280 || w != 640 {
		t.Fatalf("expected 640x1280, got %dx%d", w, h)
	}
}

func TestNormalizeBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encoding bmp fixture: %v", err)
	}

	n := New(1280, 300)
	pages, err := n.Normalize(buf.Bytes(), "bitmap.bmp")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if w, h := decodeDims(t, pages[0].PNG); w != 32 || h != 16 {
		t.Fatalf("expected 32x16, got %dx%d", w, h)
	}
}

func TestNormalizeCorruptImage(t *testing.T) {
	n := New(1280, 300)
	_, err := n.Normalize([]byte("not a png"), "broken.png")
	if !errx.IsCode(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := New(1280, 300)
	data := makePNG(t, 2000, 1000)

	first, err := n.Normalize(data, "wide.png")
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := n.Normalize(data, "wide.png")
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("page count changed between passes: %d vs %d", len(first), len(second))
	}
	if !bytes.Equal(first[0].PNG, second[0].PNG) {
		t.Fatalf("raster output changed between passes")
	}
}

func TestNormalizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100">
		<rect x="10" y="10" width="180" height="80" fill="black"/>
	</svg>`)

	n := New(1280, 300)
	pages, err := n.Normalize(svg, "diagram.svg")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Fatalf("expected a single page numbered 1, got %+v", pages)
	}
	if w, h := decodeDims(t, pages[0].PNG); w != 200 || h != 100 {
		t.Fatalf("expected 200x100, got %dx%d", w, h)
	}
}

func TestNormalizeSVGClampsLongestEdge(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4000 2000"></svg>`)

	n := New(1280, 300)
	pages, err := n.Normalize(svg, "huge.svg")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if w, h := decodeDims(t, pages[0].PNG); w != 1280 || h != 640 {
		t.Fatalf("expected 1280x640, got %dx%d", w, h)
	}
}

func TestNormalizeSVGInvalid(t *testing.T) {
	n := New(1280, 300)
	_, err := n.Normalize([]byte("<not-svg"), "broken.svg")
	if !errx.IsCode(err, ErrDecodeFailed) {
		t.Fatalf("expected ErrDecodeFailed, got %v", err)
	}
}
