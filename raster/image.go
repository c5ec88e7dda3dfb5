package raster

import (
	"bytes"
	"image"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"

	// Register decoders for every supported single-page image format.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func (n *Normalizer) normalizeImage(data []byte) ([]Page, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, rasterErrors.New(ErrDecodeFailed).WithCause(err)
	}

	encoded, err := encodePage(clampLongestEdge(img, n.maxDim))
	if err != nil {
		return nil, err
	}
	return []Page{{Number: 1, PNG: encoded}}, nil
}

// clampLongestEdge downscales img so its longest edge does not exceed maxDim,
// preserving aspect ratio. Images already within bounds pass through.
func clampLongestEdge(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longest)
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

func encodePage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, rasterErrors.New(ErrRenderFailed).WithCause(err)
	}
	return buf.Bytes(), nil
}
