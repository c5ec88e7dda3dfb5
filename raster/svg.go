package raster

import (
	"bytes"
	"image"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGDim is used when the document declares no usable viewbox.
const defaultSVGDim = 1024

func (n *Normalizer) normalizeSVG(data []byte) ([]Page, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, rasterErrors.New(ErrDecodeFailed).WithCause(err)
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		w, h = defaultSVGDim, defaultSVGDim
	}

	// Scale at render time instead of rendering huge then resampling.
	longest := w
	if h > longest {
		longest = h
	}
	if longest > n.maxDim {
		scale := float64(n.maxDim) / float64(longest)
		w = int(math.Round(float64(w) * scale))
		h = int(math.Round(float64(h) * scale))
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	// Opaque background; transparent pixels would rasterize to black.
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	encoded, err := encodePage(rgba)
	if err != nil {
		return nil, err
	}
	return []Page{{Number: 1, PNG: encoded}}, nil
}
