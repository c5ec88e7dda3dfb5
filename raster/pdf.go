package raster

import (
	"github.com/gen2brain/go-fitz"
)

func (n *Normalizer) normalizePDF(data []byte) ([]Page, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, rasterErrors.New(ErrDecodeFailed).WithCause(err)
	}
	defer doc.Close()

	pages := make([]Page, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, float64(n.dpi))
		if err != nil {
			return nil, rasterErrors.New(ErrRenderFailed).
				WithDetail("page", i+1).
				WithCause(err)
		}

		encoded, err := encodePage(clampLongestEdge(img, n.maxDim))
		if err != nil {
			return nil, err
		}
		pages = append(pages, Page{Number: i + 1, PNG: encoded})
	}
	return pages, nil
}
