package mdark

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"
)

// A4 portrait page size in millimetres.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// Placement is where a raster lands on the page, in millimetres.
type Placement struct {
	X, Y          float64
	Width, Height float64
	Ratio         float64 // Millimetres per raster pixel
}

// FitToPage scales an image uniformly so it fits inside the page, centres it
// horizontally and anchors it at the top. Tall content is shrunk, never split.
func FitToPage(pageW, pageH float64, imgW, imgH int) Placement {
	if imgW <= 0 || imgH <= 0 {
		return Placement{}
	}
	w, h := float64(imgW), float64(imgH)
	ratio := min(pageW/w, pageH/h)
	return Placement{
		X:      (pageW - w*ratio) / 2,
		Y:      0,
		Width:  w * ratio,
		Height: h * ratio,
		Ratio:  ratio,
	}
}

// Assembler packs a raster into a document.
type Assembler interface {
	Assemble(r *Raster) ([]byte, error)
}

// PDFAssembler writes a one-page A4 portrait PDF holding the raster.
type PDFAssembler struct {
	Title string
	Now   func() time.Time // Creation date; nil uses time.Now
}

// Assemble embeds r as the whole content of a single page.
func (a *PDFAssembler) Assemble(r *Raster) ([]byte, error) {
	if r == nil || len(r.PNG) == 0 {
		return nil, fmt.Errorf("%w: no raster", ErrAssemble)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("mdark", true)
	if a.Title != "" {
		pdf.SetTitle(a.Title, true)
	}
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	pdf.SetCreationDate(now())
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	place := FitToPage(pageW, pageH, r.Width, r.Height)

	const imageName = "capture"
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(r.PNG))
	pdf.ImageOptions(imageName, place.X, place.Y, place.Width, place.Height, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	return buf.Bytes(), nil
}
