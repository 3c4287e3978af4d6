package card

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Font sizes in pixels, matching the print layout.
const (
	titleFontSize   = 90
	bodyFontSize    = 70
	captionFontSize = 60
	footerFontSize  = 50
)

var footerGray = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

// Compositor renders card specs onto an A4 canvas. Faces are built once at
// construction; a missing or unparsable font degrades to the built-in
// bitmap face instead of failing, while a configured-but-missing background
// template is a fatal configuration error.
type Compositor struct {
	title    font.Face
	body     font.Face
	caption  font.Face
	footer   font.Face
	template image.Image
}

// NewCompositor loads the fonts and the optional background template.
// fontPath and templatePath may be empty; an empty templatePath means a
// plain white canvas.
func NewCompositor(fontPath, templatePath string) (*Compositor, error) {
	c := &Compositor{}
	c.loadFaces(fontPath)

	if templatePath != "" {
		tpl, err := imaging.Open(templatePath)
		if err != nil {
			return nil, fmt.Errorf("card: background template: %w", err)
		}
		c.template = tpl
	}

	return c, nil
}

func (c *Compositor) loadFaces(fontPath string) {
	data := goregular.TTF
	if fontPath != "" {
		if b, err := os.ReadFile(fontPath); err == nil {
			data = b
		}
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		// Unusable font asset: keep rendering with the built-in face.
		c.title = basicfont.Face7x13
		c.body = basicfont.Face7x13
		c.caption = basicfont.Face7x13
		c.footer = basicfont.Face7x13
		return
	}

	c.title = newFace(ft, titleFontSize)
	c.body = newFace(ft, bodyFontSize)
	c.caption = newFace(ft, captionFontSize)
	c.footer = newFace(ft, footerFontSize)
}

func newFace(ft *opentype.Font, sizePx float64) font.Face {
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Compose renders the spec and returns the finished card bitmap. Placement
// is deterministic for identical inputs; only glyph rasterization may vary
// across font backends.
func (c *Compositor) Compose(spec Spec) (image.Image, error) {
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = A4Width
	}
	if height <= 0 {
		height = A4Height
	}

	canvas := imaging.New(width, height, color.White)
	if c.template != nil {
		tpl := c.template
		if tpl.Bounds().Dx() != width || tpl.Bounds().Dy() != height {
			tpl = imaging.Resize(tpl, width, height, imaging.Lanczos)
		}
		canvas = imaging.Paste(canvas, tpl, image.Pt(0, 0))
	}

	layout := computeLayout(spec)

	if spec.Title != "" {
		c.drawCentered(canvas, c.title, color.Black, 0, width, layout.TitleY, spec.Title)
	}
	for i, field := range spec.Fields {
		pt := layout.FieldPos[i]
		c.drawText(canvas, c.body, color.Black, pt.X, pt.Y, field.Label+": "+field.Value)
	}

	for i, slot := range spec.Images {
		pl := layout.Images[i]
		if slot.Image == nil || pl.Width <= 0 || pl.Height <= 0 {
			continue
		}
		resized := imaging.Resize(slot.Image, pl.Width, pl.Height, imaging.Lanczos)
		canvas = imaging.Paste(canvas, resized, image.Pt(pl.X, pl.Y))
		if slot.Caption != "" {
			c.drawCentered(canvas, c.caption, color.Black, pl.X, pl.Width, pl.CaptionY, slot.Caption)
		}
	}

	if spec.Footer != "" {
		c.drawCentered(canvas, c.footer, footerGray, 0, width, layout.FooterY, spec.Footer)
	}

	return canvas, nil
}

// drawText draws left-aligned text with y as the top of the line.
func (c *Compositor) drawText(dst *image.NRGBA, face font.Face, col color.Color, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// drawCentered centers text horizontally within [x, x+width).
func (c *Compositor) drawCentered(dst *image.NRGBA, face font.Face, col color.Color, x, width, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	textWidth := d.MeasureString(text).Ceil()
	d.Dot = fixed.P(x+(width-textWidth)/2, y+face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}
