package card

import "image"

// A4 page at 300 DPI.
const (
	A4Width  = 2480
	A4Height = 3508

	// DefaultImageWidth is the paste width used when a slot does not set one.
	DefaultImageWidth = 1600
)

const (
	titleY       = 100
	fieldsX      = 200
	fieldsTop    = 300
	fieldLine    = 120
	imagesOffset = 450
	captionGap   = 20
	imageGap     = 200
	footerRise   = 200
)

// Placement is the computed pixel rectangle for one image slot.
type Placement struct {
	X        int
	Y        int
	Width    int
	Height   int
	CaptionY int
}

// Layout holds every font-independent coordinate of a card. It is a pure
// function of the spec and the source image dimensions, so identical inputs
// always yield identical placements. Title and caption X positions depend on
// measured text width and are resolved at draw time.
type Layout struct {
	TitleY   int
	FieldPos []image.Point
	Images   []Placement
	FooterY  int
}

func computeLayout(spec Spec) Layout {
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = A4Width
	}
	if height <= 0 {
		height = A4Height
	}

	l := Layout{TitleY: titleY, FooterY: height - footerRise}

	for i := range spec.Fields {
		l.FieldPos = append(l.FieldPos, image.Pt(fieldsX, fieldsTop+i*fieldLine))
	}

	y := fieldsTop + imagesOffset
	for _, slot := range spec.Images {
		// A slot without an image gets a zero placement so indices stay
		// aligned with spec.Images; it occupies no vertical space.
		if slot.Image == nil {
			l.Images = append(l.Images, Placement{})
			continue
		}
		targetWidth := slot.TargetWidth
		if targetWidth <= 0 {
			targetWidth = DefaultImageWidth
		}
		h := scaledHeight(slot.Image.Bounds(), targetWidth)
		x := slot.OffsetX
		if slot.Anchor == AnchorCenter {
			x = (width - targetWidth) / 2
		}
		l.Images = append(l.Images, Placement{
			X:        x,
			Y:        y,
			Width:    targetWidth,
			Height:   h,
			CaptionY: y + h + captionGap,
		})
		y += h + imageGap
	}

	return l
}

// scaledHeight resizes src to targetWidth preserving aspect ratio.
func scaledHeight(src image.Rectangle, targetWidth int) int {
	if src.Dx() <= 0 {
		return 0
	}
	return int(float64(src.Dy()) * float64(targetWidth) / float64(src.Dx()))
}
