package card

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"

	"futureself/internal/domain"
)

const (
	cardTitle  = "Future Career Profile"
	cardFooter = "Career Future Self"
)

// Renderer builds the printable A4 card for one submission: title, the
// visitor's details, the captured photo stacked above the generated
// portrait, and a footer.
type Renderer struct {
	comp *Compositor
}

// NewRenderer wraps a compositor.
func NewRenderer(comp *Compositor) *Renderer {
	return &Renderer{comp: comp}
}

// Render decodes both photos, composes the card, and returns it PNG-encoded.
func (r *Renderer) Render(sub domain.Submission, original, generated []byte) ([]byte, error) {
	capturedImg, err := imaging.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("card: decode captured photo: %w", err)
	}
	portraitImg, err := imaging.Decode(bytes.NewReader(generated))
	if err != nil {
		return nil, fmt.Errorf("card: decode generated portrait: %w", err)
	}

	spec := Spec{
		Title: cardTitle,
		Fields: []Field{
			{Label: "Name", Value: sub.Name},
			{Label: "Mobile", Value: sub.Mobile},
			{Label: "Future Goal", Value: sub.Goal},
		},
		Images: []Slot{
			{Image: capturedImg, Caption: "Captured Photo", TargetWidth: DefaultImageWidth, Anchor: AnchorCenter},
			{Image: portraitImg, Caption: "Future " + sub.Goal, TargetWidth: DefaultImageWidth, Anchor: AnchorCenter},
		},
		Footer: cardFooter,
	}

	img, err := r.comp.Compose(spec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("card: encode: %w", err)
	}
	return buf.Bytes(), nil
}
