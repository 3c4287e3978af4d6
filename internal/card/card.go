package card

import "image"

// Anchor selects how an image slot is placed horizontally.
type Anchor int

const (
	// AnchorCenter centers the slot on the canvas.
	AnchorCenter Anchor = iota
	// AnchorFixed places the slot at the given X offset.
	AnchorFixed
)

// Field is one "Label: value" line on the card.
type Field struct {
	Label string
	Value string
}

// Slot is a bitmap pasted onto the card, resized to TargetWidth preserving
// aspect ratio, with an optional caption centered below it.
type Slot struct {
	Image       image.Image
	Caption     string
	TargetWidth int
	Anchor      Anchor
	OffsetX     int
}

// Spec describes one card. Width/Height default to A4 at 300 DPI.
type Spec struct {
	Width  int
	Height int
	Title  string
	Fields []Field
	Images []Slot
	Footer string
}
