package image

import "context"

// GenerateRequest describes one portrait generation: the visitor's face
// photo plus the career they chose.
type GenerateRequest struct {
	Photo     []byte
	Career    string
	Name      string
	RequestID string
}

// Asset is a generated portrait.
type Asset struct {
	Data   []byte
	Format string
}

// Generator is the contract implemented by the image provider. Exactly one
// concrete adapter is chosen at configuration time.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
}
