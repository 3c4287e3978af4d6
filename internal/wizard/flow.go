package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"futureself/internal/domain"
	img "futureself/internal/providers/image"
)

// BlobStore uploads a backup copy of the portrait and returns the file id
// and a public URL.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, filename string) (string, string, error)
}

// ArtifactStore persists transient artifacts for later download.
type ArtifactStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

// CardRenderer builds the printable card for a submission.
type CardRenderer interface {
	Render(sub domain.Submission, original, generated []byte) ([]byte, error)
}

// Controller drives the wizard. It owns the per-call failure policy: a
// validation or duplicate-contact error blocks the transition, generation
// and backup failures degrade, and nothing is fatal to the process.
type Controller struct {
	repo      domain.SubmissionRepository
	generator img.Generator
	blobs     BlobStore
	artifacts ArtifactStore
	cards     CardRenderer
	logger    zerolog.Logger
	now       func() time.Time
}

// NewController wires the collaborators. blobs may be nil when backup is not
// configured; artifacts and cards may be nil in degraded setups.
func NewController(repo domain.SubmissionRepository, generator img.Generator, blobs BlobStore, artifacts ArtifactStore, cards CardRenderer, logger zerolog.Logger) *Controller {
	return &Controller{
		repo:      repo,
		generator: generator,
		blobs:     blobs,
		artifacts: artifacts,
		cards:     cards,
		logger:    logger,
		now:       time.Now,
	}
}

// Start moves the session onto the create page.
func (c *Controller) Start(s *Session) error {
	if s.State == StateCreate {
		return nil
	}
	if !canTransition(s.State, StateCreate) {
		return ErrInvalidTransition
	}
	s.State = StateCreate
	return nil
}

// Submit validates the form and performs the single record write, then moves
// the session to the result page. All validation runs before any external
// call; a duplicate mobile blocks the transition.
func (c *Controller) Submit(ctx context.Context, s *Session, form domain.SubmissionForm, photo []byte) error {
	if s.State != StateCreate {
		return ErrInvalidTransition
	}

	form.HasPhoto = len(photo) > 0
	if err := form.Validate(); err != nil {
		return err
	}

	s.Form = form
	s.OriginalImage = photo
	s.GeneratedImage = nil
	s.Card = nil
	s.BackupURL = ""
	s.BackupFileID = ""
	s.Warnings = nil

	sub := &domain.Submission{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Mobile:    form.Mobile,
		Goal:      form.Goal,
		CreatedAt: c.now().UTC(),
	}
	if err := c.repo.Save(ctx, sub); err != nil {
		return err
	}

	s.SubmissionID = sub.ID
	s.State = StateResult
	return nil
}

// EnterResult performs the one-time generation work for the result page:
// generate the portrait (falling back to the original photo on any provider
// failure), store artifacts, compose the card, and run the gated backup
// upload. Re-entering with a portrait already in the session does nothing.
func (c *Controller) EnterResult(ctx context.Context, s *Session) error {
	if s.State != StateResult {
		return ErrInvalidTransition
	}
	if s.GeneratedImage != nil {
		return nil
	}

	generated := s.OriginalImage
	if c.generator != nil {
		asset, err := c.generator.Generate(ctx, img.GenerateRequest{
			Photo:     s.OriginalImage,
			Career:    s.Form.Goal,
			Name:      s.Form.Name,
			RequestID: s.SubmissionID,
		})
		if err != nil {
			c.logger.Warn().Err(err).Msg("portrait generation failed, using original photo")
		} else {
			generated = asset.Data
		}
	}
	s.GeneratedImage = generated

	sub := c.submission(s)
	c.storeArtifacts(ctx, s)

	if c.cards != nil {
		cardPNG, err := c.cards.Render(sub, s.OriginalImage, s.GeneratedImage)
		if err != nil {
			c.logger.Warn().Err(err).Msg("card composition failed")
			s.Warnings = append(s.Warnings, "Printable card is unavailable for this run.")
		} else {
			s.Card = cardPNG
			if c.artifacts != nil {
				if _, err := c.artifacts.Write(ctx, artifactKey(s.SubmissionID, "card.png"), cardPNG); err != nil {
					c.logger.Warn().Err(err).Msg("card artifact write failed")
				}
			}
		}
	}

	c.backup(ctx, s, sub)
	return nil
}

// Reset returns from the result page to a fresh create page, keeping name
// and mobile.
func (c *Controller) Reset(s *Session) error {
	if s.State != StateResult {
		return ErrInvalidTransition
	}
	s.reset()
	return nil
}

func (c *Controller) submission(s *Session) domain.Submission {
	return domain.Submission{
		ID:     s.SubmissionID,
		Name:   s.Form.Name,
		Mobile: s.Form.Mobile,
		Goal:   s.Form.Goal,
	}
}

func (c *Controller) storeArtifacts(ctx context.Context, s *Session) {
	if c.artifacts == nil {
		return
	}
	if _, err := c.artifacts.Write(ctx, artifactKey(s.SubmissionID, "original.jpg"), s.OriginalImage); err != nil {
		c.logger.Warn().Err(err).Msg("original artifact write failed")
	}
	if _, err := c.artifacts.Write(ctx, artifactKey(s.SubmissionID, "generated.png"), s.GeneratedImage); err != nil {
		c.logger.Warn().Err(err).Msg("generated artifact write failed")
	}
}

// backup runs the configuration-gated Drive upload. Upload and record-patch
// failures are soft: they surface as warnings and never block the result.
func (c *Controller) backup(ctx context.Context, s *Session, sub domain.Submission) {
	if c.blobs == nil {
		return
	}

	filename := fmt.Sprintf("%s-%s-%s.jpg", sub.Name, sub.Goal, c.now().UTC().Format("20060102_150405"))
	fileID, url, err := c.blobs.Upload(ctx, s.GeneratedImage, filename)
	if err != nil {
		c.logger.Warn().Err(err).Msg("backup upload failed")
		s.Warnings = append(s.Warnings, "Backup upload failed; no backup link available.")
		return
	}

	s.BackupFileID = fileID
	s.BackupURL = url
	if err := c.repo.AttachBackup(ctx, s.SubmissionID, url, fileID); err != nil {
		c.logger.Warn().Err(err).Str("submission_id", s.SubmissionID).Msg("backup link not recorded")
		s.Warnings = append(s.Warnings, "Backup link could not be saved to the record.")
	}
}

func artifactKey(submissionID, name string) string {
	return "submissions/" + submissionID + "/" + name
}
