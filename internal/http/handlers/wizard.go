package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"futureself/internal/domain"
	"futureself/internal/share"
	"futureself/internal/wizard"
	"futureself/pkg/zip"
)

// maxPhotoBytes caps the uploaded face photo.
const maxPhotoBytes = 8 << 20

type createPage struct {
	Careers []string
	Form    domain.SubmissionForm
	Error   string
}

type resultPage struct {
	Name        string
	Goal        string
	BackupURL   string
	Warnings    []string
	UseWhatsApp bool
	ShareText   string
	ShareLink   string
}

// Home renders the landing page.
func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	a.Sessions.Ensure(w, r)
	a.render(w, "home.html", nil)
}

// CreateForm renders the capture form, moving the session onto the create
// step first.
func (a *App) CreateForm(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Ensure(w, r)
	if err := a.Wizard.Start(s); err != nil {
		http.Redirect(w, r, "/result", http.StatusSeeOther)
		return
	}
	a.render(w, "create.html", createPage{Careers: a.Careers, Form: s.Form})
}

// CreateSubmit handles the multipart form post. Validation and duplicate
// errors re-render the form with the message; success redirects to /result.
func (a *App) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Ensure(w, r)
	if s.State != wizard.StateCreate {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes+1<<20)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		a.renderCreateError(w, s, domain.SubmissionForm{}, "Photo is too large or the upload is malformed.")
		return
	}

	form := domain.SubmissionForm{
		Name:       r.FormValue("name"),
		Mobile:     r.FormValue("mobile"),
		Goal:       r.FormValue("goal"),
		CustomGoal: r.FormValue("custom_goal"),
		Consent:    r.FormValue("consent") == "on" || r.FormValue("consent") == "true",
	}

	var photo []byte
	if file, _, err := r.FormFile("photo"); err == nil {
		// Read one byte past the cap so an at-limit read is distinguishable
		// from an oversized upload.
		photo, err = io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
		file.Close()
		if err != nil {
			a.renderCreateError(w, s, form, "Could not read the uploaded photo.")
			return
		}
		if len(photo) > maxPhotoBytes {
			a.renderCreateError(w, s, form, "Photo is too large; keep it under 8 MB.")
			return
		}
	}

	err := a.Wizard.Submit(r.Context(), s, form, photo)
	switch {
	case err == nil:
		http.Redirect(w, r, "/result", http.StatusSeeOther)
	case errors.Is(err, domain.ErrDuplicateContact):
		a.renderCreateError(w, s, form, "This mobile number already has a portrait. Each number gets one.")
	case domain.IsValidation(err):
		a.renderCreateError(w, s, form, err.Error())
	default:
		a.Logger.Error().Err(err).Msg("submission failed")
		a.renderCreateError(w, s, form, "Something went wrong saving your details. Please try again.")
	}
}

func (a *App) renderCreateError(w http.ResponseWriter, s *wizard.Session, form domain.SubmissionForm, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	a.render(w, "create.html", createPage{Careers: a.Careers, Form: form, Error: msg})
}

// Result runs the one-time generation work and renders the result page.
func (a *App) Result(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Ensure(w, r)
	if err := a.Wizard.EnterResult(r.Context(), s); err != nil {
		http.Redirect(w, r, "/create", http.StatusSeeOther)
		return
	}

	msg := share.BuildMessage(s.Form.Name, s.Form.Goal, s.BackupURL)
	a.render(w, "result.html", resultPage{
		Name:        s.Form.Name,
		Goal:        s.Form.Goal,
		BackupURL:   s.BackupURL,
		Warnings:    s.Warnings,
		UseWhatsApp: a.UseWhatsApp,
		ShareText:   msg,
		ShareLink:   share.Link(msg),
	})
}

// Reset returns to the create page for another run, keeping name and mobile.
func (a *App) Reset(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Ensure(w, r)
	if err := a.Wizard.Reset(s); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/create", http.StatusSeeOther)
}

// DownloadImage serves the generated portrait.
func (a *App) DownloadImage(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Ensure(w, r)
	if s.GeneratedImage == nil {
		http.NotFound(w, r)
		return
	}
	serveDownload(w, downloadName(s, "future-self", "png"), "image/png", s.GeneratedImage)
}

// DownloadCard serves the printable A4 card.
func (a *App) DownloadCard(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Ensure(w, r)
	if s.Card == nil {
		http.NotFound(w, r)
		return
	}
	serveDownload(w, downloadName(s, "card", "png"), "image/png", s.Card)
}

// DownloadBundle serves the original photo, the portrait and the card as one
// zip archive.
func (a *App) DownloadBundle(w http.ResponseWriter, r *http.Request) {
	s := a.Sessions.Ensure(w, r)
	if s.GeneratedImage == nil {
		http.NotFound(w, r)
		return
	}

	assets := []zip.Asset{
		{Filename: "original.jpg", Data: s.OriginalImage},
		{Filename: "future-self.png", Data: s.GeneratedImage},
	}
	if s.Card != nil {
		assets = append(assets, zip.Asset{Filename: "card.png", Data: s.Card})
	}
	serveDownload(w, downloadName(s, "bundle", "zip"), "application/zip", zip.ArchiveAssets(assets))
}

// Artifact serves a stored artifact (original photo, portrait, card) by its
// storage key. The store sanitizes keys, so traversal never escapes the root.
func (a *App) Artifact(w http.ResponseWriter, r *http.Request) {
	if a.Artifacts == nil {
		http.NotFound(w, r)
		return
	}
	data, err := a.Artifacts.Read(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}

func serveDownload(w http.ResponseWriter, filename, mime string, data []byte) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func downloadName(s *wizard.Session, suffix, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(s.Form.Name), " ", "-")
	if name == "" {
		name = "portrait"
	}
	return name + "-" + suffix + "." + ext
}
