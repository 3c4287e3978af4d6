package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"futureself/internal/domain"
	img "futureself/internal/providers/image"
	"futureself/internal/wizard"
)

type memRepo struct {
	saved   []domain.Submission
	saveErr error
}

func (r *memRepo) Save(ctx context.Context, sub *domain.Submission) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, *sub)
	return nil
}

func (r *memRepo) AttachBackup(ctx context.Context, id, url, fileID string) error { return nil }

type stubGenerator struct {
	out []byte
}

func (g *stubGenerator) Generate(ctx context.Context, req img.GenerateRequest) (*img.Asset, error) {
	return &img.Asset{Data: g.out, Format: "png"}, nil
}

type stubCards struct{}

func (stubCards) Render(sub domain.Submission, original, generated []byte) ([]byte, error) {
	return []byte("card-png"), nil
}

type stubArtifacts struct {
	files map[string][]byte
}

func (s *stubArtifacts) Read(ctx context.Context, key string) ([]byte, error) {
	data, ok := s.files[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func newTestApp(t *testing.T, repo domain.SubmissionRepository) *App {
	t.Helper()
	ctrl := wizard.NewController(repo, &stubGenerator{out: []byte("portrait")}, nil, nil, stubCards{}, zerolog.Nop())
	app, err := NewApp(zerolog.Nop(), ctrl, nil, domain.Careers, false)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if photo != nil {
		fw, err := mw.CreateFormFile("photo", "face.jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(photo); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return buf, mw.FormDataContentType()
}

// do runs a request through the app's handler while carrying the session
// cookie between calls.
func do(t *testing.T, h http.HandlerFunc, method, target string, body io.Reader, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHomeSetsSessionCookie(t *testing.T) {
	app := newTestApp(t, &memRepo{})

	rr := do(t, app.Home, http.MethodGet, "/", nil, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookie {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if !strings.Contains(rr.Body.String(), "future career self") {
		t.Fatalf("unexpected home body: %q", rr.Body.String()[:80])
	}
}

func TestCreateSubmitHappyPath(t *testing.T) {
	repo := &memRepo{}
	app := newTestApp(t, repo)

	cookies := do(t, app.Home, http.MethodGet, "/", nil, "", nil).Result().Cookies()
	do(t, app.CreateForm, http.MethodGet, "/create", nil, "", cookies)

	body, ct := multipartBody(t, map[string]string{
		"name":    "Asha",
		"mobile":  "+91 9876543210",
		"goal":    "Doctor",
		"consent": "on",
	}, []byte("jpeg-bytes"))

	rr := do(t, app.CreateSubmit, http.MethodPost, "/create", body, ct, cookies)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/result" {
		t.Fatalf("expected redirect to /result, got %q", loc)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected one record write, got %d", len(repo.saved))
	}
	if repo.saved[0].Mobile != "9876543210" {
		t.Fatalf("expected normalized mobile, got %q", repo.saved[0].Mobile)
	}

	rr = do(t, app.Result, http.MethodGet, "/result", nil, "", cookies)
	if rr.Code != http.StatusOK {
		t.Fatalf("result page: expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Asha") {
		t.Fatalf("result page missing name")
	}
}

func TestCreateSubmitValidationError(t *testing.T) {
	repo := &memRepo{}
	app := newTestApp(t, repo)

	cookies := do(t, app.Home, http.MethodGet, "/", nil, "", nil).Result().Cookies()
	do(t, app.CreateForm, http.MethodGet, "/create", nil, "", cookies)

	body, ct := multipartBody(t, map[string]string{
		"name":    "Asha",
		"mobile":  "12345",
		"goal":    "Doctor",
		"consent": "on",
	}, []byte("jpeg-bytes"))

	rr := do(t, app.CreateSubmit, http.MethodPost, "/create", body, ct, cookies)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "valid 10-digit") {
		t.Fatalf("expected mobile error in body")
	}
	if len(repo.saved) != 0 {
		t.Fatalf("invalid form must not write a record")
	}
}

func TestCreateSubmitRejectsOversizedPhoto(t *testing.T) {
	repo := &memRepo{}
	app := newTestApp(t, repo)

	cookies := do(t, app.Home, http.MethodGet, "/", nil, "", nil).Result().Cookies()
	do(t, app.CreateForm, http.MethodGet, "/create", nil, "", cookies)

	body, ct := multipartBody(t, map[string]string{
		"name":    "Asha",
		"mobile":  "9876543210",
		"goal":    "Doctor",
		"consent": "on",
	}, bytes.Repeat([]byte("a"), maxPhotoBytes+1))

	rr := do(t, app.CreateSubmit, http.MethodPost, "/create", body, ct, cookies)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "too large") {
		t.Fatalf("expected size error in body")
	}
	if len(repo.saved) != 0 {
		t.Fatalf("oversized photo must not write a record")
	}
}

func TestCreateSubmitDuplicateMobile(t *testing.T) {
	repo := &memRepo{saveErr: domain.ErrDuplicateContact}
	app := newTestApp(t, repo)

	cookies := do(t, app.Home, http.MethodGet, "/", nil, "", nil).Result().Cookies()
	do(t, app.CreateForm, http.MethodGet, "/create", nil, "", cookies)

	body, ct := multipartBody(t, map[string]string{
		"name":    "Asha",
		"mobile":  "9876543210",
		"goal":    "Doctor",
		"consent": "on",
	}, []byte("jpeg-bytes"))

	rr := do(t, app.CreateSubmit, http.MethodPost, "/create", body, ct, cookies)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "already has a portrait") {
		t.Fatalf("expected duplicate message in body")
	}
}

func TestDownloadsAfterResult(t *testing.T) {
	app := newTestApp(t, &memRepo{})

	cookies := do(t, app.Home, http.MethodGet, "/", nil, "", nil).Result().Cookies()
	do(t, app.CreateForm, http.MethodGet, "/create", nil, "", cookies)

	body, ct := multipartBody(t, map[string]string{
		"name":    "Asha Rao",
		"mobile":  "9876543210",
		"goal":    "Pilot",
		"consent": "on",
	}, []byte("jpeg-bytes"))
	do(t, app.CreateSubmit, http.MethodPost, "/create", body, ct, cookies)
	do(t, app.Result, http.MethodGet, "/result", nil, "", cookies)

	rr := do(t, app.DownloadImage, http.MethodGet, "/result/image", nil, "", cookies)
	if rr.Code != http.StatusOK || rr.Body.String() != "portrait" {
		t.Fatalf("portrait download: code=%d body=%q", rr.Code, rr.Body.String())
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "Asha-Rao-future-self.png") {
		t.Fatalf("unexpected disposition %q", cd)
	}

	rr = do(t, app.DownloadCard, http.MethodGet, "/result/card", nil, "", cookies)
	if rr.Code != http.StatusOK || rr.Body.String() != "card-png" {
		t.Fatalf("card download: code=%d", rr.Code)
	}

	rr = do(t, app.DownloadBundle, http.MethodGet, "/result/bundle", nil, "", cookies)
	if rr.Code != http.StatusOK {
		t.Fatalf("bundle download: code=%d", rr.Code)
	}
	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("bundle is not a zip: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"original.jpg", "future-self.png", "card.png"} {
		if !names[want] {
			t.Fatalf("bundle missing %s, has %v", want, names)
		}
	}
}

func TestDownloadBeforeResultIs404(t *testing.T) {
	app := newTestApp(t, &memRepo{})
	cookies := do(t, app.Home, http.MethodGet, "/", nil, "", nil).Result().Cookies()

	for name, h := range map[string]http.HandlerFunc{
		"image":  app.DownloadImage,
		"card":   app.DownloadCard,
		"bundle": app.DownloadBundle,
	} {
		rr := do(t, h, http.MethodGet, "/result/"+name, nil, "", cookies)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", name, rr.Code)
		}
	}
}

func TestResetReturnsToCreate(t *testing.T) {
	app := newTestApp(t, &memRepo{})

	cookies := do(t, app.Home, http.MethodGet, "/", nil, "", nil).Result().Cookies()
	do(t, app.CreateForm, http.MethodGet, "/create", nil, "", cookies)

	body, ct := multipartBody(t, map[string]string{
		"name":    "Asha",
		"mobile":  "9876543210",
		"goal":    "Doctor",
		"consent": "on",
	}, []byte("jpeg-bytes"))
	do(t, app.CreateSubmit, http.MethodPost, "/create", body, ct, cookies)
	do(t, app.Result, http.MethodGet, "/result", nil, "", cookies)

	rr := do(t, app.Reset, http.MethodPost, "/reset", nil, "", cookies)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/create" {
		t.Fatalf("expected redirect to /create, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = do(t, app.CreateForm, http.MethodGet, "/create", nil, "", cookies)
	if !strings.Contains(rr.Body.String(), `value="Asha"`) {
		t.Fatalf("expected name prefilled after reset")
	}
}

func TestArtifactServing(t *testing.T) {
	app := newTestApp(t, &memRepo{})
	app.Artifacts = &stubArtifacts{files: map[string][]byte{
		"submissions/abc/generated.png": []byte("png-bytes"),
	}}

	req := httptest.NewRequest(http.MethodGet, "/static/submissions/abc/generated.png", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("*", "submissions/abc/generated.png")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	app.Artifact(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "png-bytes" {
		t.Fatalf("artifact serve: code=%d body=%q", rr.Code, rr.Body.String())
	}

	rctx = chi.NewRouteContext()
	rctx.URLParams.Add("*", "submissions/missing.png")
	req = httptest.NewRequest(http.MethodGet, "/static/submissions/missing.png", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr = httptest.NewRecorder()
	app.Artifact(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown artifact, got %d", rr.Code)
	}
}

func TestArtifactServingWithoutStore(t *testing.T) {
	app := newTestApp(t, &memRepo{})
	req := httptest.NewRequest(http.MethodGet, "/static/x.png", nil)
	rr := httptest.NewRecorder()
	app.Artifact(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a store, got %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &memRepo{})
	rr := do(t, app.Health, http.MethodGet, "/healthz", nil, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body %q", rr.Body.String())
	}
}
