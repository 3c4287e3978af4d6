package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"futureself/internal/http/handlers"
	"futureself/internal/middleware"
)

func NewRouter(app *handlers.App, logger zerolog.Logger, rateLimitPerMin int) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
	)
	if rateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(rateLimitPerMin, time.Minute))
	}

	r.Get("/healthz", app.Health)

	r.Get("/", app.Home)
	r.Get("/create", app.CreateForm)
	r.Post("/create", app.CreateSubmit)
	r.Get("/result", app.Result)
	r.Post("/reset", app.Reset)

	r.Get("/result/image", app.DownloadImage)
	r.Get("/result/card", app.DownloadCard)
	r.Get("/result/bundle", app.DownloadBundle)

	r.Get("/static/*", app.Artifact)

	return r
}
