// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nftminter/internal/adapters/in/http/handlers"
	"nftminter/internal/adapters/in/http/middleware"
)

// RouterDeps is assembled by the DI container. Nil optional parts are skipped.
type RouterDeps struct {
	NFT            handlers.NFTService
	MaxUploadBytes int64

	AllowedOrigins []string
	Auth           *middleware.AuthMiddleware // nil disables auth
	RateLimiter    *middleware.RateLimiter
	Recorder       middleware.HTTPRecorder
	MetricsHandler http.Handler
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORS(deps.AllowedOrigins))
	r.Use(middleware.Recover)
	if deps.Recorder != nil {
		r.Use(middleware.Metrics(deps.Recorder))
	}

	// Health check (always on)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	if deps.NFT == nil {
		return r
	}
	h := handlers.NewNFTHandler(deps.NFT, deps.MaxUploadBytes)

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware)
		}

		r.Get("/nfts", h.ListByOwner)
		r.Get("/activities", h.ListActivities)

		r.Group(func(r chi.Router) {
			if deps.Auth != nil {
				r.Use(deps.Auth.Handler)
			}
			r.Post("/upload-image", h.UploadImage)
			r.Post("/mint-certification", h.MintCertification)
			r.Post("/mint-collection", h.MintCollection)
			r.Post("/transfer-nft", h.Transfer)
		})
	})
	return r
}
