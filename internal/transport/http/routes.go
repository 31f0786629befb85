package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Routes builds the API router. metrics may be nil.
func Routes(h *Handler, metrics http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CallerIdentity)

	// after RequestID and CallerIdentity
	r.Use(RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.CreateAccount)
		r.Get("/{address}", h.GetAccount)
	})

	r.Route("/jobs", func(r chi.Router) {
		r.Post("/", h.CreateJob)
		r.Get("/{id}", h.GetJob)
		r.Post("/{id}/complete", h.CompleteJob)
		r.Post("/{id}/release", h.ReleasePayment)
	})

	r.Route("/nfts", func(r chi.Router) {
		r.Post("/", h.MintNFT)
		r.Get("/{id}", h.GetNFT)
		r.Post("/{id}/listing", h.ListNFT)
		r.Get("/{id}/listing", h.GetListing)
		r.Post("/{id}/buy", h.BuyNFT)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
