package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inn_ledger/internal/domain"
	"inn_ledger/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", handler(s.postTransaction))
		r.Get("/", handler(s.listTransactions))
		r.Get("/{id}", handler(s.getTransaction))
		r.Patch("/{id}", handler(s.patchTransaction))
		r.Delete("/{id}", handler(s.deleteTransaction))
	})

	r.Route("/traders", func(r chi.Router) {
		r.Post("/", handler(s.postTrader))
		r.Get("/", handler(s.listTraders))
		r.Get("/{id}", handler(s.getTrader))
		r.Patch("/{id}", handler(s.patchTrader))
		r.Delete("/{id}", handler(s.deleteTrader))
	})

	r.Route("/hunters", func(r chi.Router) {
		r.Post("/", handler(s.postHunter))
		r.Get("/", handler(s.listHunters))
		r.Get("/{id}", handler(s.getHunter))
		r.Patch("/{id}", handler(s.patchHunter))
		r.Delete("/{id}", handler(s.deleteHunter))
	})

	r.Route("/assets", func(r chi.Router) {
		r.Post("/", handler(s.postAsset))
		r.Get("/", handler(s.listAssets))
		r.Get("/{id}", handler(s.getAsset))
		r.Patch("/{id}", handler(s.patchAsset))
		r.Delete("/{id}", handler(s.deleteAsset))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(w, r, err)
		}
	}
}

// replyError renders domain errors with the status of their code. Errors
// built with the failure package are left to reply.Error.
func replyError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := domain.AsAppError(err)
	if !ok {
		reply.Error(r.Context(), w, err)
		return
	}

	reply.Status(r.Context(), w, statusFor(appErr.Code), appErr.Code, appErr.Message, err)
}
