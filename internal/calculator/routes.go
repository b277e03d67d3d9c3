package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/evaluate", h.Evaluate)
		r.Post("/add", h.Add)
		r.Post("/subtract", h.Subtract)
		r.Post("/multiply", h.Multiply)
		r.Post("/divide", h.Divide)
		r.Post("/batch", h.Batch)
		r.Get("/functions", h.Functions)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.History)
			r.Delete("/", h.ClearHistory)
			r.Get("/{index}", h.HistoryEntry)
		})
	})
}
