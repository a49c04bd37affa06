// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /health", h.health)

	// Tests
	mux.HandleFunc("GET /tests/{testType}", h.listTests)
	mux.HandleFunc("GET /tests/{testType}/{testID}", h.getTest)
	mux.HandleFunc("POST /tests/{testType}/{testID}/attempts", h.submitAttempt)

	// Stats
	mux.HandleFunc("GET /tests/{testType}/stats", h.getTypeStats)
	mux.HandleFunc("GET /tests/{testType}/{testID}/stats", h.getTestStats)
}

// health godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
