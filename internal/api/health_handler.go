package api

import "net/http"

type OllamaHealth struct {
	Reachable bool   `json:"reachable" example:"true"`
	Model     string `json:"model" example:"llama3.1"`
}

type HealthResponse struct {
	Status string       `json:"status" example:"ok"`
	Ollama OllamaHealth `json:"ollama"`
}

// health reports liveness and whether the model server is usable. An
// unreachable model is not an outage: generation and grading fall back.
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	m := h.quiz.Health(r.Context())
	respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Ollama: OllamaHealth{Reachable: m.Reachable, Model: m.Model},
	})
}
