package restrictions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/restrictions", func(rr chi.Router) {
		rr.Get("/", listRestrictionsHandler(svc))
		rr.Post("/", addRestrictionHandler(svc))
		rr.Delete("/{restrictionID}", deleteRestrictionHandler(svc))
	})
}

type addRestrictionRequest struct {
	Category Category `json:"category"` // alimento | atividade
	Title    string   `json:"title"`
	Details  string   `json:"details"`
}

type restrictionResponse struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Details  string   `json:"details,omitempty"`
}

// listRestrictionsHandler godoc
// @Summary Restricciones de dieta y actividad
// @Tags restrictions
// @Produce json
// @Success 200 {array} restrictionResponse
// @Router /restrictions [get]
func listRestrictionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]restrictionResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toRestrictionResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// addRestrictionHandler godoc
// @Summary Agregar restricción
// @Description Repetir categoría + título devuelve la restricción existente con 200.
// @Tags restrictions
// @Accept json
// @Produce json
// @Param payload body addRestrictionRequest true "Restricción"
// @Success 201 {object} restrictionResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /restrictions [post]
func addRestrictionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addRestrictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		it, created, err := svc.Add(r.Context(), AddInput{
			Category: req.Category,
			Title:    req.Title,
			Details:  req.Details,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, toRestrictionResponse(it))
	}
}

func deleteRestrictionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "restrictionID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "restriction not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toRestrictionResponse(r Restriction) restrictionResponse {
	return restrictionResponse{ID: r.ID, Category: r.Category, Title: r.Title, Details: r.Details}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
