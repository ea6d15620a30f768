package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"caretrack/internal/middleware"
	"caretrack/internal/platform/localtime"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, zone *localtime.Zone) {
	r.Route("/history", func(hr chi.Router) {
		hr.Get("/", listHistoryHandler(svc, zone))
		hr.Post("/medications", addMedicationHandler(svc, zone))
		hr.Post("/comments", addCommentHandler(svc, zone))
	})
}

type addMedicationRequest struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Note           string `json:"note"`
	Author         string `json:"author"`
	TakenAt        string `json:"taken_at"` // YYYY-MM-DDTHH:mm; vacío = ahora
}

type addCommentRequest struct {
	Message string `json:"message"`
	Author  string `json:"author"`
}

type entryResponse struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	CreatedAt int64  `json:"created_at"`
	Display   string `json:"display"`
	Author    string `json:"author,omitempty"`

	MedicationName string `json:"medication_name,omitempty"`
	Dosage         string `json:"dosage,omitempty"`
	Note           string `json:"note,omitempty"`
	ScheduleID     string `json:"schedule_id,omitempty"`

	Message string `json:"message,omitempty"`
}

// listHistoryHandler godoc
// @Summary Historial de cuidados
// @Description Tomas de medicación y comentarios, del más reciente al más antiguo.
// @Tags history
// @Produce json
// @Param limit query int false "Máximo de entradas (1-500). Por defecto 100"
// @Param kind query string false "medication | comment"
// @Param schedule_id query string false "Solo tomas de este schedule"
// @Success 200 {array} entryResponse
// @Router /history [get]
func listHistoryHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := ListFilter{ScheduleID: strings.TrimSpace(q.Get("schedule_id"))}
		if v := strings.TrimSpace(q.Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "limit must be a number", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}
		switch k := Kind(strings.TrimSpace(q.Get("kind"))); k {
		case "":
		case KindMedication, KindComment:
			filter.Kinds = []Kind{k}
		default:
			http.Error(w, "kind must be medication or comment", http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e, zone))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// addMedicationHandler godoc
// @Summary Registrar medicación suelta
// @Tags history
// @Accept json
// @Produce json
// @Param payload body addMedicationRequest true "Toma"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "medication name is required"
// @Router /history/medications [post]
func addMedicationHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var takenAt time.Time
		if strings.TrimSpace(req.TakenAt) != "" {
			takenAt = zone.Parse(req.TakenAt, localtime.ModeDateTime)
		}

		e, err := svc.AddMedication(r.Context(), MedicationInput{
			MedicationName: req.MedicationName,
			Dosage:         req.Dosage,
			Note:           req.Note,
			Author:         authorOrClaims(r, req.Author),
			TakenAt:        takenAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEntryResponse(e, zone))
	}
}

// addCommentHandler godoc
// @Summary Agregar comentario
// @Tags history
// @Accept json
// @Produce json
// @Param payload body addCommentRequest true "Comentario"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "please write a brief comment before submitting"
// @Router /history/comments [post]
func addCommentHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.AddComment(r.Context(), CommentInput{
			Message: req.Message,
			Author:  authorOrClaims(r, req.Author),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEntryResponse(e, zone))
	}
}

func authorOrClaims(r *http.Request, author string) string {
	if a := strings.TrimSpace(author); a != "" {
		return a
	}
	if claims, ok := middleware.GetClaims(r.Context()); ok {
		return claims.DisplayName()
	}
	return ""
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toEntryResponse(e Entry, zone *localtime.Zone) entryResponse {
	return entryResponse{
		ID:             e.ID,
		Kind:           e.Kind,
		CreatedAt:      e.CreatedAt.UnixMilli(),
		Display:        zone.Display(e.CreatedAt),
		Author:         e.Author,
		MedicationName: e.MedicationName,
		Dosage:         e.Dosage,
		Note:           e.Note,
		ScheduleID:     e.ScheduleID,
		Message:        e.Message,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
