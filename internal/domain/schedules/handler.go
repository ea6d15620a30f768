package schedules

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"caretrack/internal/middleware"
	"caretrack/internal/platform/localtime"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, zone *localtime.Zone) {
	r.Route("/schedules", func(sr chi.Router) {
		sr.Get("/", listSchedulesHandler(svc, zone))
		sr.Post("/", createScheduleHandler(svc, zone))
		sr.Get("/{scheduleID}", getScheduleHandler(svc, zone))
		sr.Patch("/{scheduleID}", updateScheduleHandler(svc, zone))
		sr.Delete("/{scheduleID}", deleteScheduleHandler(svc))

		// Registrar una toma contra el schedule
		sr.Post("/{scheduleID}/doses", recordDoseHandler(svc, zone))
	})
}

// frequencyFields se comparte entre create y patch.
// frequency_ms tiene prioridad; si no, frequency_value en frequency_unit (default hours).
type frequencyFields struct {
	FrequencyValue *float64 `json:"frequency_value"`
	FrequencyUnit  string   `json:"frequency_unit"` // minutes | hours
	FrequencyMS    *int64   `json:"frequency_ms"`
}

type createScheduleRequest struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	frequencyFields
	StartAt     string `json:"start_at"`      // YYYY-MM-DDTHH:mm en la zona de la app; vacío = ahora
	EndAt       string `json:"end_at"`        // YYYY-MM-DD opcional, inclusivo
	LastTakenAt string `json:"last_taken_at"` // YYYY-MM-DDTHH:mm opcional
	Notes       string `json:"notes"`
}

type updateScheduleRequest struct {
	MedicationName *string `json:"medication_name"`
	Dosage         *string `json:"dosage"`
	frequencyFields
	StartAt *string `json:"start_at"`
	Notes   *string `json:"notes"`
	// end_at y last_taken_at se leen aparte para distinguir null de ausente
}

type recordDoseRequest struct {
	TakenAt string `json:"taken_at"` // vacío = ahora
	Author  string `json:"author"`
	Note    string `json:"note"`
}

type scheduleResponse struct {
	ID             string `json:"id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	FrequencyMS    int64  `json:"frequency_ms"`
	StartAt        int64  `json:"start_at"`
	EndAt          *int64 `json:"end_at"`
	LastTakenAt    *int64 `json:"last_taken_at"`
	Notes          string `json:"notes"`

	NextDueAt      *int64 `json:"next_due_at"`
	NextDueDisplay string `json:"next_due_display,omitempty"`
	Status         Status `json:"status"`

	Form scheduleFormValues `json:"form"`
}

// scheduleFormValues son los valores para precargar el formulario de edición.
type scheduleFormValues struct {
	StartAt        string  `json:"start_at"`
	EndAt          string  `json:"end_at"`
	LastTakenAt    string  `json:"last_taken_at"`
	FrequencyValue float64 `json:"frequency_value"`
	FrequencyUnit  string  `json:"frequency_unit"`
}

// listSchedulesHandler godoc
// @Summary Listar schedules
// @Description Devuelve los schedules con su próxima dosis y estado (normal, upcoming, overdue, finished), ordenados por próxima dosis. Los instantes van en epoch ms.
// @Tags schedules
// @Produce json
// @Success 200 {array} scheduleResponse
// @Failure 500 {string} string "internal error"
// @Router /schedules [get]
func listSchedulesHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListDue(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]scheduleResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toScheduleResponse(d, zone))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createScheduleHandler godoc
// @Summary Crear schedule
// @Description Crea un plan de dosis recurrente. start_at y last_taken_at se interpretan como hora local de la zona de la app (YYYY-MM-DDTHH:mm); end_at es una fecha (YYYY-MM-DD) válida hasta el final del día.
// @Tags schedules
// @Accept json
// @Produce json
// @Param payload body createScheduleRequest true "Datos del schedule"
// @Success 201 {object} scheduleResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /schedules [post]
func createScheduleHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		freq, err := req.frequencyFields.duration()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := svc.Create(r.Context(), CreateInput{
			MedicationName: req.MedicationName,
			Dosage:         req.Dosage,
			Frequency:      freq,
			StartAt:        zone.Parse(req.StartAt, localtime.ModeDateTime),
			EndAt:          zone.ParseOptional(req.EndAt, localtime.ModeDateOnly),
			LastTakenAt:    zone.ParseOptional(req.LastTakenAt, localtime.ModeDateTime),
			Notes:          req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toScheduleResponse(svc.Evaluate(s), zone))
	}
}

// getScheduleHandler godoc
// @Summary Obtener schedule
// @Tags schedules
// @Produce json
// @Param scheduleID path string true "ID del schedule"
// @Success 200 {object} scheduleResponse
// @Failure 404 {string} string "schedule not found"
// @Router /schedules/{scheduleID} [get]
func getScheduleHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.GetByID(r.Context(), chi.URLParam(r, "scheduleID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(svc.Evaluate(s), zone))
	}
}

// updateScheduleHandler godoc
// @Summary Editar schedule
// @Description PATCH: los campos ausentes no se tocan. end_at y last_taken_at aceptan null o "" para limpiarlos.
// @Tags schedules
// @Accept json
// @Produce json
// @Param scheduleID path string true "ID del schedule"
// @Param payload body updateScheduleRequest true "Campos a modificar"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "schedule not found"
// @Router /schedules/{scheduleID} [patch]
func updateScheduleHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateScheduleRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			MedicationName: req.MedicationName,
			Dosage:         req.Dosage,
			Notes:          req.Notes,
		}

		if req.FrequencyValue != nil || req.FrequencyMS != nil {
			freq, err := req.frequencyFields.duration()
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.Frequency = &freq
		}
		if req.StartAt != nil {
			t := zone.Parse(*req.StartAt, localtime.ModeDateTime)
			in.StartAt = &t
		}

		var err error
		if in.EndAt, err = optionalTimeField(raw, "end_at", zone, localtime.ModeDateOnly); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if in.LastTakenAt, err = optionalTimeField(raw, "last_taken_at", zone, localtime.ModeDateTime); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "scheduleID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(svc.Evaluate(updated), zone))
	}
}

// deleteScheduleHandler godoc
// @Summary Borrar schedule
// @Description El historial de tomas se conserva.
// @Tags schedules
// @Param scheduleID path string true "ID del schedule"
// @Success 204
// @Failure 404 {string} string "schedule not found"
// @Router /schedules/{scheduleID} [delete]
func deleteScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "scheduleID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// recordDoseHandler godoc
// @Summary Registrar toma
// @Description Marca la toma (last_taken_at) y agrega una entrada de medicación al historial. Si no se envía author se usa el usuario autenticado.
// @Tags schedules
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param scheduleID path string true "ID del schedule"
// @Param payload body recordDoseRequest false "taken_at opcional (YYYY-MM-DDTHH:mm)"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "missing schedule information"
// @Failure 404 {string} string "schedule not found"
// @Router /schedules/{scheduleID}/doses [post]
func recordDoseHandler(svc *Service, zone *localtime.Zone) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordDoseRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		author := strings.TrimSpace(req.Author)
		if author == "" {
			if claims, ok := middleware.GetClaims(r.Context()); ok {
				author = claims.DisplayName()
			}
		}

		var takenAt time.Time
		if strings.TrimSpace(req.TakenAt) != "" {
			takenAt = zone.Parse(req.TakenAt, localtime.ModeDateTime)
		}

		s, err := svc.RecordDose(r.Context(), chi.URLParam(r, "scheduleID"), DoseInput{
			TakenAt: takenAt,
			Author:  author,
			Note:    req.Note,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toScheduleResponse(svc.Evaluate(s), zone))
	}
}

// maxFrequencyMS es el mayor frequency_ms que entra en un time.Duration.
const maxFrequencyMS = math.MaxInt64 / int64(time.Millisecond)

var errFrequencyRange = errors.New("frequency is out of range")

func (f frequencyFields) duration() (time.Duration, error) {
	if f.FrequencyMS != nil {
		if *f.FrequencyMS > maxFrequencyMS {
			return 0, errFrequencyRange
		}
		return time.Duration(*f.FrequencyMS) * time.Millisecond, nil
	}
	if f.FrequencyValue == nil {
		return 0, nil // lo rechaza la validación del service
	}
	v := *f.FrequencyValue
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errFrequencyRange
	}

	unit := time.Hour
	switch strings.ToLower(strings.TrimSpace(f.FrequencyUnit)) {
	case "", "hours":
	case "minutes":
		unit = time.Minute
	default:
		return 0, errors.New("frequency_unit must be minutes or hours")
	}
	d := v * float64(unit)
	if d >= math.MaxInt64 || d <= math.MinInt64 {
		return 0, errFrequencyRange
	}
	return time.Duration(d), nil
}

func optionalTimeField(raw map[string]json.RawMessage, key string, zone *localtime.Zone, mode localtime.Mode) (OptionalTime, error) {
	v, exists := raw[key]
	if !exists {
		return OptionalTime{}, nil
	}
	if string(v) == "null" {
		return OptionalTime{Present: true}, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return OptionalTime{}, errors.New(key + " must be a string or null")
	}
	return OptionalTime{Present: true, Value: zone.ParseOptional(s, mode)}, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "schedule not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toScheduleResponse(d Due, zone *localtime.Zone) scheduleResponse {
	s := d.Schedule
	resp := scheduleResponse{
		ID:             s.ID,
		MedicationName: s.MedicationName,
		Dosage:         s.Dosage,
		FrequencyMS:    s.Frequency.Milliseconds(),
		StartAt:        s.StartAt.UnixMilli(),
		EndAt:          millis(s.EndAt),
		LastTakenAt:    millis(s.LastTakenAt),
		Notes:          s.Notes,
		Status:         d.Status,
		Form: scheduleFormValues{
			StartAt: zone.FormatDateTime(s.StartAt),
		},
	}

	if d.HasNext {
		resp.NextDueAt = millis(&d.NextDueAt)
		resp.NextDueDisplay = zone.Display(d.NextDueAt)
	}
	if s.EndAt != nil {
		resp.Form.EndAt = zone.FormatDate(*s.EndAt)
	}
	if s.LastTakenAt != nil {
		resp.Form.LastTakenAt = zone.FormatDateTime(*s.LastTakenAt)
	}

	// Frecuencias múltiplo de una hora se muestran en horas
	if s.Frequency%time.Hour == 0 {
		resp.Form.FrequencyValue = s.Frequency.Hours()
		resp.Form.FrequencyUnit = "hours"
	} else {
		resp.Form.FrequencyValue = s.Frequency.Minutes()
		resp.Form.FrequencyUnit = "minutes"
	}
	return resp
}

func millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
