package notify

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Reminders es la vista del motor que necesitan estos endpoints.
type Reminders interface {
	PermissionNeeded() bool
	Resync()
}

func RegisterRoutes(r chi.Router, inbox *Inbox, hub *Hub, reminders Reminders) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Get("/", listNotificationsHandler(inbox))
		nr.Post("/{key}/ack", ackNotificationHandler(inbox))

		nr.Get("/permission", getPermissionHandler(inbox, reminders))
		nr.Post("/permission", setPermissionHandler(inbox, reminders))

		if hub != nil {
			nr.Get("/stream", hub.ServeWS)
		}
	})
}

type notificationResponse struct {
	Key        string `json:"key"`
	ScheduleID string `json:"schedule_id,omitempty"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	DueAt      int64  `json:"due_at"`
	ShownAt    int64  `json:"shown_at"`
}

type permissionResponse struct {
	Permission       Permission `json:"permission"`
	Requested        bool       `json:"requested"`
	PermissionNeeded bool       `json:"permission_needed"`
}

type setPermissionRequest struct {
	Granted bool `json:"granted"`
}

// listNotificationsHandler godoc
// @Summary Notificaciones visibles
// @Description Una por schedule como máximo: una nueva reemplaza a la anterior.
// @Tags notifications
// @Produce json
// @Success 200 {array} notificationResponse
// @Router /notifications [get]
func listNotificationsHandler(inbox *Inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := inbox.List()
		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, notificationResponse{
				Key:        n.Key,
				ScheduleID: n.ScheduleID,
				Title:      n.Title,
				Body:       n.Body,
				DueAt:      n.DueAt.UnixMilli(),
				ShownAt:    n.ShownAt.UnixMilli(),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// ackNotificationHandler godoc
// @Summary Descartar notificación
// @Tags notifications
// @Param key path string true "Clave de la notificación (schedule-<id>)"
// @Success 204
// @Failure 404 {string} string "notification not found"
// @Router /notifications/{key}/ack [post]
func ackNotificationHandler(inbox *Inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !inbox.Ack(chi.URLParam(r, "key")) {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// getPermissionHandler godoc
// @Summary Estado del permiso de notificaciones
// @Tags notifications
// @Produce json
// @Success 200 {object} permissionResponse
// @Router /notifications/permission [get]
func getPermissionHandler(inbox *Inbox, reminders Reminders) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toPermissionResponse(inbox, reminders))
	}
}

// setPermissionHandler godoc
// @Summary Responder al pedido de permiso
// @Description Conceder el permiso re-arma los recordatorios en el momento; negarlo los cancela.
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body setPermissionRequest true "granted"
// @Success 200 {object} permissionResponse
// @Failure 400 {string} string "invalid json"
// @Router /notifications/permission [post]
func setPermissionHandler(inbox *Inbox, reminders Reminders) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setPermissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p := PermissionDenied
		if req.Granted {
			p = PermissionGranted
		}
		inbox.SetPermission(p)
		if reminders != nil {
			reminders.Resync()
		}

		writeJSON(w, http.StatusOK, toPermissionResponse(inbox, reminders))
	}
}

func toPermissionResponse(inbox *Inbox, reminders Reminders) permissionResponse {
	resp := permissionResponse{
		Permission: inbox.Permission(),
		Requested:  inbox.Requested(),
	}
	if reminders != nil {
		resp.PermissionNeeded = reminders.PermissionNeeded()
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
