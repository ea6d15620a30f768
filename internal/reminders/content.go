package reminders

import (
	"strings"
	"time"

	"caretrack/internal/domain/schedules"
	"caretrack/internal/notify"
)

// NotificationKey es la clave de deduplicación: un aviso visible por schedule.
func NotificationKey(scheduleID string) string {
	return "schedule-" + scheduleID
}

func buildNotification(s schedules.Schedule, dueAt, shownAt time.Time) notify.Notification {
	var body []string
	if s.Dosage != "" {
		body = append(body, "Dose: "+s.Dosage)
	}
	if s.Notes != "" {
		body = append(body, s.Notes)
	}

	return notify.Notification{
		Key:        NotificationKey(s.ID),
		ScheduleID: s.ID,
		Title:      "Time for medication: " + s.MedicationName,
		Body:       strings.Join(body, "\n"),
		DueAt:      dueAt,
		ShownAt:    shownAt,
	}
}
