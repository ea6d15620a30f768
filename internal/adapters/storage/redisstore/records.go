package redisstore

import (
	"encoding/json"
	"time"

	"caretrack/internal/domain/catalog"
	"caretrack/internal/domain/history"
	"caretrack/internal/domain/restrictions"
	"caretrack/internal/domain/schedules"
)

type scheduleRecord struct {
	ID             string `json:"id"`
	MedicationName string `json:"medicationName"`
	Dosage         string `json:"dosage,omitempty"`
	FrequencyMS    int64  `json:"frequencyMs"`
	StartAt        int64  `json:"startAt"`
	EndAt          *int64 `json:"endAt,omitempty"`
	LastTakenAt    *int64 `json:"lastTakenAt,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type entryRecord struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	CreatedAt      int64  `json:"createdAt"`
	Author         string `json:"author,omitempty"`
	MedicationName string `json:"medicationName,omitempty"`
	Dosage         string `json:"dosage,omitempty"`
	Note           string `json:"note,omitempty"`
	ScheduleID     string `json:"scheduleId,omitempty"`
	Message        string `json:"message,omitempty"`
}

type medicationRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

type restrictionRecord struct {
	ID       string `json:"id"`
	Category string `json:"categoria"`
	Title    string `json:"titulo"`
	Details  string `json:"detalhes,omitempty"`
}

func encodeSchedule(s schedules.Schedule) ([]byte, error) {
	return json.Marshal(scheduleRecord{
		ID:             s.ID,
		MedicationName: s.MedicationName,
		Dosage:         s.Dosage,
		FrequencyMS:    s.Frequency.Milliseconds(),
		StartAt:        s.StartAt.UnixMilli(),
		EndAt:          millis(s.EndAt),
		LastTakenAt:    millis(s.LastTakenAt),
		Notes:          s.Notes,
	})
}

func decodeSchedule(b []byte) (schedules.Schedule, error) {
	var r scheduleRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return schedules.Schedule{}, err
	}
	return schedules.Schedule{
		ID:             r.ID,
		MedicationName: r.MedicationName,
		Dosage:         r.Dosage,
		Frequency:      time.Duration(r.FrequencyMS) * time.Millisecond,
		StartAt:        time.UnixMilli(r.StartAt),
		EndAt:          fromMillis(r.EndAt),
		LastTakenAt:    fromMillis(r.LastTakenAt),
		Notes:          r.Notes,
	}, nil
}

func encodeEntry(e history.Entry) ([]byte, error) {
	return json.Marshal(entryRecord{
		ID:             e.ID,
		Type:           string(e.Kind),
		CreatedAt:      e.CreatedAt.UnixMilli(),
		Author:         e.Author,
		MedicationName: e.MedicationName,
		Dosage:         e.Dosage,
		Note:           e.Note,
		ScheduleID:     e.ScheduleID,
		Message:        e.Message,
	})
}

func decodeEntry(b []byte) (history.Entry, error) {
	var r entryRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return history.Entry{}, err
	}
	return history.Entry{
		ID:             r.ID,
		Kind:           history.Kind(r.Type),
		CreatedAt:      time.UnixMilli(r.CreatedAt),
		Author:         r.Author,
		MedicationName: r.MedicationName,
		Dosage:         r.Dosage,
		Note:           r.Note,
		ScheduleID:     r.ScheduleID,
		Message:        r.Message,
	}, nil
}

func decodeMedication(b []byte) (catalog.Medication, error) {
	var r medicationRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return catalog.Medication{}, err
	}
	return catalog.Medication{ID: r.ID, Name: r.Name, Purpose: catalog.Purpose(r.Purpose)}, nil
}

func decodeRestriction(b []byte) (restrictions.Restriction, error) {
	var r restrictionRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return restrictions.Restriction{}, err
	}
	return restrictions.Restriction{
		ID:       r.ID,
		Category: restrictions.Category(r.Category),
		Title:    r.Title,
		Details:  r.Details,
	}, nil
}

func millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}
