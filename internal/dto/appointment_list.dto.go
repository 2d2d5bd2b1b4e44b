package dto

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	Vehicle     string    `json:"vehicle"`
	Plate       string    `json:"plate"`
	Services    []string  `json:"services"`
	Conditions  []string  `json:"conditions"`
	Notes       string    `json:"notes"`
	Total       float64   `json:"total"`
}

// MonthDayDTO resume um dia do calendário mensal.
type MonthDayDTO struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func AppointmentList(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		ScheduledAt: ap.ScheduledAt,
		Status:      ap.Status,
		Services:    make([]string, 0, len(ap.Services)),
		Conditions:  SplitConditions(ap.Conditions),
		Notes:       ap.Notes,
		Total:       ap.Total,
	}

	if ap.Client != nil {
		out.ClientName = ap.Client.Name
		if ap.Client.Phone != nil {
			out.ClientPhone = *ap.Client.Phone
		}
	}
	if ap.Vehicle != nil {
		out.Vehicle = strings.TrimSpace(ap.Vehicle.Brand + " " + ap.Vehicle.Model)
		if ap.Vehicle.Plate != nil {
			out.Plate = *ap.Vehicle.Plate
		}
	}
	for _, s := range ap.Services {
		out.Services = append(out.Services, s.Name)
	}
	return out
}

// As condições do veículo são gravadas uma por linha.
func JoinConditions(conds []string) string {
	clean := make([]string, 0, len(conds))
	for _, c := range conds {
		if c = strings.TrimSpace(c); c != "" {
			clean = append(clean, c)
		}
	}
	return strings.Join(clean, "\n")
}

func SplitConditions(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
