// internal/models/catalog.go
package models

import (
	"time"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

const (
	CourtActive      = "active"
	CourtMaintenance = "maintenance"
	CourtInactive    = "inactive"

	CoachAvailable   = "available"
	CoachUnavailable = "unavailable"
	CoachOnLeave     = "on_leave"

	EquipmentRacket = "racket"
	EquipmentShoes  = "shoes"
	EquipmentBall   = "ball"
	EquipmentOther  = "other"

	EquipmentStatusAvailable   = "available"
	EquipmentStatusLowStock    = "low_stock"
	EquipmentStatusUnavailable = "unavailable"
)

func ValidEquipmentType(kind string) bool {
	switch kind {
	case EquipmentRacket, EquipmentShoes, EquipmentBall, EquipmentOther:
		return true
	}
	return false
}

type Court struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CourtType   string    `json:"courtType"`
	SportType   string    `json:"sportType"`
	BasePrice   int64     `json:"basePrice"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func CourtFromDB(row dbgen.Court) Court {
	return Court{
		ID:          row.ID,
		Name:        row.Name,
		CourtType:   row.CourtType,
		SportType:   row.SportType,
		BasePrice:   row.BasePriceCents,
		Status:      row.Status,
		Description: row.Description.String,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// AvailabilityWindow is one weekly slot a coach works. Day is 0 (Sunday) to 6.
type AvailabilityWindow struct {
	Day       int    `json:"day" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	IsActive  bool   `json:"isActive"`
}

type Coach struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Email        string               `json:"email"`
	HourlyRate   int64                `json:"hourlyRate"`
	Status       string               `json:"status"`
	Sports       []string             `json:"sports"`
	Availability []AvailabilityWindow `json:"availability"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func CoachFromDB(row dbgen.Coach, sports []string, windows []dbgen.CoachAvailability) Coach {
	c := Coach{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		HourlyRate:   row.HourlyRateCents,
		Status:       row.Status,
		Sports:       sports,
		Availability: make([]AvailabilityWindow, 0, len(windows)),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if c.Sports == nil {
		c.Sports = []string{}
	}
	for _, w := range windows {
		c.Availability = append(c.Availability, AvailabilityWindow{
			Day:       int(w.DayOfWeek),
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			IsActive:  w.IsActive,
		})
	}
	return c
}

type Equipment struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	EquipmentType  string    `json:"type"`
	TotalStock     int64     `json:"totalStock"`
	AvailableStock int64     `json:"availableStock"`
	RentalPrice    int64     `json:"rentalPrice"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func EquipmentFromDB(row dbgen.Equipment) Equipment {
	return Equipment{
		ID:             row.ID,
		Name:           row.Name,
		EquipmentType:  row.EquipmentType,
		TotalStock:     row.TotalStock,
		AvailableStock: row.AvailableStock,
		RentalPrice:    row.RentalPriceCents,
		Description:    row.Description.String,
		Status:         row.Status,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
