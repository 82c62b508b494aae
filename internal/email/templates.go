package email

import (
	"fmt"
	"strings"
	"time"
)

type Message struct {
	Subject string
	Body    string
}

type ReservationDetails struct {
	FacilityName  string
	ReservationID int64
	CourtName     string
	Date          string
	TimeRange     string
	Coach         bool
	Equipment     int64
	Total         string
	Reason        string
}

func FormatDateTimeRange(start, end time.Time) (string, string) {
	date := start.Format("Monday, Jan 2, 2006")
	timeRange := fmt.Sprintf("%s - %s %s", start.Format("3:04 PM"), end.Format("3:04 PM"), start.Format("MST"))
	return date, timeRange
}

func FormatPriceCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func BuildConfirmation(details ReservationDetails) Message {
	facility := facilityName(details.FacilityName)

	var b strings.Builder
	fmt.Fprintf(&b, "Your court reservation at %s is confirmed.\n\n", facility)
	writeReservationLines(&b, details)
	if details.Total != "" {
		fmt.Fprintf(&b, "Total: %s\n", details.Total)
	}
	b.WriteString("\nYou can cancel online up to the cancellation cutoff before your start time.\n")

	return Message{
		Subject: fmt.Sprintf("Reservation #%d confirmed - %s", details.ReservationID, facility),
		Body:    b.String(),
	}
}

func BuildCancellation(details ReservationDetails) Message {
	facility := facilityName(details.FacilityName)

	var b strings.Builder
	fmt.Fprintf(&b, "Your court reservation at %s has been cancelled.\n\n", facility)
	writeReservationLines(&b, details)
	if reason := strings.TrimSpace(details.Reason); reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", reason)
	}

	return Message{
		Subject: fmt.Sprintf("Reservation #%d cancelled - %s", details.ReservationID, facility),
		Body:    b.String(),
	}
}

func writeReservationLines(b *strings.Builder, details ReservationDetails) {
	if details.CourtName != "" {
		fmt.Fprintf(b, "Court: %s\n", details.CourtName)
	}
	if details.Date != "" {
		fmt.Fprintf(b, "Date: %s\n", details.Date)
	}
	if details.TimeRange != "" {
		fmt.Fprintf(b, "Time: %s\n", details.TimeRange)
	}
	if details.Coach {
		b.WriteString("Coach: included\n")
	}
	if details.Equipment > 0 {
		fmt.Fprintf(b, "Rented equipment: %d item(s)\n", details.Equipment)
	}
}

func facilityName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "your facility"
	}
	return name
}
