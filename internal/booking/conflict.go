package booking

import "time"

// ConflictCandidate describes a proposed booking slot to test against the
// assignee's existing bookings on the same date. ExcludeBookingID is set when
// editing, so a booking never conflicts with itself.
type ConflictCandidate struct {
	StaffID          *string
	TeamID           *string
	Date             time.Time
	StartTime        TimeOfDay
	EndTime          TimeOfDay
	ExcludeBookingID string
}

// Conflict is one existing booking that overlaps the candidate's time range.
// It carries enough detail for a warning dialog.
type Conflict struct {
	BookingID    string
	CustomerName string
	ServiceName  string
	StartTime    TimeOfDay
	EndTime      TimeOfDay
	Status       Status
}

// FindOverlapping filters an assignee's same-date bookings down to those whose
// time range overlaps the candidate's, in the order given. Terminal bookings
// and the excluded booking are skipped. Boundary touches are not conflicts.
func FindOverlapping(cand ConflictCandidate, existing []*Booking) []Conflict {
	conflicts := make([]Conflict, 0)
	for _, b := range existing {
		if cand.ExcludeBookingID != "" && b.ID == cand.ExcludeBookingID {
			continue
		}
		if b.Status.Terminal() {
			continue
		}
		if Overlaps(cand.StartTime, cand.EndTime, b.StartTime, b.EndTime) {
			conflicts = append(conflicts, Conflict{
				BookingID:    b.ID,
				CustomerName: b.CustomerName,
				ServiceName:  b.ServiceName,
				StartTime:    b.StartTime,
				EndTime:      b.EndTime,
				Status:       b.Status,
			})
		}
	}
	return conflicts
}
