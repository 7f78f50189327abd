package validate

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// CheckinData is the guest-submitted payload for a check-in. All fields
// except Comments are required.
type CheckinData struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	StreetAddress  string `json:"streetAddress"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
	Country        string `json:"country"`
	NumberOfGuests int    `json:"numberOfGuests"`
	ArrivalDate    string `json:"arrivalDate"`
	DepartureDate  string `json:"departureDate"`
	Comments       string `json:"comments"`
}

// Checkin verifies the required check-in fields and normalizes whitespace
// in place. It returns a message naming the first offending field.
func Checkin(d *CheckinData) error {
	required := []struct {
		name  string
		value *string
	}{
		{"firstName", &d.FirstName},
		{"lastName", &d.LastName},
		{"email", &d.Email},
		{"phone", &d.Phone},
		{"streetAddress", &d.StreetAddress},
		{"postalCode", &d.PostalCode},
		{"city", &d.City},
		{"country", &d.Country},
		{"arrivalDate", &d.ArrivalDate},
		{"departureDate", &d.DepartureDate},
	}

	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return fmt.Errorf("missing required field %q", f.name)
		}
	}

	if d.NumberOfGuests < 1 {
		return fmt.Errorf("numberOfGuests must be at least 1, got %d", d.NumberOfGuests)
	}

	if !strings.Contains(d.Email, "@") {
		return fmt.Errorf("invalid email address %q", d.Email)
	}

	arrival, err := Date(d.ArrivalDate)
	if err != nil {
		return fmt.Errorf("invalid arrivalDate: %w", err)
	}
	departure, err := Date(d.DepartureDate)
	if err != nil {
		return fmt.Errorf("invalid departureDate: %w", err)
	}
	if !departure.After(arrival) {
		return fmt.Errorf("departureDate %q must be after arrivalDate %q", d.DepartureDate, d.ArrivalDate)
	}

	d.Comments = strings.TrimSpace(d.Comments)
	return nil
}

// Date parses a calendar date in the wire format used by the guest app.
func Date(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
