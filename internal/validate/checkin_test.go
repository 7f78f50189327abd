package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validData() CheckinData {
	return CheckinData{
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane@example.com",
		Phone:          "+31 6 12345678",
		StreetAddress:  "Keizersgracht 1",
		PostalCode:     "1015 CS",
		City:           "Amsterdam",
		Country:        "NL",
		NumberOfGuests: 2,
		ArrivalDate:    "2025-06-01",
		DepartureDate:  "2025-06-05",
	}
}

func TestCheckin(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*CheckinData)
		expectErr bool
	}{
		{
			name:      "valid submission",
			mutate:    func(d *CheckinData) {},
			expectErr: false,
		},
		{
			name:      "whitespace is trimmed",
			mutate:    func(d *CheckinData) { d.FirstName = "  Jane  " },
			expectErr: false,
		},
		{
			name:      "blank required field",
			mutate:    func(d *CheckinData) { d.City = "   " },
			expectErr: true,
		},
		{
			name:      "missing last name",
			mutate:    func(d *CheckinData) { d.LastName = "" },
			expectErr: true,
		},
		{
			name:      "email without at sign",
			mutate:    func(d *CheckinData) { d.Email = "jane.example.com" },
			expectErr: true,
		},
		{
			name:      "zero guests",
			mutate:    func(d *CheckinData) { d.NumberOfGuests = 0 },
			expectErr: true,
		},
		{
			name:      "negative guests",
			mutate:    func(d *CheckinData) { d.NumberOfGuests = -1 },
			expectErr: true,
		},
		{
			name:      "unparseable arrival date",
			mutate:    func(d *CheckinData) { d.ArrivalDate = "01/06/2025" },
			expectErr: true,
		},
		{
			name: "departure not after arrival",
			mutate: func(d *CheckinData) {
				d.ArrivalDate = "2025-06-05"
				d.DepartureDate = "2025-06-05"
			},
			expectErr: true,
		},
		{
			name:      "comments are optional",
			mutate:    func(d *CheckinData) { d.Comments = "" },
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := validData()
			tc.mutate(&data)

			err := Checkin(&data)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckinNormalizes(t *testing.T) {
	data := validData()
	data.FirstName = "  Jane "
	data.Comments = " early arrival please "

	assert.NoError(t, Checkin(&data))
	assert.Equal(t, "Jane", data.FirstName)
	assert.Equal(t, "early arrival please", data.Comments)
}

func TestDate(t *testing.T) {
	_, err := Date("2025-06-01")
	assert.NoError(t, err)

	_, err = Date("not a date")
	assert.Error(t, err)
}
