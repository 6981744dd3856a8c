package domain

import (
	"regexp"
	"time"
)

// vehicleNumberPattern AA00A0000 или AA00AA0000 (например MH12AB1234)
var vehicleNumberPattern = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z]{1,2}\d{4}$`)

// Vehicle represents a vehicle registered by a driver
type Vehicle struct {
	ID        int64
	UserID    int64
	Number    string
	Model     *string
	CreatedAt time.Time
}

// IsOwnedBy returns true if the vehicle belongs to the user
func (v *Vehicle) IsOwnedBy(userID int64) bool {
	return v.UserID == userID
}

// IsValidVehicleNumber checks the registration number format
func IsValidVehicleNumber(number string) bool {
	return vehicleNumberPattern.MatchString(number)
}
