package attendance

import "time"

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
	DateLayout       = "2006-01-02"
	TimeLayout       = "15:04:05"
)

type CheckInRequest struct {
	UserID          uint64   `json:"user_id" binding:"required"`
	CheckInPhotoID  *uint64  `json:"check_in_photo_id,omitempty"`
	Latitude        *float64 `json:"location_latitude,omitempty"`
	Longitude       *float64 `json:"location_longitude,omitempty"`
	Address         *string  `json:"location_address,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type CheckOutRequest struct {
	CheckOutPhotoID *uint64  `json:"check_out_photo_id,omitempty"`
	Latitude        *float64 `json:"location_latitude,omitempty"`
	Longitude       *float64 `json:"location_longitude,omitempty"`
	Address         *string  `json:"location_address,omitempty"`
}

type AttendanceResponse struct {
	AttendanceID     uint64    `json:"attendance_id"`
	UserID           uint64    `json:"user_id"`
	CheckInDate      string    `json:"check_in_date"` // YYYY-MM-DD
	CheckInTime      string    `json:"check_in_time"` // HH:MM:SS
	CheckInPhotoID   *uint64   `json:"check_in_photo_id,omitempty"`
	CheckInLocation  *Location `json:"check_in_location,omitempty"`
	CheckOutTime     *string   `json:"check_out_time,omitempty"`
	CheckOutPhotoID  *uint64   `json:"check_out_photo_id,omitempty"`
	CheckOutLocation *Location `json:"check_out_location,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	HoursWorked      *float64  `json:"hours_worked,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type StatsResponse struct {
	UserID      uint64 `json:"user_id"`
	From        string `json:"from"` // YYYY-MM-DD
	To          string `json:"to"`   // YYYY-MM-DD
	DaysPresent int64  `json:"days_present"`
}
