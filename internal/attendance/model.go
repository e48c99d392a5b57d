package attendance

import "time"

// 位置情報はJSONカラムに丸ごと保存する。lat/lng が揃った時だけ作られる。
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// 1ユーザ・1日につき1行。チェックインで作成、チェックアウトで同じ行を更新する。
type AttendanceRecord struct {
	AttendanceID     uint64
	UserID           uint64
	CheckInDate      string // YYYY-MM-DD
	CheckInTime      string // HH:MM:SS
	CheckInPhotoID   *uint64
	CheckInLocation  *Location
	CheckOutTime     *string
	CheckOutPhotoID  *uint64
	CheckOutLocation *Location
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// 勤務時間（時間単位、小数）。未チェックアウトなら nil。
// 派生値であり保存はしない。チェックイン日の上で両時刻を比較する。
func (a AttendanceRecord) HoursWorked() *float64 {
	if a.CheckOutTime == nil {
		return nil
	}
	in, err := time.Parse(DateLayout+" "+TimeLayout, a.CheckInDate+" "+a.CheckInTime)
	if err != nil {
		return nil
	}
	out, err := time.Parse(DateLayout+" "+TimeLayout, a.CheckInDate+" "+*a.CheckOutTime)
	if err != nil {
		return nil
	}
	h := out.Sub(in).Hours()
	return &h
}

func (a AttendanceRecord) toDTO() AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:     a.AttendanceID,
		UserID:           a.UserID,
		CheckInDate:      a.CheckInDate,
		CheckInTime:      a.CheckInTime,
		CheckInPhotoID:   a.CheckInPhotoID,
		CheckInLocation:  a.CheckInLocation,
		CheckOutTime:     a.CheckOutTime,
		CheckOutPhotoID:  a.CheckOutPhotoID,
		CheckOutLocation: a.CheckOutLocation,
		Notes:            a.Notes,
		HoursWorked:      a.HoursWorked(),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
