package requests

import "time"

const (
	TypePermission = "permission"
	TypeLeave      = "leave"
	TypeSickLeave  = "sick_leave"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// 休暇・外出等の申請。pending で生まれ、状態遷移はガードしない
// （誰がどの状態に動かせるかの制御は上位の責務）。
type Request struct {
	RequestID           uint64
	UserID              uint64
	RequestType         string
	Title               string
	Reason              string
	StartDate           string // YYYY-MM-DD（両端含む）
	EndDate             string // YYYY-MM-DD
	Status              string
	SupportingDocuments []uint64 // file_id の不透明参照リスト
	ManagerNotes        *string
	ReviewedBy          *uint64
	ReviewedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (r Request) toDTO() RequestResponse {
	return RequestResponse{
		RequestID:           r.RequestID,
		UserID:              r.UserID,
		RequestType:         r.RequestType,
		Title:               r.Title,
		Reason:              r.Reason,
		StartDate:           r.StartDate,
		EndDate:             r.EndDate,
		Status:              r.Status,
		SupportingDocuments: r.SupportingDocuments,
		ManagerNotes:        r.ManagerNotes,
		ReviewedBy:          r.ReviewedBy,
		ReviewedAt:          r.ReviewedAt,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func validType(t string) bool {
	switch t {
	case TypePermission, TypeLeave, TypeSickLeave:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
