package requests

import "time"

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
	DateLayout       = "2006-01-02"
)

type CreateRequestRequest struct {
	UserID                uint64   `json:"user_id" binding:"required"`
	RequestType           string   `json:"request_type" binding:"required"`
	Title                 string   `json:"title" binding:"required,max=200"`
	Reason                string   `json:"reason" binding:"required,max=1000"`
	StartDate             string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate               string   `json:"end_date" binding:"required"`   // YYYY-MM-DD
	SupportingDocumentIDs []uint64 `json:"supporting_document_ids,omitempty"`
}

// 部分更新。nil のフィールドは変更しない。updated_at は毎回進む。
type UpdateRequestRequest struct {
	Title        *string `json:"title,omitempty"`
	Reason       *string `json:"reason,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Status       *string `json:"status,omitempty"`
	ManagerNotes *string `json:"manager_notes,omitempty"`
	ReviewedBy   *uint64 `json:"reviewed_by,omitempty"`
}

type RequestResponse struct {
	RequestID           uint64     `json:"request_id"`
	UserID              uint64     `json:"user_id"`
	RequestType         string     `json:"request_type"`
	Title               string     `json:"title"`
	Reason              string     `json:"reason"`
	StartDate           string     `json:"start_date"`
	EndDate             string     `json:"end_date"`
	Status              string     `json:"status"`
	SupportingDocuments []uint64   `json:"supporting_documents"`
	ManagerNotes        *string    `json:"manager_notes,omitempty"`
	ReviewedBy          *uint64    `json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
