package files

import "time"

// 保存パスは内部情報なのでDTOには載せない。
type FileResponse struct {
	FileID           uint64    `json:"file_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	MimeType         string    `json:"mime_type"`
	FileType         string    `json:"file_type"`
	UploadedBy       uint64    `json:"uploaded_by"`
	CreatedAt        time.Time `json:"created_at"`
}
