package files

import "time"

const (
	KindPhoto      = "photo"
	KindDocument   = "document"
	KindAttachment = "attachment"
)

// アップロード済みファイルのメタデータ。作成後は更新しない。
type FileRecord struct {
	FileID           uint64
	Filename         string // 生成した保存名（ULID + 拡張子）
	OriginalFilename string
	FilePath         string
	FileSize         int64
	MimeType         string
	FileType         string
	UploadedBy       uint64
	CreatedAt        time.Time
}

func (f FileRecord) toDTO() FileResponse {
	return FileResponse{
		FileID:           f.FileID,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		FileSize:         f.FileSize,
		MimeType:         f.MimeType,
		FileType:         f.FileType,
		UploadedBy:       f.UploadedBy,
		CreatedAt:        f.CreatedAt,
	}
}
