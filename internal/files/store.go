package files

import (
	"context"
	"database/sql"
	"errors"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/db"
)

type Store struct{ db db.DBTX }

func NewStore(dbtx db.DBTX) *Store { return &Store{db: dbtx} }

func (s *Store) Insert(ctx context.Context, f *FileRecord) (uint64, error) {
	const q = `
	INSERT INTO files
		(filename, original_filename, file_path, file_size, mime_type, file_type, uploaded_by, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(6))`
	res, err := s.db.ExecContext(ctx, q,
		f.Filename, f.OriginalFilename, f.FilePath, f.FileSize, f.MimeType, f.FileType, f.UploadedBy,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (s *Store) GetByID(ctx context.Context, id uint64) (*FileRecord, error) {
	const q = `
	SELECT file_id, filename, original_filename, file_path, file_size, mime_type, file_type, uploaded_by, created_at
	FROM files WHERE file_id = ?`
	var f FileRecord
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&f.FileID, &f.Filename, &f.OriginalFilename, &f.FilePath,
		&f.FileSize, &f.MimeType, &f.FileType, &f.UploadedBy, &f.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
