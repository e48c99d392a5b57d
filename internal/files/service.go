package files

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/appdotbuilder/attendance-task-logger/internal/platform/webapi"
)

type idGenerator interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Service struct {
	store *Store
	root  string // アップロード先ディレクトリ
	id    idGenerator
}

func NewService(db *sql.DB, root string) *Service {
	return &Service{store: NewStore(db), root: root, id: ulidGen{}}
}

func validKind(kind string) bool {
	switch kind {
	case KindPhoto, KindDocument, KindAttachment:
		return true
	}
	return false
}

// Save はバイト列を先に書き、その後メタデータをINSERTする。
// メタデータ側が失敗したら書いたファイルをベストエフォートで消して元のエラーを返す。
// （レコードだけ残る状態は作らない。孤児ファイルは許容）
func (s *Service) Save(ctx context.Context, content []byte, originalName string, uploadedBy uint64, kind string) (*FileResponse, error) {
	if len(content) == 0 {
		return nil, webapi.ErrInvalid("file content is empty")
	}
	if originalName == "" {
		return nil, webapi.ErrInvalid("original filename is required")
	}
	if uploadedBy == 0 {
		return nil, webapi.ErrInvalid("uploaded_by is required")
	}
	if kind == "" {
		kind = KindAttachment
	}
	if !validKind(kind) {
		return nil, webapi.ErrInvalid("file_type must be photo, document or attachment")
	}

	name, err := s.id.New()
	if err != nil {
		return nil, err
	}
	storageName := name + filepath.Ext(originalName)

	// 書き込みの都度ディレクトリを保証する
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(s.root, storageName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, err
	}

	rec := &FileRecord{
		Filename:         storageName,
		OriginalFilename: originalName,
		FilePath:         path,
		FileSize:         int64(len(content)),
		MimeType:         detectMime(originalName),
		FileType:         kind,
		UploadedBy:       uploadedBy,
	}
	id, err := s.store.Insert(ctx, rec)
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("[WARN] orphan upload could not be removed: %s: %v", path, rmErr)
		}
		return nil, err
	}

	saved, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, webapi.ErrInternal("inserted but not found")
	}
	res := saved.toDTO()
	return &res, nil
}

func detectMime(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (s *Service) Get(ctx context.Context, id uint64) (*FileResponse, error) {
	f, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, webapi.ErrNotFound("file not found")
	}
	res := f.toDTO()
	return &res, nil
}

// コンテンツ配信用。保存パスが要るのでレコードをそのまま返す。
func (s *Service) GetRecord(ctx context.Context, id uint64) (*FileRecord, error) {
	f, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, webapi.ErrNotFound("file not found")
	}
	return f, nil
}
