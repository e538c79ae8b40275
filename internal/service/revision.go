package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/YangSeungWon/pdf-history/internal/diff"
	"github.com/YangSeungWon/pdf-history/internal/extract"
	"github.com/YangSeungWon/pdf-history/internal/model"
	"github.com/YangSeungWon/pdf-history/internal/repository"
	"github.com/YangSeungWon/pdf-history/internal/storage"
)

var (
	ErrInvalidID  = errors.New("revision id must be a positive integer")
	ErrNotFound   = errors.New("revision not found")
	ErrReaderNil  = errors.New("reader is nil")
	ErrExtraction = errors.New("text extraction failed")
)

// CompareResult is the service-level DTO for a diff between two revisions.
type CompareResult struct {
	Old      model.RevisionSummary `json:"old"`
	New      model.RevisionSummary `json:"new"`
	Segments []diff.Segment        `json:"segments"`
	Stats    diff.Stats            `json:"stats"`
}

// RevisionService defines the use cases for tracking document revisions.
type RevisionService interface {
	// Upload extracts text from the content, stores the binary in object
	// storage, and inserts the revision record. Extraction failure rejects
	// the upload with ErrExtraction before anything is persisted; a failed
	// insert rolls the stored object back.
	Upload(ctx context.Context, r io.Reader, displayName string, memo *string) (*model.Revision, error)

	// List returns summaries of all revisions, newest first.
	List(ctx context.Context) ([]model.RevisionSummary, error)

	// Get returns a full revision including its extracted text.
	Get(ctx context.Context, id int64) (*model.Revision, error)

	// GetFile streams the original binary of a revision for serving.
	GetFile(ctx context.Context, id int64) (io.ReadCloser, *model.Revision, error)

	// UpdateMemo replaces the memo of a revision; no other field changes.
	UpdateMemo(ctx context.Context, id int64, memo string) error

	// Delete removes the revision record, then deletes the backing file
	// best-effort: a failed file deletion is logged, never surfaced, so a
	// dangling file can never block removing a record.
	Delete(ctx context.Context, id int64) error

	// Compare diffs the extracted text of two revisions line by line.
	Compare(ctx context.Context, oldID, newID int64) (*CompareResult, error)
}

type revisionService struct {
	store     storage.Storage
	repo      repository.RevisionRepository
	extractor extract.Extractor
	log       *zap.Logger
}

// NewRevisionService constructs a new RevisionService.
func NewRevisionService(store storage.Storage, repo repository.RevisionRepository, extractor extract.Extractor, log *zap.Logger) RevisionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &revisionService{store: store, repo: repo, extractor: extractor, log: log}
}

func (s *revisionService) Upload(ctx context.Context, r io.Reader, displayName string, memo *string) (*model.Revision, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	// Buffer the content: the extractor and the storage upload both need to
	// read it, and extraction must succeed before anything is persisted.
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	text, err := s.extractor.Extract(ctx, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	ext := filepath.Ext(displayName)
	if ext == "" {
		ext = ".pdf"
	}
	key := filepath.ToSlash(filepath.Join("revisions", uuid.New().String()+ext))

	_, err = s.store.Put(ctx, key, bytes.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"original-filename": displayName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rev := &model.Revision{
		StoragePath:   key,
		DisplayName:   displayName,
		ExtractedText: text,
		Memo:          memo,
	}
	stored, err := s.repo.Create(ctx, rev)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns revision summaries, newest first per the repository ordering.
func (s *revisionService) List(ctx context.Context) ([]model.RevisionSummary, error) {
	return s.repo.List(ctx)
}

// Get returns a revision by id.
func (s *revisionService) Get(ctx context.Context, id int64) (*model.Revision, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rev, nil
}

// GetFile opens the stored binary of a revision for streaming to the client.
func (s *revisionService) GetFile(ctx context.Context, id int64) (io.ReadCloser, *model.Revision, error) {
	rev, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, rev.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read storage: %w", err)
	}
	return rc, rev, nil
}

// UpdateMemo replaces the stored memo in place.
func (s *revisionService) UpdateMemo(ctx context.Context, id int64, memo string) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.repo.UpdateMemo(ctx, id, memo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes the record first so the database stays authoritative, then
// deletes the backing file. A crash between the two steps can orphan a file
// on storage; an orphan never shows up as a phantom revision.
func (s *revisionService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Delete(ctx, rev.StoragePath); err != nil {
		s.log.Warn("best-effort file cleanup failed",
			zap.Int64("revision_id", id),
			zap.String("storage_path", rev.StoragePath),
			zap.Error(err),
		)
	}
	return nil
}

// Compare loads both revisions and diffs their extracted text.
func (s *revisionService) Compare(ctx context.Context, oldID, newID int64) (*CompareResult, error) {
	oldRev, err := s.Get(ctx, oldID)
	if err != nil {
		return nil, err
	}
	newRev, err := s.Get(ctx, newID)
	if err != nil {
		return nil, err
	}

	res := diff.Compare(oldRev.ExtractedText, newRev.ExtractedText)
	return &CompareResult{
		Old:      oldRev.Summary(),
		New:      newRev.Summary(),
		Segments: res.Segments,
		Stats:    res.Stats,
	}, nil
}
