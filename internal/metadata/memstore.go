package metadata

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

type fileKey struct {
	fileName string
	dirName  string
}

// MemStore keeps metadata in process memory. Its contents are lost on exit;
// it serves local runs and tests. Every operation holds one mutex, so an
// upsert is atomic just like the PostgreSQL statement.
type MemStore struct {
	mu     sync.Mutex
	now    func() time.Time
	nextID int64
	dirs   map[string]struct{}
	byKey  map[fileKey]*FileRecord
	byID   map[int64]*FileRecord
}

// MemStoreOption configures a MemStore.
type MemStoreOption func(*MemStore)

// WithClock replaces time.Now as the source of record timestamps.
func WithClock(now func() time.Time) MemStoreOption {
	return func(s *MemStore) { s.now = now }
}

// NewMemStore returns an empty store that already holds the root directory.
func NewMemStore(opts ...MemStoreOption) *MemStore {
	s := &MemStore{
		now:   time.Now,
		dirs:  map[string]struct{}{RootDir: {}},
		byKey: make(map[fileKey]*FileRecord),
		byID:  make(map[int64]*FileRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureDirectory adds dirName unless it already exists.
func (s *MemStore) EnsureDirectory(_ context.Context, dirName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirs[dirName] = struct{}{}
	return nil
}

// UpsertFile behaves like PgStore.UpsertFile.
func (s *MemStore) UpsertFile(_ context.Context, rec *FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dirs[rec.DirName]; !ok {
		return errDirectoryMissing(rec.DirName)
	}

	now := s.now()
	key := fileKey{fileName: rec.FileName, dirName: rec.DirName}

	stored, ok := s.byKey[key]
	if ok {
		stored.FileSize = rec.FileSize
		stored.UpdatedAt = now
	} else {
		s.nextID++
		stored = &FileRecord{
			ID:        s.nextID,
			FileName:  rec.FileName,
			DirName:   rec.DirName,
			FileSize:  rec.FileSize,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.byKey[key] = stored
		s.byID[stored.ID] = stored
	}

	rec.ID = stored.ID
	rec.CreatedAt = stored.CreatedAt
	rec.UpdatedAt = stored.UpdatedAt
	return nil
}

// GetFile returns a copy of the record with the given id.
func (s *MemStore) GetFile(_ context.Context, id int64) (*FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[id]
	if !ok {
		return nil, errFileNotFound(id)
	}
	rec := *stored
	return &rec, nil
}

// TopFiles behaves like PgStore.TopFiles.
func (s *MemStore) TopFiles(_ context.Context, dirName string, limit int) ([]FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make([]FileRecord, 0, len(s.byID))
	for _, stored := range s.byID {
		if dirName == "" || stored.DirName == dirName {
			recs = append(recs, *stored)
		}
	}

	slices.SortFunc(recs, func(a, b FileRecord) int {
		if c := cmp.Compare(b.FileSize, a.FileSize); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if limit >= 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}
