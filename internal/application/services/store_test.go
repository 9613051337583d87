package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"file-share-api/internal/domain/audit"
	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/grant"
	"file-share-api/internal/infrastructure/mq"
)

var errStore = errors.New("store unavailable")

// memStore implements the file, grant and audit repositories over maps.
// It enforces the same uniqueness rules as the postgres schema.
type memStore struct {
	mu      sync.Mutex
	files   map[uuid.UUID]*file.File
	grants  map[uuid.UUID]*grant.Grant
	entries []*audit.Entry

	failFetch  bool
	failWrite  bool
	failAppend bool
}

func newMemStore() *memStore {
	return &memStore{
		files:  map[uuid.UUID]*file.File{},
		grants: map[uuid.UUID]*grant.Grant{},
	}
}

func (m *memStore) addFile(owner uuid.UUID) *file.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &file.File{
		ID:         uuid.New(),
		OwnerID:    owner,
		FileName:   "report.pdf",
		Bucket:     "files",
		StorageKey: "files/" + uuid.NewString(),
	}
	m.files[f.ID] = f
	return f
}

// addGrant bypasses the uniqueness rules to set up corrupted state.
func (m *memStore) addGrant(g *grant.Grant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grants[g.ID] = g
}

// file.Repository

func (m *memStore) FetchFile(_ context.Context, id uuid.UUID) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return nil, errStore
	}
	f, ok := m.files[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (m *memStore) FetchOwner(_ context.Context, id uuid.UUID) (*uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return nil, errStore
	}
	f, ok := m.files[id]
	if !ok {
		return nil, nil
	}
	owner := f.OwnerID
	return &owner, nil
}

func (m *memStore) FileExists(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return false, errStore
	}
	_, ok := m.files[id]
	return ok, nil
}

func (m *memStore) FetchOwnerFiles(_ context.Context, ownerID uuid.UUID, _ int) (file.Files, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return nil, errStore
	}
	var out file.Files
	for _, f := range m.files {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (m *memStore) CreateFile(_ context.Context, req *file.File) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return nil, errStore
	}
	cp := *req
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.files[cp.ID] = &cp
	return &cp, nil
}

func (m *memStore) DeleteFile(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return false, errStore
	}
	if _, ok := m.files[id]; !ok {
		return false, nil
	}
	delete(m.files, id)
	for gid, g := range m.grants {
		if g.FileID == id {
			delete(m.grants, gid)
		}
	}
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.FileID != id {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return true, nil
}

// grant.Repository

func (m *memStore) CreateDirectGrant(_ context.Context, req *grant.Grant, now time.Time) (*grant.Grant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return nil, errStore
	}
	for id, g := range m.grants {
		if g.Kind != grant.KindDirectUser || g.FileID != req.FileID || *g.TargetUserID != *req.TargetUserID {
			continue
		}
		if !g.ActiveAt(now) {
			delete(m.grants, id)
			continue
		}
		return nil, grant.ErrDuplicate
	}
	cp := *req
	m.grants[cp.ID] = &cp
	return &cp, nil
}

func (m *memStore) CreateLinkGrant(_ context.Context, req *grant.Grant) (*grant.Grant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return nil, errStore
	}
	for _, g := range m.grants {
		if g.Kind == grant.KindLink && *g.Token == *req.Token {
			return nil, grant.ErrTokenTaken
		}
	}
	cp := *req
	m.grants[cp.ID] = &cp
	return &cp, nil
}

func (m *memStore) FetchGrant(_ context.Context, id uuid.UUID) (*grant.Grant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return nil, errStore
	}
	g, ok := m.grants[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *memStore) FetchActiveDirectGrants(
	_ context.Context,
	fileID, userID uuid.UUID,
	now time.Time,
) (grant.Grants, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return nil, errStore
	}
	var out grant.Grants
	for _, g := range m.grants {
		if g.Kind == grant.KindDirectUser && g.FileID == fileID && *g.TargetUserID == userID && g.ActiveAt(now) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memStore) FetchLinkGrant(_ context.Context, token string) (*grant.Grant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return nil, errStore
	}
	for _, g := range m.grants {
		if g.Kind == grant.KindLink && *g.Token == token {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) FetchFileGrants(_ context.Context, fileID uuid.UUID) (grant.Grants, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFetch {
		return nil, errStore
	}
	var out grant.Grants
	for _, g := range m.grants {
		if g.FileID == fileID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) DeleteGrant(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrite {
		return false, errStore
	}
	if _, ok := m.grants[id]; !ok {
		return false, nil
	}
	delete(m.grants, id)
	return true, nil
}

// audit.Repository

func (m *memStore) AppendEntry(_ context.Context, req *audit.Entry) (*audit.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAppend {
		return nil, errStore
	}
	if _, ok := m.files[req.FileID]; !ok && req.Action != audit.ActionDelete {
		return nil, audit.ErrFileGone
	}
	cp := *req
	m.entries = append(m.entries, &cp)
	return &cp, nil
}

func (m *memStore) FetchFileEntries(_ context.Context, fileID uuid.UUID, _ int) (audit.Entries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out audit.Entries
	for _, e := range m.entries {
		if e.FileID == fileID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) FetchActorEntries(_ context.Context, actorID uuid.UUID, _ int) (audit.Entries, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out audit.Entries
	for _, e := range m.entries {
		if e.ActorID == actorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) actions(fileID uuid.UUID) []audit.Action {
	es, _ := m.FetchFileEntries(context.Background(), fileID, 1)
	out := make([]audit.Action, len(es))
	for i, e := range es {
		out[i] = e.Action
	}
	return out
}

type memBlobs struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failPut  bool
	failRm   bool
	failSign bool
}

func newMemBlobs() *memBlobs { return &memBlobs{objects: map[string][]byte{}} }

func (b *memBlobs) PutObject(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if b.failPut {
		return errStore
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = buf.Bytes()
	return nil
}

func (b *memBlobs) RemoveObject(_ context.Context, key string) error {
	if b.failRm {
		return errStore
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memBlobs) PresignedURL(_ context.Context, key, _ string) (string, error) {
	if b.failSign {
		return "", errStore
	}
	return "https://blobs.test/" + key, nil
}

func (b *memBlobs) GetBucket() string { return "files" }

type fakePublisher struct {
	mu     sync.Mutex
	events []mq.Event
	full   bool
}

func (p *fakePublisher) Enqueue(e mq.Event) bool {
	if p.full {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return true
}
