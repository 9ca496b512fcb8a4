package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"rofl-backend/internal/mail"
	"rofl-backend/internal/media"
	"rofl-backend/internal/otp"
	"rofl-backend/internal/store"
)

// MemoryStore is an in-memory stand-in for *store.Store covering users,
// images and host items.
type MemoryStore struct {
	mu     sync.Mutex
	users  map[string]*store.User
	images []store.Image
	items  map[string]*store.HostItem
	clock  time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[string]*store.User{},
		items: map[string]*store.HostItem{},
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (m *MemoryStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MemoryStore) CreateUser(_ context.Context, u store.User) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, store.ErrConflict
		}
	}
	if u.Role == "" {
		u.Role = store.RoleUser
	}
	u.ID = store.NewID()
	u.CreatedAt = m.tick()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = &u
	out := u
	return &out, nil
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *MemoryStore) ListUsers(_ context.Context, limit, offset int) ([]store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (m *MemoryStore) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = m.tick()
	return nil
}

func (m *MemoryStore) UpdateUserRole(_ context.Context, id, role string) (*store.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u.Role = role
	u.UpdatedAt = m.tick()
	out := *u
	return &out, nil
}

func (m *MemoryStore) SetUserProfileImage(_ context.Context, userID string, img store.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return "", store.ErrNotFound
	}
	previous := u.ProfileImagePublicID
	if img.ID == "" {
		img.ID = store.NewID()
	}
	img.UploadedBy = userID
	img.CreatedAt = m.tick()
	if previous != "" && previous != img.PublicID {
		kept := m.images[:0]
		for _, existing := range m.images {
			if existing.PublicID != previous {
				kept = append(kept, existing)
			}
		}
		m.images = kept
	}
	m.images = append(m.images, img)
	u.ProfileImageURL = img.URL
	u.ProfileImagePublicID = img.PublicID
	return previous, nil
}

func (m *MemoryStore) ListImagesByUploader(_ context.Context, userID string, limit, offset int) ([]store.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Image, 0, len(m.images))
	for _, img := range m.images {
		if img.UploadedBy == userID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (m *MemoryStore) Images() []store.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Image(nil), m.images...)
}

func (m *MemoryStore) CreateHostItem(_ context.Context, it store.HostItem) (*store.HostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[it.OwnerID]; !ok {
		return nil, errors.New("owner does not exist")
	}
	it.ID = store.NewID()
	it.CreatedAt = m.tick()
	it.UpdatedAt = it.CreatedAt
	m.items[it.ID] = &it
	out := it
	return &out, nil
}

func (m *MemoryStore) GetHostItem(_ context.Context, id string) (*store.HostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *it
	return &out, nil
}

func (m *MemoryStore) ListHostItems(_ context.Context, ownerID string, limit, offset int) ([]store.HostItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.HostItem, 0, len(m.items))
	for _, it := range m.items {
		if ownerID == "" || it.OwnerID == ownerID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func page[T any](in []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return []T{}
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}

// MemoryCodes issues predictable codes and enforces single use.
type MemoryCodes struct {
	mu       sync.Mutex
	codes    map[string]string
	sends    map[string]int
	MaxSends int
	NextCode string
}

func NewMemoryCodes() *MemoryCodes {
	return &MemoryCodes{codes: map[string]string{}, sends: map[string]int{}, NextCode: "123456"}
}

func (c *MemoryCodes) Issue(_ context.Context, subject string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends[subject]++
	if c.MaxSends > 0 && c.sends[subject] > c.MaxSends {
		return "", otp.ErrTooManySends
	}
	c.codes[subject] = c.NextCode
	return c.NextCode, nil
}

func (c *MemoryCodes) Verify(_ context.Context, subject, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	want, ok := c.codes[subject]
	if !ok || want != code {
		return otp.ErrInvalidCode
	}
	delete(c.codes, subject)
	return nil
}

func (c *MemoryCodes) TTL() time.Duration {
	return 10 * time.Minute
}

// RecordingMailer keeps every message it is asked to send.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	Err  error
}

func (r *RecordingMailer) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *RecordingMailer) Sent() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message(nil), r.sent...)
}

// MemoryImages accepts PNG and JPEG uploads up to MaxBytes.
type MemoryImages struct {
	mu       sync.Mutex
	objects  map[string][]byte
	MaxBytes int64
}

func NewMemoryImages() *MemoryImages {
	return &MemoryImages{objects: map[string][]byte{}, MaxBytes: 1 << 20}
}

func (m *MemoryImages) PutImage(_ context.Context, prefix string, r io.Reader) (media.Object, error) {
	b, err := io.ReadAll(io.LimitReader(r, m.MaxBytes+1))
	if err != nil {
		return media.Object{}, err
	}
	if int64(len(b)) > m.MaxBytes {
		return media.Object{}, media.ErrTooLarge
	}
	ct := http.DetectContentType(b)
	if ct != "image/png" && ct != "image/jpeg" {
		return media.Object{}, media.ErrUnsupportedType
	}
	id := prefix + "/" + strings.ToLower(store.NewID())
	m.mu.Lock()
	m.objects[id] = bytes.Clone(b)
	m.mu.Unlock()
	return media.Object{URL: "/uploads/" + id, PublicID: id, ContentType: ct, Size: int64(len(b))}, nil
}

func (m *MemoryImages) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, publicID)
	return nil
}

func (m *MemoryImages) Has(publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[publicID]
	return ok
}

// PNG is a minimal byte sequence that sniffs as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
