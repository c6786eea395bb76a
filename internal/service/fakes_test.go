package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/srisoftware/portal-api/internal/models"
	appErrors "github.com/srisoftware/portal-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func adminIdentity() models.Identity {
	return models.Identity{Role: models.RoleAdmin, AdminID: "admin-1", Username: "admin", Name: "Office"}
}

func studentIdentity(id string) models.Identity {
	return models.Identity{Role: models.RoleStudent, StudentID: id, Name: "Student " + id}
}

func trainee(id, name string) models.StudentRegistration {
	code := id
	return models.StudentRegistration{ID: "row-" + id, StudentID: &code, FullName: name, Status: models.StudentStatusActive, IsTrainee: true}
}

type mockStudentRepo struct {
	mu          sync.Mutex
	rows        map[string]*models.StudentRegistration
	photos      map[string]string
	rosterCalls int
	created     int
	err         error
}

func newMockStudentRepo(students ...models.StudentRegistration) *mockStudentRepo {
	repo := &mockStudentRepo{rows: map[string]*models.StudentRegistration{}, photos: map[string]string{}}
	for i := range students {
		s := students[i]
		repo.rows[s.ID] = &s
	}
	return repo
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentRegistration, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}
	out := []models.StudentRegistration{}
	for _, s := range m.rows {
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.FullName), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, len(out), nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.StudentRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) FindByStudentID(ctx context.Context, studentID string) (*models.StudentRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.rows {
		if s.Code() == studentID {
			c := *s
			return &c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByStudentID(ctx context.Context, studentID string, excludeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.Code() == studentID && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Roster(ctx context.Context) ([]models.RosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterCalls++
	roster := []models.RosterEntry{}
	for _, s := range m.rows {
		if s.IsTrainee && s.StudentID != nil {
			roster = append(roster, models.RosterEntry{StudentID: s.Code(), FullName: s.FullName, Email: s.Email})
		}
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].FullName < roster[j].FullName })
	return roster, nil
}

func (m *mockStudentRepo) MissingStudentIDs(ctx context.Context, ids []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var missing []string
	for _, id := range ids {
		found := false
		for _, s := range m.rows {
			if s.Code() == id {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.StudentRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created++
	if student.ID == "" {
		student.ID = fmt.Sprintf("generated-%d", m.created)
	}
	c := *student
	m.rows[c.ID] = &c
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.StudentRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *student
	m.rows[c.ID] = &c
	return nil
}

func (m *mockStudentRepo) UpdatePhoto(ctx context.Context, studentID, photo string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos[studentID] = photo
	return nil
}

func (m *mockStudentRepo) UpdatePassword(ctx context.Context, studentID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.Code() == studentID {
			s.PasswordHash = &passwordHash
			return nil
		}
	}
	return sql.ErrNoRows
}

type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

type mockAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *mockAudit) Record(ctx context.Context, entry models.AuditLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *mockAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Action + " " + e.Resource
	}
	return out
}

// fakeRoster serves a fixed roster and treats its ids as the only known students.
type fakeRoster struct {
	ids []string
	err error
}

func (f *fakeRoster) RosterIDs(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.ids...), nil
}

func (f *fakeRoster) MissingStudentIDs(ctx context.Context, ids []string) ([]string, error) {
	known := map[string]bool{}
	for _, id := range f.ids {
		known[id] = true
	}
	var missing []string
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

type memCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	deleted []string
}

func newMemCache() *memCache { return &memCache{values: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = raw
	return nil
}

func (c *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	delete(c.values, pattern)
	return nil
}
