package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu              sync.RWMutex
	profiles        map[uuid.UUID]Profile
	classifications map[int]Classification
}

// NewInMemoryRepository creates a repository seeded with the default classifications.
func NewInMemoryRepository() *InMemoryRepository {
	r := &InMemoryRepository{
		profiles:        make(map[uuid.UUID]Profile),
		classifications: make(map[int]Classification),
	}
	for _, c := range DefaultClassifications() {
		r.classifications[c.ID] = c
	}
	return r
}

// DefaultClassifications mirrors the rows seeded by the migrations.
func DefaultClassifications() []Classification {
	return []Classification{
		{ID: 1, Department: "Administration", Position: "Administrator", Role: "admin", EmploymentType: "Full-time", EmployeeLevel: "Senior"},
		{ID: 2, Department: "General", Position: "Staff", Role: "staff", EmploymentType: "Full-time", EmployeeLevel: "Junior"},
	}
}

func (r *InMemoryRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.profiles {
		if existing.Email == p.Email || existing.EmployeeCode == p.EmployeeCode {
			return Profile{}, ErrDuplicateEmail
		}
	}
	if p.EmployeeID == uuid.Nil {
		p.EmployeeID = uuid.New()
	}
	p.CreatedAt = time.Now().UTC()
	p.Classification = nil
	r.profiles[p.EmployeeID] = p
	return p, nil
}

func (r *InMemoryRepository) GetByEmployeeID(ctx context.Context, id uuid.UUID) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrProfileNotFound
	}
	if c, ok := r.classifications[p.ClassificationID]; ok {
		p.Classification = &c
	}
	if p.ContactNo != nil {
		c := *p.ContactNo
		p.ContactNo = &c
	}
	return p, nil
}

func (r *InMemoryRepository) SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.profiles {
		if p.Email == email {
			p.IsAdmin = isAdmin
			r.profiles[id] = p
			return true, nil
		}
	}
	return false, nil
}

// Snapshot copies the current contents for a later Restore.
func (r *InMemoryRepository) Snapshot() map[uuid.UUID]Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[uuid.UUID]Profile, len(r.profiles))
	for id, p := range r.profiles {
		snap[id] = p
	}
	return snap
}

// Restore replaces the contents with a snapshot.
func (r *InMemoryRepository) Restore(snap map[uuid.UUID]Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = snap
}
