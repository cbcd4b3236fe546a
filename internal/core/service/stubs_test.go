package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubPractitionerRepo struct {
	byID    map[string]*domain.Practitioner
	seq     int
	saveErr error // if set, Save returns this error
	lastReq ports.PageRequest
}

func newStubPractitionerRepo() *stubPractitionerRepo {
	return &stubPractitionerRepo{byID: make(map[string]*domain.Practitioner)}
}

func (r *stubPractitionerRepo) Save(_ context.Context, p *domain.Practitioner) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if p.ID == "" {
		r.seq++
		p.ID = "p-" + strconv.Itoa(r.seq)
	} else if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubPractitionerRepo) FindByID(_ context.Context, id string) (*domain.Practitioner, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPractitionerRepo) FindAllActive(_ context.Context, page ports.PageRequest) ([]*domain.Practitioner, int64, error) {
	return r.find(page, true)
}

func (r *stubPractitionerRepo) FindAll(_ context.Context, page ports.PageRequest) ([]*domain.Practitioner, int64, error) {
	return r.find(page, false)
}

func (r *stubPractitionerRepo) find(page ports.PageRequest, activeOnly bool) ([]*domain.Practitioner, int64, error) {
	r.lastReq = page
	var matched []*domain.Practitioner
	for _, p := range r.byID {
		if activeOnly && !p.Active {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		if page.Descending {
			return matched[i].Name > matched[j].Name
		}
		return matched[i].Name < matched[j].Name
	})
	return paginate(matched, page), int64(len(matched)), nil
}

type stubClientRepo struct {
	byID map[string]*domain.Client
	seq  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Save(_ context.Context, c *domain.Client) error {
	if c.ID == "" {
		r.seq++
		c.ID = "c-" + strconv.Itoa(r.seq)
	} else if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) FindAllActive(_ context.Context, page ports.PageRequest) ([]*domain.Client, int64, error) {
	return r.find(page, true)
}

func (r *stubClientRepo) FindAll(_ context.Context, page ports.PageRequest) ([]*domain.Client, int64, error) {
	return r.find(page, false)
}

func (r *stubClientRepo) find(page ports.PageRequest, activeOnly bool) ([]*domain.Client, int64, error) {
	var matched []*domain.Client
	for _, c := range r.byID {
		if activeOnly && !c.Active {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return paginate(matched, page), int64(len(matched)), nil
}

func paginate[T any](items []T, page ports.PageRequest) []T {
	start := page.Page * page.Size
	if start >= len(items) {
		return nil
	}
	end := min(start+page.Size, len(items))
	return items[start:end]
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

// stubIdempotency keeps reserved keys with an empty ID until Remember binds them.
type stubIdempotency struct {
	keys     map[string]string
	storeErr error
	released []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, scope, key string) (bool, error) {
	if s.storeErr != nil {
		return false, s.storeErr
	}
	if _, ok := s.keys[scope+":"+key]; ok {
		return false, nil
	}
	s.keys[scope+":"+key] = ""
	return true, nil
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, key string) (string, bool, error) {
	if s.storeErr != nil {
		return "", false, s.storeErr
	}
	id := s.keys[scope+":"+key]
	return id, id != "", nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key, id string) error {
	s.keys[scope+":"+key] = id
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, scope, key string) error {
	delete(s.keys, scope+":"+key)
	s.released = append(s.released, scope+":"+key)
	return nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (p *recordingPublisher) Publish(entry domain.AuditEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
}

func (p *recordingPublisher) actions() []domain.AuditAction {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.AuditAction, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Action
	}
	return out
}

type stubAuditRepo struct {
	inserted  []domain.AuditEntry
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *entry)
	return nil
}

var errStore = errors.New("store unavailable")
