package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
	"github.com/vollmed/registry-api/internal/core/service"
	"github.com/vollmed/registry-api/internal/core/validation"
)

// ---------------------------------------------------------------------------
// In-memory collaborators
// ---------------------------------------------------------------------------

type memPractitioners struct {
	byID map[string]domain.Practitioner
	seq  int
}

func (r *memPractitioners) Save(_ context.Context, p *domain.Practitioner) error {
	if p.ID == "" {
		r.seq++
		p.ID = "p-" + strconv.Itoa(r.seq)
	} else if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *memPractitioners) FindByID(_ context.Context, id string) (*domain.Practitioner, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memPractitioners) FindAllActive(_ context.Context, page ports.PageRequest) ([]*domain.Practitioner, int64, error) {
	return r.find(true)
}

func (r *memPractitioners) FindAll(_ context.Context, page ports.PageRequest) ([]*domain.Practitioner, int64, error) {
	return r.find(false)
}

func (r *memPractitioners) find(activeOnly bool) ([]*domain.Practitioner, int64, error) {
	var out []*domain.Practitioner
	for _, p := range r.byID {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

type memClients struct{}

func (memClients) Save(context.Context, *domain.Client) error { return nil }
func (memClients) FindByID(context.Context, string) (*domain.Client, error) {
	return nil, domain.ErrNotFound
}
func (memClients) FindAllActive(context.Context, ports.PageRequest) ([]*domain.Client, int64, error) {
	return nil, 0, nil
}
func (memClients) FindAll(context.Context, ports.PageRequest) ([]*domain.Client, int64, error) {
	return nil, 0, nil
}

// memIdempotency holds an empty ID for keys that are reserved but not yet bound.
type memIdempotency map[string]string

func (m memIdempotency) Reserve(_ context.Context, scope, key string) (bool, error) {
	if _, ok := m[scope+":"+key]; ok {
		return false, nil
	}
	m[scope+":"+key] = ""
	return true, nil
}

func (m memIdempotency) Lookup(_ context.Context, scope, key string) (string, bool, error) {
	id := m[scope+":"+key]
	return id, id != "", nil
}

func (m memIdempotency) Remember(_ context.Context, scope, key, id string) error {
	m[scope+":"+key] = id
	return nil
}

func (m memIdempotency) Release(_ context.Context, scope, key string) error {
	delete(m, scope+":"+key)
	return nil
}

type discardAudit struct{}

func (discardAudit) Publish(domain.AuditEntry) {}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouterWith(t, memIdempotency{})
}

func newTestRouterWith(t *testing.T, idem memIdempotency) http.Handler {
	t.Helper()
	v := validation.New()
	reg := prometheus.NewRegistry()

	return NewRouter(Dependencies{
		Practitioners: service.NewPractitionerService(&memPractitioners{byID: map[string]domain.Practitioner{}}, v, idem, discardAudit{}, zerolog.Nop()),
		Clients:       service.NewClientService(memClients{}, v, idem, discardAudit{}, zerolog.Nop()),
		Registerer:    reg,
		Gatherer:      reg,
		Logger:        zerolog.Nop(),
	})
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const anaPayload = `{"name":"Ana","email":"ana@x.com","phone":"111","crm":"1234","specialty":"CARDIOLOGIA",
	"address":{"street":"A St","district":"D","city":"C","state":"S"}}`

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRouter_PractitionerLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/practitioners", anaPayload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	location := rec.Header().Get("Location")
	if location == "" {
		t.Fatal("create: missing Location header")
	}

	rec = do(t, h, http.MethodPut, location, `{"phone":"222"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodDelete, location, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/practitioners", "")
	var list struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("list decode: %v", err)
	}
	if len(list.Data) != 0 || list.Pagination.Total != 0 {
		t.Fatalf("list: deactivated practitioner must not be listed, got %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, location, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", rec.Code)
	}
	var detail struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Active  bool   `json:"active"`
		Address struct {
			Street string `json:"street"`
		} `json:"address"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("detail decode: %v", err)
	}
	if detail.Phone != "222" || detail.Name != "Ana" || detail.Address.Street != "A St" || detail.Active {
		t.Fatalf("detail: unexpected %+v", detail)
	}
}

func TestRouter_ValidationErrorBody(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/practitioners",
		`{"name":"","email":"ana@x.com","phone":"111","crm":"12","specialty":"CARDIOLOGIA",
		"address":{"street":"A St","district":"D","city":"C","state":"S"}}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	if len(body) != 2 || body[0].Field != "name" || body[1].Field != "crm" {
		t.Fatalf("unexpected violations: %+v", body)
	}
}

func TestRouter_UnknownIDIsEmpty404(t *testing.T) {
	h := newTestRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := do(t, h, method, "/practitioners/nope", "")
		if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
			t.Errorf("%s: expected empty 404, got %d %q", method, rec.Code, rec.Body.String())
		}
	}

	rec := do(t, h, http.MethodPut, "/clients/nope", `{"name":"X"}`)
	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Errorf("PUT client: expected empty 404, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRouter_IdempotentCreate(t *testing.T) {
	h := newTestRouter(t)

	first := do(t, h, http.MethodPost, "/practitioners", anaPayload, "Idempotency-Key", "abc-1")
	second := do(t, h, http.MethodPost, "/practitioners", anaPayload, "Idempotency-Key", "abc-1")

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("expected 201 twice, got %d and %d", first.Code, second.Code)
	}
	if first.Header().Get("Location") != second.Header().Get("Location") {
		t.Fatalf("replay must point to the same record: %q vs %q",
			first.Header().Get("Location"), second.Header().Get("Location"))
	}

	rec := do(t, h, http.MethodPost, "/practitioners", anaPayload, "Idempotency-Key", "not valid!")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed key: expected 400, got %d", rec.Code)
	}
}

func TestRouter_CreateWhileKeyReservedIsConflict(t *testing.T) {
	idem := memIdempotency{}
	h := newTestRouterWith(t, idem)
	if ok, _ := idem.Reserve(context.Background(), "practitioner", "abc-1"); !ok {
		t.Fatal("expected to reserve the key")
	}

	rec := do(t, h, http.MethodPost, "/practitioners", anaPayload, "Idempotency-Key", "abc-1")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	list := do(t, h, http.MethodGet, "/practitioners", "")
	if !strings.Contains(list.Body.String(), `"total":0`) {
		t.Fatalf("nothing must be stored, got %s", list.Body.String())
	}
}

func TestRouter_BadSortParameter(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/clients?sort=crm", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"field":"sort"`) {
		t.Fatalf("expected sort violation, got %s", rec.Body.String())
	}
}

func TestRouter_HugePageIsBadRequest(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/practitioners?page=922337203685477580&size=100", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"field":"page"`) {
		t.Fatalf("expected page violation, got %s", rec.Body.String())
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	h := newTestRouter(t)

	if rec := do(t, h, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}

	do(t, h, http.MethodGet, "/practitioners", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "registry_requests_total") {
		t.Errorf("metrics: expected request counter, got %s", rec.Body.String())
	}

	if rec := do(t, h, http.MethodGet, "/health/ready", ""); rec.Code != http.StatusNotFound {
		t.Errorf("readiness must not be registered without dependencies, got %d", rec.Code)
	}
}
