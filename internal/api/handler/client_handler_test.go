package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

type stubClientService struct {
	created ports.CreateClientInput
	listed  ports.ListInput
	fetched string
	updated ports.UpdateClientInput
	record  *domain.Client
	page    *ports.Page[*domain.Client]
	err     error
}

func (s *stubClientService) Create(_ context.Context, in ports.CreateClientInput) (*domain.Client, error) {
	s.created = in
	return s.record, s.err
}

func (s *stubClientService) Get(_ context.Context, id string) (*domain.Client, error) {
	s.fetched = id
	return s.record, s.err
}

func (s *stubClientService) List(_ context.Context, in ports.ListInput) (*ports.Page[*domain.Client], error) {
	s.listed = in
	return s.page, s.err
}

func (s *stubClientService) Update(_ context.Context, in ports.UpdateClientInput) (*domain.Client, error) {
	s.updated = in
	return s.record, s.err
}

func (s *stubClientService) Deactivate(_ context.Context, _ string) error {
	return s.err
}

func sampleClient() *domain.Client {
	return &domain.Client{
		ID:      "c-1",
		Name:    "Bruno",
		Email:   "bruno@x.com",
		CPF:     "123.456.789-00",
		Phone:   "333",
		Address: domain.Address{Street: "R St", District: "Centro", City: "Natal", State: "RN"},
		Active:  true,
	}
}

func TestClientHandler_Create(t *testing.T) {
	svc := &stubClientService{record: sampleClient()}
	h := NewClientHandler(svc)

	body := `{"name":"Bruno","email":"bruno@x.com","cpf":"123.456.789-00","phone":"333",
		"address":{"street":"R St","district":"Centro","city":"Natal","state":"RN"}}`
	c, rec := newJSONContext(http.MethodPost, "/clients", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/clients/c-1" {
		t.Errorf("unexpected Location %q", loc)
	}
	if svc.created.CPF != "123.456.789-00" {
		t.Errorf("cpf not bound: %q", svc.created.CPF)
	}

	var resp clientDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Phone != "333" || resp.Address.City != "Natal" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestClientHandler_List_IncludeInactive(t *testing.T) {
	svc := &stubClientService{page: &ports.Page[*domain.Client]{
		Items: []*domain.Client{sampleClient()},
		Total: 1,
		Size:  10,
	}}
	h := NewClientHandler(svc)
	c, rec := newJSONContext(http.MethodGet, "/clients?include_inactive=true&size=5", "")

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.listed.IncludeInactive || svc.listed.Size != 5 {
		t.Errorf("query not parsed: %+v", svc.listed)
	}

	var resp listResponse[clientListItem]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].CPF != "123.456.789-00" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestClientHandler_Get(t *testing.T) {
	svc := &stubClientService{record: sampleClient()}
	h := NewClientHandler(svc)
	c, rec := newJSONContext(http.MethodGet, "/clients/c-1", "")
	c.SetParamNames("id")
	c.SetParamValues("c-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.fetched != "c-1" {
		t.Errorf("expected id from path, got %q", svc.fetched)
	}

	var resp clientDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "c-1" || resp.CPF != "123.456.789-00" {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	h := NewClientHandler(&stubClientService{err: domain.ErrNotFound})
	c, rec := newJSONContext(http.MethodGet, "/clients/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("handler must leave the body to the error handler, got %q", rec.Body.String())
	}
}

func TestClientHandler_Update(t *testing.T) {
	updated := sampleClient()
	updated.Phone = "444"
	svc := &stubClientService{record: updated}
	h := NewClientHandler(svc)

	c, rec := newJSONContext(http.MethodPut, "/clients/c-1", `{"phone":"444","cpf":"999.999.999-99"}`)
	c.SetParamNames("id")
	c.SetParamValues("c-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.updated.ID != "c-1" {
		t.Errorf("expected id from path, got %q", svc.updated.ID)
	}
	if svc.updated.Phone == nil || *svc.updated.Phone != "444" {
		t.Errorf("phone not bound: %v", svc.updated.Phone)
	}
	if svc.updated.Name != nil || svc.updated.Address != nil {
		t.Errorf("absent fields must stay nil: %+v", svc.updated)
	}

	var resp clientDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Phone != "444" || resp.CPF != "123.456.789-00" {
		t.Errorf("cpf must not change through update: %+v", resp)
	}
}

func TestClientHandler_Delete(t *testing.T) {
	h := NewClientHandler(&stubClientService{})
	c, rec := newJSONContext(http.MethodDelete, "/clients/c-1", "")
	c.SetParamNames("id")
	c.SetParamValues("c-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
