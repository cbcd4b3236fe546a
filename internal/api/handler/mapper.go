package handler

import (
	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

func practitionerPath(id string) string { return "/practitioners/" + id }

func clientPath(id string) string { return "/clients/" + id }

// --- Domain → HTTP response ---

func toAddressResponse(a domain.Address) addressResponse {
	return addressResponse{
		Street:     a.Street,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		Number:     a.Number,
		Complement: a.Complement,
	}
}

func toPractitionerDetail(p *domain.Practitioner) practitionerDetailResponse {
	return practitionerDetailResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		CRM:       p.CRM,
		Specialty: string(p.Specialty),
		Address:   toAddressResponse(p.Address),
		Active:    p.Active,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func toPractitionerListItem(p *domain.Practitioner) practitionerListItem {
	return practitionerListItem{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CRM:       p.CRM,
		Specialty: string(p.Specialty),
	}
}

func toClientDetail(c *domain.Client) clientDetailResponse {
	return clientDetailResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CPF:       c.CPF,
		Phone:     c.Phone,
		Address:   toAddressResponse(c.Address),
		Active:    c.Active,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func toClientListItem(c *domain.Client) clientListItem {
	return clientListItem{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		CPF:   c.CPF,
	}
}

func toListResponse[E, R any](page *ports.Page[E], mapItem func(E) R) listResponse[R] {
	items := make([]R, len(page.Items))
	for i, item := range page.Items {
		items[i] = mapItem(item)
	}
	return listResponse[R]{
		Data: items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Size:       page.Size,
			TotalPages: page.TotalPages,
		},
	}
}
