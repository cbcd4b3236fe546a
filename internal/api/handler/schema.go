package handler

import "time"

// Response-only types owned by the transport layer, kept apart from the
// domain types so the JSON contract does not follow internal changes.

type addressResponse struct {
	Street     string `json:"street"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
}

type practitionerDetailResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	CRM       string          `json:"crm"`
	Specialty string          `json:"specialty"`
	Address   addressResponse `json:"address"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// practitionerListItem is the lightweight item used in list responses.
type practitionerListItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CRM       string `json:"crm"`
	Specialty string `json:"specialty"`
}

type clientDetailResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	CPF       string          `json:"cpf"`
	Phone     string          `json:"phone"`
	Address   addressResponse `json:"address"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type clientListItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

type listResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
