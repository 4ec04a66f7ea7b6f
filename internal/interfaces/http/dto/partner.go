package dto

// CreatePartnerRequest creates a customer or supplier
type CreatePartnerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// UpdatePartnerRequest updates a customer or supplier
type UpdatePartnerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// ListPartnersRequest filters partner listings by name fragment
type ListPartnersRequest struct {
	ListRequest
	Name string `form:"name"`
}
