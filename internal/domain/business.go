package domain

import "time"

// UnknownCategory is reported as the category name of a business whose
// category no longer exists.
const UnknownCategory = "Unknown"

// Business is a directory listing. CategoryName is resolved from the
// categories collection on every read and is never persisted.
type Business struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateBusinessInput holds the parameters for creating a business.
type CreateBusinessInput struct {
	Name       string `json:"name" validate:"required,notblank,max=200"`
	Location   string `json:"location" validate:"required,notblank,max=300"`
	CategoryID string `json:"categoryId" validate:"required,notblank"`
}

// UpdateBusinessInput is a partial update; nil fields are left unchanged.
type UpdateBusinessInput struct {
	Name       *string `json:"name" validate:"omitempty,notblank,max=200"`
	Location   *string `json:"location" validate:"omitempty,notblank,max=300"`
	CategoryID *string `json:"categoryId" validate:"omitempty,notblank"`
}

// IsEmpty reports whether the update changes nothing.
func (in UpdateBusinessInput) IsEmpty() bool {
	return in.Name == nil && in.Location == nil && in.CategoryID == nil
}

// BusinessFilter narrows a directory listing. Empty fields match everything.
type BusinessFilter struct {
	// Search matches name or location, case-insensitively.
	Search     string
	Location   string
	CategoryID string
}
