package domain

import "time"

// Category groups businesses. Names are unique ignoring case.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCategoryInput holds the parameters for creating a category.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}
