package entity

import "time"

// Category agrupa productos. CRUD plano, sin lógica de consistencia.
type Category struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
