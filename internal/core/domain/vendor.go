package domain

import "time"

// Vendor models a supplier record. Name maps to the nama_vendor column and
// is unique across all vendors; Type maps to the types column and is a free
// category string (the form offers a catalog, the store does not enforce one).
type Vendor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nama_vendor"`
	Type      string    `json:"types"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
