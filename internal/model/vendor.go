package model

import "time"

// VendorType classifies a vendor.
type VendorType string

const (
	VendorTypeCafe       VendorType = "CAFE"
	VendorTypeRestaurant VendorType = "RESTAURANT"
)

// Valid reports whether t is a known vendor type.
func (t VendorType) Valid() bool {
	switch t {
	case VendorTypeCafe, VendorTypeRestaurant:
		return true
	}
	return false
}

// Vendor represents a participating vendor.
type Vendor struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Type      VendorType `db:"type" json:"type"`
	Cursor    []byte     `db:"cursor" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}
