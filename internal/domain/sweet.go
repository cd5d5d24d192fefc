package domain

import "time"

type Sweet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"index" json:"name"`
	Category    string    `gorm:"index" json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `gorm:"index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InStock reports whether the sweet can currently be sold.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0 && s.IsActive
}

// CanPurchase reports whether buying qty units is legal right now.
func (s *Sweet) CanPurchase(qty int) bool {
	return s.InStock() && qty > 0 && qty <= s.Quantity
}
