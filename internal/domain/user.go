package domain

import "time"

// Role is a closed enum. Anything outside the two constants is rejected by
// Valid, so role checks fail closed on unknown values.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `gorm:"index" json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the caller of one request, resolved from a validated token.
// The claims are authoritative for the token's lifetime; there is no store
// round-trip per request.
type Identity struct {
	UserID uint
	Email  string
	Role   Role
}
