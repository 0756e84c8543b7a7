package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Account mirrors the persisted user record. The password is kept in plaintext
// on purpose: the original design stores credentials as entered, and this repo
// reproduces that contract rather than silently hardening it.
type Account struct {
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
