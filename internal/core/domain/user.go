package domain

import "errors"

// Role is the account kind chosen at signup. The server never checks it, so
// any string may come back from storage.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleArtist  Role = "artist"
	RoleCurator Role = "curator"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email taken")
	ErrBuyerOnly          = errors.New("purchases require a buyer account")
	ErrArtistOnly         = errors.New("studio requires an artist account")
	ErrNotAuthenticated   = errors.New("not logged in")
)

// RoleSwitch handles every role. Adding a role adds a method here, so each
// implementation stops compiling until it handles the new case.
type RoleSwitch[T any] interface {
	Buyer() T
	Artist() T
	Curator() T
	Unknown(role string) T
}

// SwitchRole dispatches r to the matching RoleSwitch method.
func SwitchRole[T any](r Role, s RoleSwitch[T]) T {
	switch r {
	case RoleBuyer:
		return s.Buyer()
	case RoleArtist:
		return s.Artist()
	case RoleCurator:
		return s.Curator()
	default:
		return s.Unknown(string(r))
	}
}

// User is the client's typed view of a stored user record.
type User struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Role     Role    `json:"role"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Bio      string  `json:"bio"`
	Avatar   string  `json:"avatar,omitempty"`
	Orders   []Order `json:"orders"`
}

// Initial is the placeholder shown instead of a missing avatar.
func (u User) Initial() string {
	for _, r := range u.Name {
		return string(r)
	}
	return ""
}

// Order is a purchase snapshot embedded in the buyer's record. It copies the
// artwork's fields at purchase time and is never updated afterwards.
type Order struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price Price  `json:"price"`
	Date  string `json:"date"`
	Img   string `json:"img"`
}

// OrderDateLayout matches the en-US short date the storefront has always
// stored, e.g. 10/17/2026.
const OrderDateLayout = "1/2/2006"
