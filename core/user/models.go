package user

import (
	"net/mail"
	"time"

	"github.com/Ala-Eddine-Mezdoud/online-academy-sub000/core"
)

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (u User) Actor() core.Actor {
	return core.Actor{ID: u.ID, Role: u.Role}
}

// MailAddress returns the user's address, ok is false when the user has no email.
func (u User) MailAddress() (addr mail.Address, ok bool) {
	if u.Email == "" {
		return mail.Address{}, false
	}
	return mail.Address{Name: u.Name, Address: u.Email}, true
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"required,role"`
}

func (nu *NewUser) Clean() {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
}
