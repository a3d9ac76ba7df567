package models

import "time"

const (
	ROLE_ADMIN    = "admin"
	ROLE_OPERATOR = "operator"
)

// User representa uma conta do sistema. A senha é armazenada como hash bcrypt.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Username  string     `gorm:"not null;unique" json:"username" form:"username"`
	Password  string     `gorm:"not null" json:"password,omitempty" form:"password"`
	Superuser bool       `gorm:"not null;default:false" json:"superuser"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Username == "" {
		return "username"
	}
	if user.Password == "" {
		return "password"
	}
	return ""
}

// Profile carrega o papel do usuário e os datasets liberados para operadores.
type Profile struct {
	ID                int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID            int64     `gorm:"not null;unique" json:"user"`
	Role              string    `gorm:"not null;default:'operator'" json:"role"`
	AvailableDatasets []Dataset `gorm:"many2many:profile_datasets" json:"available_datasets"`
}

// ProfileFor builds the profile for a user, enforcing the superuser invariant:
// a superuser account always gets the admin role, whatever role was requested.
// Every code path that produces or rewrites a Profile must go through here.
func ProfileFor(user User, role string) Profile {
	if role == "" {
		role = ROLE_OPERATOR
	}
	if user.Superuser {
		role = ROLE_ADMIN
	}
	return Profile{UserID: user.ID, Role: role}
}

func ValidRole(role string) bool {
	return role == ROLE_ADMIN || role == ROLE_OPERATOR
}
