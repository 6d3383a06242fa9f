package models

type User struct {
	ID         int     `json:"user_id" db:"user_id"`
	LDAP       string  `json:"ldap" db:"ldap"`
	FullName   string  `json:"full_name" db:"full_name"`
	Email      *string `json:"email" db:"email"`
	Role       string  `json:"role" db:"role"`
	Department *string `json:"department" db:"department"`
	Active     bool    `json:"active" db:"active"`
}
