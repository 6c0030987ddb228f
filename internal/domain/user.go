package domain

import "time"

type Role string

const (
	RoleProfessional Role = "professional"
	RoleCompany      Role = "company"
	RoleClient       Role = "client"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleProfessional, RoleCompany, RoleClient:
		return true
	default:
		return false
	}
}

type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	Location      string    `json:"location"`
	Bio           string    `json:"bio"`
	AverageRating float64   `json:"averageRating"`
	Followers     []int64   `json:"followers"`
	Following     []int64   `json:"following"`
	CreatedAt     time.Time `json:"createdAt"`
	Version       int32     `json:"-"`
}
