package dto

import "gearguard/internal/authz"

type LoginDTO struct {
	Email    string `json:"email" validate:"required,custom_email"`
	Password string `json:"password" validate:"required"`
}

// SignupDTO - пустая роль определяется по имени ящика.
type SignupDTO struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,custom_email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"omitempty,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=super_admin maintenance_staff end_user"`
}

type UserDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	RoleLabel string  `json:"roleLabel"`
	CompanyID *uint64 `json:"companyId,omitempty"`
}

type AuthResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type SessionDTO struct {
	User        UserDTO         `json:"user"`
	Permissions []string        `json:"permissions"`
	Navigation  []authz.NavItem `json:"navigation"`
	Loading     bool            `json:"loading"`
}

// RedirectDTO - тело ответа при принудительном выходе.
type RedirectDTO struct {
	Redirect string `json:"redirect"`
}
