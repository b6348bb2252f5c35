package handler

import (
	"time"

	"gym-server/shared/models"
)

type registerRequest struct {
	Email    string  `json:"email" binding:"required,email,max=254"`
	Password string  `json:"password" binding:"required,password"`
	Name     string  `json:"name" binding:"required,max=100"`
	Surname  string  `json:"surname" binding:"required,max=100"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,e164"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenVerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,password,nefield=OldPassword"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" binding:"required,dive,required"`
}

type generateInterServiceTokenRequest struct {
	ServiceName string `json:"service_name" binding:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Phone     *string   `json:"phone,omitempty"`
	Roles     []string  `json:"roles"`
	Enabled   bool      `json:"enabled"`
	IsBanned  bool      `json:"isBanned"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Surname:   u.Surname,
		Phone:     u.Phone,
		Roles:     u.Roles,
		Enabled:   u.Enabled,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
}
