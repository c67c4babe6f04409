package dto

import (
	"time"

	"wxgate.app/wxgate/internal/model"
)

type UserResponse struct {
	ID        int64      `json:"id,string"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Nickname  string     `json:"nickname"`
	Role      model.Role `json:"role"`
	Level     int        `json:"level"`
	IsBanned  bool       `json:"is_banned"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Role:      u.Role,
		Level:     u.Level,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=1,max=255"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=255"`
}

type UserListResponse struct {
	Total int64          `json:"total"`
	Users []UserResponse `json:"data"`
}

func ToUserListResponse(total int64, users []model.User) *UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *ToUserResponse(&users[i]))
	}
	return &UserListResponse{Total: total, Users: out}
}
