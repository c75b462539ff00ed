package response

import (
	"time"

	"clubcore/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

type MeResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromUserView(view *queries.UserView) *MeResponse {
	return &MeResponse{
		ID:        view.ID,
		Email:     view.Email,
		Role:      view.Role,
		LastLogin: view.LastLogin,
		CreatedAt: view.CreatedAt,
	}
}
