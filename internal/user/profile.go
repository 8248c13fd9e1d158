package user

import (
	"github.com/Jam721/VkWebHomework/internal/media"
	userModel "github.com/Jam721/VkWebHomework/internal/model/user"
)

// Form error types reported in data.error_type
const (
	ErrorTypeAuth        = "auth_error"
	ErrorTypeEmailExists = "email_exists"
	ErrorTypeFormInvalid = "form_invalid"
)

// Profile 当前用户信息
type Profile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func ToProfile(u *userModel.User, mediaURL string) Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Nickname:  u.Nickname,
		AvatarURL: media.URL(mediaURL, u.Avatar),
	}
}
