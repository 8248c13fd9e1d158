package login

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userModel "github.com/Jam721/VkWebHomework/internal/model/user"
	"github.com/Jam721/VkWebHomework/internal/user"
	"github.com/Jam721/VkWebHomework/packages/response"
)

type LoginService struct {
	users *user.UserRepository
}

func NewLoginService(db *gorm.DB) *LoginService {
	return &LoginService{users: user.NewUserRepository(db)}
}

func authError() *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("invalid username or password"),
		response.WithErrorType(user.ErrorTypeAuth),
	)
}

// Authenticate 校验用户名（或邮箱）与密码
func (s *LoginService) Authenticate(ctx context.Context, req LoginRequest) (*userModel.User, *response.BusinessError) {
	found, err := s.users.FindByLogin(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, authError()
	}
	if err != nil {
		log.Printf("[login] lookup failed: %v", err)
		return nil, response.NewBusinessError(
			response.WithErrorMessage("login failed"),
			response.WithError(err),
		)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return nil, authError()
	}
	return found, nil
}
