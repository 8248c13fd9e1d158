package signup

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/media"
	userModel "github.com/Jam721/VkWebHomework/internal/model/user"
	"github.com/Jam721/VkWebHomework/internal/user"
	"github.com/Jam721/VkWebHomework/packages/response"
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_@.+\-]+$`)

type SignupService struct {
	users   *user.UserRepository
	storage *media.Storage
}

func NewSignupService(db *gorm.DB, storage *media.Storage) *SignupService {
	return &SignupService{users: user.NewUserRepository(db), storage: storage}
}

func formError(errorType, msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
		response.WithErrorType(errorType),
	)
}

func internalError(msg string, err error) *response.BusinessError {
	log.Printf("[signup] %s: %v", msg, err)
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

// Signup 创建用户；avatar 可为 nil
func (s *SignupService) Signup(ctx context.Context, req SignupRequest, avatar *multipart.FileHeader) (*userModel.User, *response.BusinessError) {
	// 1. 参数校验
	if !usernameRegex.MatchString(req.Username) {
		return nil, formError(user.ErrorTypeFormInvalid, "username may contain only letters, digits and @/./+/-/_")
	}
	if req.Password1 != req.Password2 {
		return nil, formError(user.ErrorTypeFormInvalid, "passwords do not match")
	}

	// 2. 唯一性检查，邮箱优先
	if bizErr := s.checkUnique(ctx, req); bizErr != nil {
		return nil, bizErr
	}

	// 3. 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("failed to hash password", err)
	}

	// 4. 保存头像
	newUser := &userModel.User{
		Username:     req.Username,
		Email:        req.Email,
		Nickname:     req.Nickname,
		PasswordHash: string(hashedPassword),
	}
	if avatar != nil {
		path, err := s.storage.SaveAvatar(avatar)
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrTooLarge) {
			return nil, formError(user.ErrorTypeFormInvalid, err.Error())
		}
		if err != nil {
			return nil, internalError("failed to save avatar", err)
		}
		newUser.Avatar = &path
	}

	// 5. 创建用户
	if err := s.users.Create(ctx, newUser); err != nil {
		if newUser.Avatar != nil {
			_ = s.storage.Remove(*newUser.Avatar)
		}
		// 并发注册可能在检查之后抢先写入，唯一约束冲突按表单错误返回
		if bizErr := s.checkUnique(ctx, req); bizErr != nil {
			return nil, bizErr
		}
		return nil, internalError("failed to create user", err)
	}
	return newUser, nil
}

// checkUnique 按 email、username、nickname 的顺序检查占用情况
func (s *SignupService) checkUnique(ctx context.Context, req SignupRequest) *response.BusinessError {
	taken, err := s.users.Taken(ctx, "email", req.Email, 0)
	if err != nil {
		return internalError("failed to check email", err)
	}
	if taken {
		return formError(user.ErrorTypeEmailExists, "a user with this email already exists")
	}
	for _, field := range []struct{ name, value string }{{"username", req.Username}, {"nickname", req.Nickname}} {
		taken, err := s.users.Taken(ctx, field.name, field.value, 0)
		if err != nil {
			return internalError("failed to check "+field.name, err)
		}
		if taken {
			return formError(user.ErrorTypeFormInvalid, "a user with this "+field.name+" already exists")
		}
	}
	return nil
}
