package settings

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/media"
	userModel "github.com/Jam721/VkWebHomework/internal/model/user"
	"github.com/Jam721/VkWebHomework/internal/user"
	"github.com/Jam721/VkWebHomework/packages/response"
)

type SettingsService struct {
	users   *user.UserRepository
	storage *media.Storage
}

func NewSettingsService(db *gorm.DB, storage *media.Storage) *SettingsService {
	return &SettingsService{users: user.NewUserRepository(db), storage: storage}
}

func failure(msg string, err error) *response.BusinessError {
	log.Printf("[settings] %s: %v", msg, err)
	return response.NewBusinessError(
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

func formError(errorType, msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InvalidParameter),
		response.WithErrorMessage(msg),
		response.WithErrorType(errorType),
	)
}

func (s *SettingsService) Profile(ctx context.Context, userID uint) (*userModel.User, *response.BusinessError) {
	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("user not found"),
		)
	}
	if err != nil {
		return nil, failure("failed to load profile", err)
	}
	return u, nil
}

// Update 更新邮箱、昵称和头像；唯一性检查排除当前用户
func (s *SettingsService) Update(ctx context.Context, userID uint, req SettingsRequest, avatar *multipart.FileHeader) (*userModel.User, *response.BusinessError) {
	current, bizErr := s.Profile(ctx, userID)
	if bizErr != nil {
		return nil, bizErr
	}

	fields := map[string]any{}

	if email := strings.TrimSpace(req.Email); email != "" && email != current.Email {
		fields["email"] = email
	}
	if nickname := strings.TrimSpace(req.Nickname); nickname != "" && nickname != current.Nickname {
		fields["nickname"] = nickname
	}
	if bizErr := s.checkUnique(ctx, userID, fields); bizErr != nil {
		return nil, bizErr
	}

	var newAvatar string
	if avatar != nil {
		path, err := s.storage.SaveAvatar(avatar)
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrTooLarge) {
			return nil, formError(user.ErrorTypeFormInvalid, err.Error())
		}
		if err != nil {
			return nil, failure("failed to save avatar", err)
		}
		newAvatar = path
		fields["avatar"] = path
	}

	if err := s.users.Update(ctx, userID, fields); err != nil {
		if newAvatar != "" {
			_ = s.storage.Remove(newAvatar)
		}
		// 检查之后被其他用户抢先占用时按表单错误返回
		if bizErr := s.checkUnique(ctx, userID, fields); bizErr != nil {
			return nil, bizErr
		}
		return nil, failure("failed to update profile", err)
	}

	if newAvatar != "" && current.Avatar != nil {
		if err := s.storage.Remove(*current.Avatar); err != nil {
			log.Printf("[settings] remove old avatar: %v", err)
		}
	}

	return s.Profile(ctx, userID)
}

// checkUnique 检查待更新的 email 与 nickname 是否被其他用户占用，email 优先
func (s *SettingsService) checkUnique(ctx context.Context, userID uint, fields map[string]any) *response.BusinessError {
	if email, ok := fields["email"].(string); ok {
		taken, err := s.users.Taken(ctx, "email", email, userID)
		if err != nil {
			return failure("failed to check email", err)
		}
		if taken {
			return formError(user.ErrorTypeEmailExists, "a user with this email already exists")
		}
	}
	if nickname, ok := fields["nickname"].(string); ok {
		taken, err := s.users.Taken(ctx, "nickname", nickname, userID)
		if err != nil {
			return failure("failed to check nickname", err)
		}
		if taken {
			return formError(user.ErrorTypeFormInvalid, "a user with this nickname already exists")
		}
	}
	return nil
}
