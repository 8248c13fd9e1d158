package user

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	questionModel "github.com/Jam721/VkWebHomework/internal/model/question"
	userModel "github.com/Jam721/VkWebHomework/internal/model/user"
)

// UserRepository 用户数据访问层
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByLogin 按用户名或邮箱查找
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*userModel.User, error) {
	var u userModel.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		Order("id").
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// uniqueFields 允许做唯一性检查的列
var uniqueFields = map[string]bool{"username": true, "email": true, "nickname": true}

// Taken 检查某列的值是否已被 excludeID 以外的用户占用
func (r *UserRepository) Taken(ctx context.Context, field, value string, excludeID uint) (bool, error) {
	if !uniqueFields[field] {
		return false, fmt.Errorf("field %q is not unique", field)
	}

	query := r.db.WithContext(ctx).Model(&userModel.User{}).Where(field+" = ?", value)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&userModel.User{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除用户。其问题、回答及投票由外键级联删除；
// 该用户投过票的问题计数在同一事务内先行扣减
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&questionModel.Question{}).
			Where("id IN (?)", tx.Model(&questionModel.QuestionLike{}).Select("question_id").Where("user_id = ?", id)).
			Update("likes_count", gorm.Expr("likes_count - 1")).Error
		if err != nil {
			return fmt.Errorf("adjust likes: %w", err)
		}

		err = tx.Model(&questionModel.Question{}).
			Where("id IN (?)", tx.Model(&questionModel.QuestionDislike{}).Select("question_id").Where("user_id = ?", id)).
			Update("dislikes_count", gorm.Expr("dislikes_count - 1")).Error
		if err != nil {
			return fmt.Errorf("adjust dislikes: %w", err)
		}

		res := tx.Delete(&userModel.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
