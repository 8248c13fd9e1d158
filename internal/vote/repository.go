package vote

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jam721/VkWebHomework/internal/model/question"
)

// Repository 点赞/点踩数据访问
type Repository interface {
	QuestionExists(ctx context.Context, questionID uint) (bool, error)
	Counts(ctx context.Context, questionID uint) (likes, dislikes int, err error)
	Membership(ctx context.Context, questionID, userID uint) (State, error)
	applyVote(ctx context.Context, questionID, userID uint, k kind) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) QuestionExists(ctx context.Context, questionID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&question.Question{}).Where("id = ?", questionID).Count(&n).Error
	return n > 0, err
}

func (r *repository) Counts(ctx context.Context, questionID uint) (int, int, error) {
	var q question.Question
	err := r.db.WithContext(ctx).Select("likes_count", "dislikes_count").First(&q, questionID).Error
	if err != nil {
		return 0, 0, err
	}
	return q.LikesCount, q.DislikesCount, nil
}

func (r *repository) Membership(ctx context.Context, questionID, userID uint) (State, error) {
	var state State
	var n int64
	db := r.db.WithContext(ctx)

	if err := db.Model(&question.QuestionLike{}).
		Where("question_id = ? AND user_id = ?", questionID, userID).Count(&n).Error; err != nil {
		return state, err
	}
	state.Liked = n > 0

	if err := db.Model(&question.QuestionDislike{}).
		Where("question_id = ? AND user_id = ?", questionID, userID).Count(&n).Error; err != nil {
		return state, err
	}
	state.Disliked = n > 0
	return state, nil
}

func membershipRows(k kind, questionID, userID uint) (target, opposite any) {
	if k == like {
		return &question.QuestionLike{QuestionID: questionID, UserID: userID},
			&question.QuestionDislike{QuestionID: questionID, UserID: userID}
	}
	return &question.QuestionDislike{QuestionID: questionID, UserID: userID},
		&question.QuestionLike{QuestionID: questionID, UserID: userID}
}

// applyVote toggles the user's membership in the k set and applies the matching
// counter deltas. Deltas come from rows actually affected, so concurrent
// toggles never drift the counters. Must run inside a transaction.
func (r *repository) applyVote(ctx context.Context, questionID, userID uint, k kind) (bool, error) {
	db := r.db.WithContext(ctx)
	target, opposite := membershipRows(k, questionID, userID)

	var targetDelta, oppositeDelta int64
	active := false

	res := db.Where("question_id = ? AND user_id = ?", questionID, userID).Delete(target)
	if res.Error != nil {
		return false, fmt.Errorf("remove vote: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		targetDelta = -res.RowsAffected
	} else {
		res = db.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(target)
		if res.Error != nil {
			return false, fmt.Errorf("add vote: %w", res.Error)
		}
		targetDelta = res.RowsAffected
		active = true

		res = db.Where("question_id = ? AND user_id = ?", questionID, userID).Delete(opposite)
		if res.Error != nil {
			return false, fmt.Errorf("remove opposite vote: %w", res.Error)
		}
		oppositeDelta = -res.RowsAffected
	}

	if targetDelta == 0 && oppositeDelta == 0 {
		return active, nil
	}

	likesDelta, dislikesDelta := targetDelta, oppositeDelta
	if k == dislike {
		likesDelta, dislikesDelta = oppositeDelta, targetDelta
	}

	err := db.Model(&question.Question{}).Where("id = ?", questionID).Updates(map[string]any{
		"likes_count":    gorm.Expr("likes_count + ?", likesDelta),
		"dislikes_count": gorm.Expr("dislikes_count + ?", dislikesDelta),
	}).Error
	if err != nil {
		return false, fmt.Errorf("update counters: %w", err)
	}
	return active, nil
}
