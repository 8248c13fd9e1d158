package vote

import (
	"context"

	"gorm.io/gorm"
)

// Service 点赞/点踩切换
type Service interface {
	ToggleLike(ctx context.Context, userID, questionID uint) (*LikeResult, error)
	ToggleDislike(ctx context.Context, userID, questionID uint) (*DislikeResult, error)
	VoteState(ctx context.Context, userID, questionID uint) (State, error)
}

type service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) Service {
	return &service{db: db}
}

type toggleOutcome struct {
	active          bool
	likes, dislikes int
}

func (s *service) toggle(ctx context.Context, userID, questionID uint, k kind) (toggleOutcome, error) {
	var out toggleOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		exists, err := repo.QuestionExists(ctx, questionID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrQuestionNotFound
		}

		if out.active, err = repo.applyVote(ctx, questionID, userID, k); err != nil {
			return err
		}

		out.likes, out.dislikes, err = repo.Counts(ctx, questionID)
		return err
	})
	return out, err
}

func (s *service) ToggleLike(ctx context.Context, userID, questionID uint) (*LikeResult, error) {
	out, err := s.toggle(ctx, userID, questionID, like)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: out.active, TotalLikes: out.likes, TotalDislikes: out.dislikes}, nil
}

func (s *service) ToggleDislike(ctx context.Context, userID, questionID uint) (*DislikeResult, error) {
	out, err := s.toggle(ctx, userID, questionID, dislike)
	if err != nil {
		return nil, err
	}
	return &DislikeResult{Disliked: out.active, TotalLikes: out.likes, TotalDislikes: out.dislikes}, nil
}

func (s *service) VoteState(ctx context.Context, userID, questionID uint) (State, error) {
	if userID == 0 {
		return State{}, nil
	}
	return NewRepository(s.db).Membership(ctx, questionID, userID)
}
