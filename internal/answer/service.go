package answer

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	answerModel "github.com/Jam721/VkWebHomework/internal/model/answer"
)

type Service interface {
	MarkCorrect(ctx context.Context, userID, questionID, answerID uint) (*MarkCorrectResult, error)
	CreateAnswer(ctx context.Context, userID, questionID uint, req CreateAnswerRequest) (*CreateAnswerResult, error)
}

type service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) Service {
	return &service{db: db}
}

// MarkCorrect toggles the correct flag of an answer. Marking one answer
// clears every other correct answer of the same question. The question row
// is locked so concurrent marks on one question run one after another.
func (s *service) MarkCorrect(ctx context.Context, userID, questionID, answerID uint) (*MarkCorrectResult, error) {
	result := &MarkCorrectResult{QuestionID: questionID, AnswerID: answerID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		q, err := repo.LockQuestion(ctx, questionID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		if err != nil {
			return err
		}
		if q.AuthorID != userID {
			return ErrNotAuthor
		}

		a, err := repo.FindAnswer(ctx, answerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		if err != nil {
			return err
		}
		if a.QuestionID != questionID {
			return ErrAnswerNotFound
		}

		if a.IsCorrect {
			result.IsCorrect = false
			return repo.SetCorrect(ctx, a.ID, false)
		}

		if err := repo.ClearCorrect(ctx, questionID, a.ID); err != nil {
			return fmt.Errorf("clear correct answers: %w", err)
		}
		result.IsCorrect = true
		return repo.SetCorrect(ctx, a.ID, true)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) CreateAnswer(ctx context.Context, userID, questionID uint, req CreateAnswerRequest) (*CreateAnswerResult, error) {
	repo := NewRepository(s.db)

	if _, err := repo.FindQuestion(ctx, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	a := &answerModel.Answer{
		QuestionID: questionID,
		AuthorID:   userID,
		Text:       req.Text,
	}
	if err := repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	return &CreateAnswerResult{
		AnswerID:    a.ID,
		RedirectURL: fmt.Sprintf("/question/%d/#answer-%d", questionID, a.ID),
	}, nil
}
