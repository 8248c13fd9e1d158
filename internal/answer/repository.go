package answer

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	answerModel "github.com/Jam721/VkWebHomework/internal/model/answer"
	"github.com/Jam721/VkWebHomework/internal/model/question"
)

type Repository interface {
	FindQuestion(ctx context.Context, questionID uint) (*question.Question, error)
	// LockQuestion loads the question and holds a row lock until the surrounding transaction ends.
	LockQuestion(ctx context.Context, questionID uint) (*question.Question, error)
	FindAnswer(ctx context.Context, answerID uint) (*answerModel.Answer, error)
	Create(ctx context.Context, a *answerModel.Answer) error
	ClearCorrect(ctx context.Context, questionID, exceptAnswerID uint) error
	SetCorrect(ctx context.Context, answerID uint, correct bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindQuestion(ctx context.Context, questionID uint) (*question.Question, error) {
	var q question.Question
	if err := r.db.WithContext(ctx).Select("id", "author_id").First(&q, questionID).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) LockQuestion(ctx context.Context, questionID uint) (*question.Question, error) {
	var q question.Question
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "author_id").
		First(&q, questionID).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) FindAnswer(ctx context.Context, answerID uint) (*answerModel.Answer, error) {
	var a answerModel.Answer
	if err := r.db.WithContext(ctx).First(&a, answerID).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, a *answerModel.Answer) error {
	return r.db.WithContext(ctx).Omit("Author").Create(a).Error
}

func (r *repository) ClearCorrect(ctx context.Context, questionID, exceptAnswerID uint) error {
	return r.db.WithContext(ctx).Model(&answerModel.Answer{}).
		Where("question_id = ? AND id <> ? AND is_correct = ?", questionID, exceptAnswerID, true).
		Update("is_correct", false).Error
}

func (r *repository) SetCorrect(ctx context.Context, answerID uint, correct bool) error {
	return r.db.WithContext(ctx).Model(&answerModel.Answer{}).
		Where("id = ?", answerID).
		Update("is_correct", correct).Error
}
