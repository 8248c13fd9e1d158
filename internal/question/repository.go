package question

import (
	"context"

	"gorm.io/gorm"

	questionModel "github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
)

// listing orders
const (
	orderNew = "questions.created_at DESC, questions.id DESC"
	orderHot = "questions.likes_count DESC, questions.created_at DESC, questions.id DESC"
)

type Repository interface {
	Count(ctx context.Context, tagID uint) (int64, error)
	List(ctx context.Context, tagID uint, order string, offset, limit int) ([]questionModel.Question, error)
	AnswerCounts(ctx context.Context, questionIDs []uint) (map[uint]int, error)
	FindTag(ctx context.Context, title string) (*tag.Tag, error)
	FindDetail(ctx context.Context, id uint) (*questionModel.Question, error)
	GetOrCreateTags(ctx context.Context, titles []string) ([]tag.Tag, error)
	Create(ctx context.Context, q *questionModel.Question) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// scoped restricts to questions carrying tagID; 0 means all questions.
func (r *repository) scoped(ctx context.Context, tagID uint) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&questionModel.Question{})
	if tagID != 0 {
		db = db.Joins("JOIN question_tags ON question_tags.question_id = questions.id").
			Where("question_tags.tag_id = ?", tagID)
	}
	return db
}

func (r *repository) Count(ctx context.Context, tagID uint) (int64, error) {
	var n int64
	err := r.scoped(ctx, tagID).Count(&n).Error
	return n, err
}

func (r *repository) List(ctx context.Context, tagID uint, order string, offset, limit int) ([]questionModel.Question, error) {
	var questions []questionModel.Question
	err := r.scoped(ctx, tagID).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Order(order).
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (r *repository) AnswerCounts(ctx context.Context, questionIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(questionIDs))
	if len(questionIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		QuestionID uint
		N          int
	}
	err := r.db.WithContext(ctx).
		Table("answers").
		Select("question_id, COUNT(*) AS n").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.QuestionID] = row.N
	}
	return counts, nil
}

func (r *repository) FindTag(ctx context.Context, title string) (*tag.Tag, error) {
	var t tag.Tag
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindDetail(ctx context.Context, id uint) (*questionModel.Question, error) {
	var q questionModel.Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC, answers.id ASC")
		}).
		Preload("Answers.Author").
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) GetOrCreateTags(ctx context.Context, titles []string) ([]tag.Tag, error) {
	tags := make([]tag.Tag, 0, len(titles))
	for _, title := range titles {
		var t tag.Tag
		if err := r.db.WithContext(ctx).Where(tag.Tag{Title: title}).FirstOrCreate(&t).Error; err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func (r *repository) Create(ctx context.Context, q *questionModel.Question) error {
	return r.db.WithContext(ctx).Omit("Author", "Tags.*").Create(q).Error
}
