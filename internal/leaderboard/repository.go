package leaderboard

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	PopularTags(ctx context.Context, limit int) ([]PopularTag, error)
	BestMembers(ctx context.Context, limit int, rankBy RankBy) ([]BestMember, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// PopularTags counts questions per tag; tags without questions rank last.
func (r *repository) PopularTags(ctx context.Context, limit int) ([]PopularTag, error) {
	tags := make([]PopularTag, 0, limit)
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.id, tags.title, COUNT(question_tags.question_id) AS questions_count").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id, tags.title").
		Order("questions_count DESC, tags.id ASC").
		Limit(limit).
		Scan(&tags).Error
	return tags, err
}

func (r *repository) BestMembers(ctx context.Context, limit int, rankBy RankBy) ([]BestMember, error) {
	members := make([]BestMember, 0, limit)
	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id, users.username, users.nickname, users.avatar,
			(SELECT COUNT(*) FROM questions WHERE questions.author_id = users.id) AS questions_count,
			(SELECT COUNT(*) FROM answers WHERE answers.author_id = users.id) AS answers_count`).
		Order(rankBy.orderClause()).
		Limit(limit).
		Scan(&members).Error
	return members, err
}
