package seed

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/model/question"
)

const DefaultCounterBatch = 1000

// RecomputeCounters resets likes_count and dislikes_count from the membership
// tables, walking questions by id in batches.
func RecomputeCounters(ctx context.Context, db *gorm.DB, batch int, out io.Writer) (int64, error) {
	if batch <= 0 {
		batch = DefaultCounterBatch
	}
	db = db.WithContext(ctx)

	var total int64
	if err := db.Model(&question.Question{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}

	var updated int64
	var lastID uint
	for {
		var ids []uint
		err := db.Model(&question.Question{}).
			Where("id > ?", lastID).
			Order("id").
			Limit(batch).
			Pluck("id", &ids).Error
		if err != nil {
			return updated, fmt.Errorf("select batch: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		err = db.Model(&question.Question{}).Where("id IN ?", ids).Updates(map[string]any{
			"likes_count":    gorm.Expr("(SELECT COUNT(*) FROM question_likes WHERE question_likes.question_id = questions.id)"),
			"dislikes_count": gorm.Expr("(SELECT COUNT(*) FROM question_dislikes WHERE question_dislikes.question_id = questions.id)"),
		}).Error
		if err != nil {
			return updated, fmt.Errorf("update batch after id %d: %w", lastID, err)
		}

		updated += int64(len(ids))
		lastID = ids[len(ids)-1]
		fmt.Fprintf(out, "Updated %d/%d questions\n", updated, total)
	}

	fmt.Fprintln(out, "Counters updated successfully")
	return updated, nil
}
