package answer

import (
	"time"

	"github.com/Jam721/VkWebHomework/internal/model/user"
)

// Answer 问题的回答
// 同一问题下至多一个 IsCorrect = true，由部分唯一索引保证
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index;uniqueIndex:idx_answers_one_correct,where:is_correct" json:"question_id"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	Author user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
}

func (Answer) TableName() string {
	return "answers"
}
