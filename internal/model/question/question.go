// Package question 问题及点赞/点踩成员表
package question

import (
	"time"

	"github.com/Jam721/VkWebHomework/internal/model/answer"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/model/user"
)

// Question 问题
// LikesCount/DislikesCount 与成员表的行数保持一致
type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"type:varchar(100);not null" json:"title"`
	Text          string    `gorm:"type:text;not null" json:"text"`
	AuthorID      uint      `gorm:"not null;index" json:"author_id"`
	LikesCount    int       `gorm:"not null;default:0;index" json:"likes_count"`
	DislikesCount int       `gorm:"not null;default:0" json:"dislikes_count"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	Author  user.User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Tags    []tag.Tag       `gorm:"many2many:question_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Answers []answer.Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionTag 问题-标签关联表，问题或标签删除时级联删除
type QuestionTag struct {
	QuestionID uint `gorm:"primaryKey;autoIncrement:false" json:"question_id"`
	TagID      uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`

	Question Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Tag      tag.Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuestionTag) TableName() string {
	return "question_tags"
}

// QuestionLike 点赞成员表，问题或用户删除时级联删除
type QuestionLike struct {
	QuestionID uint `gorm:"primaryKey;autoIncrement:false" json:"question_id"`
	UserID     uint `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`

	Question Question  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	User     user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuestionLike) TableName() string {
	return "question_likes"
}

// QuestionDislike 点踩成员表
type QuestionDislike struct {
	QuestionID uint `gorm:"primaryKey;autoIncrement:false" json:"question_id"`
	UserID     uint `gorm:"primaryKey;autoIncrement:false;index" json:"user_id"`

	Question Question  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	User     user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (QuestionDislike) TableName() string {
	return "question_dislikes"
}
