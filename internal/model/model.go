package model

import (
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/model/answer"
	"github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	// question_tags 需先于 Question 注册，many2many 才会复用其结构
	if err := db.SetupJoinTable(&question.Question{}, "Tags", &question.QuestionTag{}); err != nil {
		return err
	}

	// 自动迁移数据库表结构
	return db.AutoMigrate(
		&user.User{},
		&tag.Tag{},
		&question.Question{},
		&question.QuestionTag{},
		&question.QuestionLike{},
		&question.QuestionDislike{},
		&answer.Answer{},
	)
}
