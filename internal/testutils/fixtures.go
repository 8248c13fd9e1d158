package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/model/answer"
	"github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/model/user"
)

// TestPassword is the plain password of every fixture user.
const TestPassword = "password123"

var testPasswordHash string

func passwordHash() string {
	if testPasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("Failed to hash test password: %v", err))
		}
		testPasswordHash = string(hash)
	}
	return testPasswordHash
}

func shortID() string {
	return uuid.New().String()[:8]
}

// CreateTestUser creates a test user with unique username/email/nickname
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := shortID()

	testUser := &user.User{
		Username:     fmt.Sprintf("test_user_%s", uniqueID),
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		Nickname:     fmt.Sprintf("nick_%s", uniqueID),
		PasswordHash: passwordHash(),
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithNickname sets the nickname
func WithNickname(nickname string) UserOption {
	return func(u *user.User) {
		u.Nickname = nickname
	}
}

// CreateTestTag creates a tag; an empty title gets a unique one.
func CreateTestTag(db *gorm.DB, title string) *tag.Tag {
	if title == "" {
		title = fmt.Sprintf("tag_%s", shortID())
	}
	t := &tag.Tag{Title: title}
	if err := db.Create(t).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test tag: %v", err))
	}
	return t
}

// CreateTestQuestion creates a question owned by authorID
func CreateTestQuestion(db *gorm.DB, authorID uint, opts ...QuestionOption) *question.Question {
	q := &question.Question{
		Title:     fmt.Sprintf("Test Question %s", shortID()),
		Text:      "Test question text",
		AuthorID:  authorID,
		CreatedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(q)
	}

	if err := db.Omit("Author").Create(q).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test question: %v", err))
	}

	return q
}

// QuestionOption configures test question
type QuestionOption func(*question.Question)

// WithTitle sets the question title
func WithTitle(title string) QuestionOption {
	return func(q *question.Question) {
		q.Title = title
	}
}

// WithCreatedAt sets the creation time
func WithCreatedAt(at time.Time) QuestionOption {
	return func(q *question.Question) {
		q.CreatedAt = at
	}
}

// WithLikesCount sets the stored likes counter without membership rows
func WithLikesCount(n int) QuestionOption {
	return func(q *question.Question) {
		q.LikesCount = n
	}
}

// WithTags attaches existing tags
func WithTags(tags ...*tag.Tag) QuestionOption {
	return func(q *question.Question) {
		for _, t := range tags {
			q.Tags = append(q.Tags, *t)
		}
	}
}

// CreateTestAnswer creates an answer to questionID by authorID
func CreateTestAnswer(db *gorm.DB, questionID, authorID uint, opts ...AnswerOption) *answer.Answer {
	a := &answer.Answer{
		QuestionID: questionID,
		AuthorID:   authorID,
		Text:       fmt.Sprintf("Test answer %s", shortID()),
		CreatedAt:  time.Now(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if err := db.Omit("Author").Create(a).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test answer: %v", err))
	}

	return a
}

// AnswerOption configures test answer
type AnswerOption func(*answer.Answer)

// WithCorrect marks the answer correct
func WithCorrect() AnswerOption {
	return func(a *answer.Answer) {
		a.IsCorrect = true
	}
}

// WithAnswerCreatedAt sets the creation time
func WithAnswerCreatedAt(at time.Time) AnswerOption {
	return func(a *answer.Answer) {
		a.CreatedAt = at
	}
}

// AddLike inserts a like membership row without touching the counters
func AddLike(db *gorm.DB, questionID, userID uint) {
	if err := db.Create(&question.QuestionLike{QuestionID: questionID, UserID: userID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test like: %v", err))
	}
}

// AddDislike inserts a dislike membership row without touching the counters
func AddDislike(db *gorm.DB, questionID, userID uint) {
	if err := db.Create(&question.QuestionDislike{QuestionID: questionID, UserID: userID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test dislike: %v", err))
	}
}

// ReloadQuestion reads the stored question row
func ReloadQuestion(db *gorm.DB, id uint) *question.Question {
	var q question.Question
	if err := db.First(&q, id).Error; err != nil {
		panic(fmt.Sprintf("Failed to reload question: %v", err))
	}
	return &q
}
