package question

import (
	"errors"
	"time"

	"github.com/Jam721/VkWebHomework/internal/vote"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagTooLong       = errors.New("tag titles are limited to 50 characters")
)

const maxTagLength = 50

// AskRequest body of POST /ask/
type AskRequest struct {
	Title string `form:"title" json:"title" binding:"required,max=100"`
	Text  string `form:"text" json:"text" binding:"required"`
	Tags  string `form:"tags" json:"tags"` // comma separated
}

type AskResult struct {
	QuestionID  uint   `json:"question_id"`
	RedirectURL string `json:"redirect_url"`
}

type AuthorView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type TagView struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type QuestionSummary struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Text          string     `json:"text"`
	Author        AuthorView `json:"author"`
	Tags          []TagView  `json:"tags"`
	LikesCount    int        `json:"likes_count"`
	DislikesCount int        `json:"dislikes_count"`
	AnswersCount  int        `json:"answers_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AnswerView struct {
	ID        uint       `json:"id"`
	Text      string     `json:"text"`
	Author    AuthorView `json:"author"`
	IsCorrect bool       `json:"is_correct"`
	CreatedAt time.Time  `json:"created_at"`
}

type Detail struct {
	Question     QuestionSummary `json:"question"`
	Answers      []AnswerView    `json:"answers"`
	AnswersCount int             `json:"answers_count"`
	IsAuthor     bool            `json:"is_author"`
	Vote         vote.State      `json:"vote"`
}

type TagPage struct {
	Tag       TagView               `json:"tag"`
	Questions Page[QuestionSummary] `json:"questions"`
}
