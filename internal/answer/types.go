package answer

import "errors"

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrNotAuthor        = errors.New("only the question author can mark answers")
)

// MarkCorrectRequest body of POST /mark-correct
type MarkCorrectRequest struct {
	QuestionID uint `form:"question_id" json:"question_id" binding:"required"`
	AnswerID   uint `form:"answer_id" json:"answer_id" binding:"required"`
}

type MarkCorrectResult struct {
	QuestionID uint `json:"question_id"`
	AnswerID   uint `json:"answer_id"`
	IsCorrect  bool `json:"is_correct"`
}

// CreateAnswerRequest body of POST /answer/:id/
type CreateAnswerRequest struct {
	Text string `form:"text" json:"text" binding:"required"`
}

type CreateAnswerResult struct {
	AnswerID    uint   `json:"answer_id"`
	RedirectURL string `json:"redirect_url"`
}
