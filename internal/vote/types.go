package vote

import "errors"

var ErrQuestionNotFound = errors.New("question not found")

// VoteRequest body of POST /like and /dislike, form or JSON
type VoteRequest struct {
	ID uint `form:"id" json:"id" binding:"required"`
}

type LikeResult struct {
	Liked         bool `json:"liked"`
	TotalLikes    int  `json:"total_likes"`
	TotalDislikes int  `json:"total_dislikes"`
}

type DislikeResult struct {
	Disliked      bool `json:"disliked"`
	TotalLikes    int  `json:"total_likes"`
	TotalDislikes int  `json:"total_dislikes"`
}

// State a viewer's current vote on a question
type State struct {
	Liked    bool `json:"liked"`
	Disliked bool `json:"disliked"`
}

type kind int

const (
	like kind = iota
	dislike
)
