package leaderboard

import (
	"fmt"
	"time"

	"github.com/Jam721/VkWebHomework/config"
)

// Cache keys
const (
	PopularTagsKey = "popular_tags"
	BestMembersKey = "best_members"
)

type PopularTag struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	QuestionsCount int    `json:"questions_count"`
}

type BestMember struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	Nickname       string  `json:"nickname"`
	Avatar         *string `json:"avatar,omitempty"`
	QuestionsCount int     `json:"questions_count"`
	AnswersCount   int     `json:"answers_count"`
}

// Sidebar is attached to every page response.
type Sidebar struct {
	PopularTags []PopularTag `json:"popular_tags"`
	BestMembers []BestMember `json:"best_members"`
}

// RankBy selects how best members are ordered.
type RankBy string

const (
	RankByAnswers          RankBy = "answers"
	RankByQuestions        RankBy = "questions"
	RankByQuestionsAnswers RankBy = "questions_answers"
)

func ParseRankBy(s string) (RankBy, error) {
	switch RankBy(s) {
	case RankByAnswers, RankByQuestions, RankByQuestionsAnswers:
		return RankBy(s), nil
	case "":
		return RankByAnswers, nil
	}
	return RankByAnswers, fmt.Errorf("unknown best members ranking %q", s)
}

func (r RankBy) orderClause() string {
	switch r {
	case RankByQuestions:
		return "questions_count DESC, users.id ASC"
	case RankByQuestionsAnswers:
		return "questions_count DESC, answers_count DESC, users.id ASC"
	default:
		return "answers_count DESC, users.id ASC"
	}
}

type Options struct {
	TTL          time.Duration
	TagsLimit    int
	MembersLimit int
	RankBy       RankBy
}

// OptionsFromConfig reads the cache section. An unknown ranking falls back to answers.
func OptionsFromConfig(conf *config.AppConfig) (Options, error) {
	rankBy, err := ParseRankBy(conf.Cache.BestMembersRankBy)
	return Options{
		TTL:          conf.LeaderboardTTL(),
		TagsLimit:    conf.Cache.PopularTagsLimit,
		MembersLimit: conf.Cache.BestMembersLimit,
		RankBy:       rankBy,
	}, err
}
