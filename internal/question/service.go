package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/media"
	answerModel "github.com/Jam721/VkWebHomework/internal/model/answer"
	questionModel "github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/model/user"
	"github.com/Jam721/VkWebHomework/internal/vote"
)

type Service interface {
	ListNew(ctx context.Context, page int) (*Page[QuestionSummary], error)
	ListHot(ctx context.Context, page int) (*Page[QuestionSummary], error)
	ListByTag(ctx context.Context, title string, page int) (*TagPage, error)
	Detail(ctx context.Context, id, viewerID uint) (*Detail, error)
	Ask(ctx context.Context, userID uint, req AskRequest) (*AskResult, error)
}

type service struct {
	db       *gorm.DB
	votes    vote.Service
	mediaURL string
}

func NewService(db *gorm.DB, votes vote.Service, mediaURL string) Service {
	return &service{db: db, votes: votes, mediaURL: mediaURL}
}

func (s *service) ListNew(ctx context.Context, page int) (*Page[QuestionSummary], error) {
	return s.list(ctx, 0, orderNew, page, PerPage)
}

func (s *service) ListHot(ctx context.Context, page int) (*Page[QuestionSummary], error) {
	return s.list(ctx, 0, orderHot, page, PerPage)
}

func (s *service) ListByTag(ctx context.Context, title string, page int) (*TagPage, error) {
	t, err := NewRepository(s.db).FindTag(ctx, title)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.list(ctx, t.ID, orderNew, page, PerPageByTag)
	if err != nil {
		return nil, err
	}
	return &TagPage{Tag: TagView{ID: t.ID, Title: t.Title}, Questions: *questions}, nil
}

func (s *service) list(ctx context.Context, tagID uint, order string, page, perPage int) (*Page[QuestionSummary], error) {
	repo := NewRepository(s.db)

	total, err := repo.Count(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	page, numPages := clampPage(page, total, perPage)

	questions, err := repo.List(ctx, tagID, order, (page-1)*perPage, perPage)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	answerCounts, err := repo.AnswerCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	items := make([]QuestionSummary, len(questions))
	for i := range questions {
		items[i] = s.summary(&questions[i], answerCounts[questions[i].ID])
	}

	p := newPage(items, page, numPages, total, perPage)
	return &p, nil
}

func (s *service) Detail(ctx context.Context, id, viewerID uint) (*Detail, error) {
	q, err := NewRepository(s.db).FindDetail(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	state, err := s.votes.VoteState(ctx, viewerID, q.ID)
	if err != nil {
		return nil, fmt.Errorf("vote state: %w", err)
	}

	answers := make([]AnswerView, len(q.Answers))
	for i := range q.Answers {
		answers[i] = s.answerView(&q.Answers[i])
	}

	return &Detail{
		Question:     s.summary(q, len(q.Answers)),
		Answers:      answers,
		AnswersCount: len(q.Answers),
		IsAuthor:     viewerID != 0 && viewerID == q.AuthorID,
		Vote:         state,
	}, nil
}

func (s *service) Ask(ctx context.Context, userID uint, req AskRequest) (*AskResult, error) {
	titles, err := ParseTags(req.Tags)
	if err != nil {
		return nil, err
	}

	q := &questionModel.Question{
		Title:    strings.TrimSpace(req.Title),
		Text:     req.Text,
		AuthorID: userID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		tags, err := repo.GetOrCreateTags(ctx, titles)
		if err != nil {
			return fmt.Errorf("resolve tags: %w", err)
		}
		q.Tags = tags

		return repo.Create(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	return &AskResult{
		QuestionID:  q.ID,
		RedirectURL: fmt.Sprintf("/question/%d/", q.ID),
	}, nil
}

// ParseTags splits a comma separated tag list, trimming blanks and duplicates.
func ParseTags(raw string) ([]string, error) {
	seen := make(map[string]struct{})
	titles := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		title := strings.TrimSpace(part)
		if title == "" {
			continue
		}
		if len([]rune(title)) > maxTagLength {
			return nil, ErrTagTooLong
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}

func (s *service) author(u *user.User) AuthorView {
	return AuthorView{
		ID:        u.ID,
		Username:  u.Username,
		Nickname:  u.Nickname,
		AvatarURL: media.URL(s.mediaURL, u.Avatar),
	}
}

func tagViews(tags []tag.Tag) []TagView {
	views := make([]TagView, len(tags))
	for i, t := range tags {
		views[i] = TagView{ID: t.ID, Title: t.Title}
	}
	return views
}

func (s *service) summary(q *questionModel.Question, answersCount int) QuestionSummary {
	return QuestionSummary{
		ID:            q.ID,
		Title:         q.Title,
		Text:          q.Text,
		Author:        s.author(&q.Author),
		Tags:          tagViews(q.Tags),
		LikesCount:    q.LikesCount,
		DislikesCount: q.DislikesCount,
		AnswersCount:  answersCount,
		CreatedAt:     q.CreatedAt,
	}
}

func (s *service) answerView(a *answerModel.Answer) AnswerView {
	return AnswerView{
		ID:        a.ID,
		Text:      a.Text,
		Author:    s.author(&a.Author),
		IsCorrect: a.IsCorrect,
		CreatedAt: a.CreatedAt,
	}
}
