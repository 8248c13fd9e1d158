package question

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	questionModel "github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/testutils"
	"github.com/Jam721/VkWebHomework/internal/vote"
)

func newTestService(db *gorm.DB) Service {
	return NewService(db, vote.NewService(db), "/media")
}

func summaryIDs(items []QuestionSummary) []uint {
	ids := make([]uint, len(items))
	for i, q := range items {
		ids[i] = q.ID
	}
	return ids
}

func TestListNew_OrderAndPagination(t *testing.T) {
	db := testutils.SetupTestDB(t)
	author := testutils.CreateTestUser(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ids := make([]uint, 25)
	for i := range ids {
		q := testutils.CreateTestQuestion(db, author.ID, testutils.WithCreatedAt(base.Add(time.Duration(i)*time.Minute)))
		ids[i] = q.ID
	}
	svc := newTestService(db)

	first, err := svc.ListNew(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, first.Items, PerPage)
	assert.Equal(t, ids[24], first.Items[0].ID, "newest first")
	assert.Equal(t, int64(25), first.Total)
	assert.Equal(t, 2, first.NumPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	last, err := svc.ListNew(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 2, last.Page, "pages beyond the end clamp to the last page")
	assert.Equal(t, []uint{ids[4], ids[3], ids[2], ids[1], ids[0]}, summaryIDs(last.Items))
	assert.False(t, last.HasNext)
}

func TestListNew_Empty(t *testing.T) {
	db := testutils.SetupTestDB(t)

	page, err := newTestService(db).ListNew(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.NumPages)
	assert.Empty(t, page.Items)
}

func TestListHot(t *testing.T) {
	db := testutils.SetupTestDB(t)
	author := testutils.CreateTestUser(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cold := testutils.CreateTestQuestion(db, author.ID, testutils.WithCreatedAt(base.Add(3*time.Hour)))
	hot := testutils.CreateTestQuestion(db, author.ID, testutils.WithLikesCount(10), testutils.WithCreatedAt(base))
	warmOld := testutils.CreateTestQuestion(db, author.ID, testutils.WithLikesCount(5), testutils.WithCreatedAt(base))
	warmNew := testutils.CreateTestQuestion(db, author.ID, testutils.WithLikesCount(5), testutils.WithCreatedAt(base.Add(time.Hour)))

	page, err := newTestService(db).ListHot(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{hot.ID, warmNew.ID, warmOld.ID, cold.ID}, summaryIDs(page.Items))
}

func TestListByTag(t *testing.T) {
	db := testutils.SetupTestDB(t)
	author := testutils.CreateTestUser(db)
	goTag := testutils.CreateTestTag(db, "go")
	other := testutils.CreateTestTag(db, "rust")

	for i := 0; i < 12; i++ {
		testutils.CreateTestQuestion(db, author.ID, testutils.WithTags(goTag))
	}
	testutils.CreateTestQuestion(db, author.ID, testutils.WithTags(other))
	svc := newTestService(db)

	result, err := svc.ListByTag(context.Background(), "go", 2)
	require.NoError(t, err)
	assert.Equal(t, "go", result.Tag.Title)
	assert.Equal(t, int64(12), result.Questions.Total)
	assert.Equal(t, 2, result.Questions.NumPages)
	assert.Len(t, result.Questions.Items, 2)
	for _, q := range result.Questions.Items {
		require.Len(t, q.Tags, 1)
		assert.Equal(t, "go", q.Tags[0].Title)
	}

	_, err = svc.ListByTag(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestDetail(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	viewer := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID, testutils.WithTags(testutils.CreateTestTag(db, "")))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := testutils.CreateTestAnswer(db, q.ID, viewer.ID, testutils.WithAnswerCreatedAt(base.Add(time.Hour)))
	earlier := testutils.CreateTestAnswer(db, q.ID, author.ID, testutils.WithAnswerCreatedAt(base))

	_, err := vote.NewService(db).ToggleDislike(ctx, viewer.ID, q.ID)
	require.NoError(t, err)

	svc := newTestService(db)
	detail, err := svc.Detail(ctx, q.ID, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Title, detail.Question.Title)
	assert.Equal(t, author.Username, detail.Question.Author.Username)
	assert.Len(t, detail.Question.Tags, 1)
	assert.Equal(t, 2, detail.AnswersCount)
	require.Len(t, detail.Answers, 2)
	assert.Equal(t, earlier.ID, detail.Answers[0].ID, "answers oldest first")
	assert.Equal(t, later.ID, detail.Answers[1].ID)
	assert.Equal(t, viewer.Username, detail.Answers[1].Author.Username)
	assert.Equal(t, vote.State{Disliked: true}, detail.Vote)
	assert.False(t, detail.IsAuthor)
	assert.Equal(t, 1, detail.Question.DislikesCount)

	own, err := svc.Detail(ctx, q.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, own.IsAuthor)

	_, err = svc.Detail(ctx, 9999, 0)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAsk(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	existing := testutils.CreateTestTag(db, "django")
	svc := newTestService(db)

	result, err := svc.Ask(ctx, author.ID, AskRequest{
		Title: "How do I seed a database?",
		Text:  "Looking for a fast way.",
		Tags:  " django, postgres ,, django,",
	})
	require.NoError(t, err)
	assert.Equal(t, "/question/"+itoa(result.QuestionID)+"/", result.RedirectURL)

	var q questionModel.Question
	require.NoError(t, db.Preload("Tags").First(&q, result.QuestionID).Error)
	assert.Equal(t, author.ID, q.AuthorID)
	require.Len(t, q.Tags, 2)

	titles := []string{q.Tags[0].Title, q.Tags[1].Title}
	assert.ElementsMatch(t, []string{"django", "postgres"}, titles)

	var djangoCount int64
	require.NoError(t, db.Model(&tag.Tag{}).Where("title = ?", "django").Count(&djangoCount).Error)
	assert.Equal(t, int64(1), djangoCount, "existing tags are reused")
	assert.Contains(t, []uint{q.Tags[0].ID, q.Tags[1].ID}, existing.ID)
}

func TestAsk_TagTooLong(t *testing.T) {
	db := testutils.SetupTestDB(t)
	author := testutils.CreateTestUser(db)

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	_, err := newTestService(db).Ask(context.Background(), author.ID, AskRequest{Title: "t", Text: "x", Tags: string(long)})
	assert.ErrorIs(t, err, ErrTagTooLong)

	var n int64
	require.NoError(t, db.Model(&questionModel.Question{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestParseTags(t *testing.T) {
	titles, err := ParseTags("")
	require.NoError(t, err)
	assert.Empty(t, titles)

	titles, err = ParseTags("go, sql ,go,  ,http")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sql", "http"}, titles)
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
