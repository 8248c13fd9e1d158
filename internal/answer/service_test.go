package answer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	answerModel "github.com/Jam721/VkWebHomework/internal/model/answer"
	"github.com/Jam721/VkWebHomework/internal/testutils"
)

func correctAnswers(t *testing.T, db *gorm.DB, questionID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&answerModel.Answer{}).
		Where("question_id = ? AND is_correct = ?", questionID, true).
		Order("id").Pluck("id", &ids).Error)
	return ids
}

func TestMarkCorrect_MovesFlag(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	other := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	x := testutils.CreateTestAnswer(db, q.ID, other.ID)
	testutils.CreateTestAnswer(db, q.ID, other.ID, testutils.WithCorrect())
	svc := NewService(db)

	result, err := svc.MarkCorrect(ctx, author.ID, q.ID, x.ID)
	require.NoError(t, err)
	assert.Equal(t, &MarkCorrectResult{QuestionID: q.ID, AnswerID: x.ID, IsCorrect: true}, result)
	assert.Equal(t, []uint{x.ID}, correctAnswers(t, db, q.ID))
}

func TestMarkCorrect_TogglesOff(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	a := testutils.CreateTestAnswer(db, q.ID, author.ID)
	svc := NewService(db)

	result, err := svc.MarkCorrect(ctx, author.ID, q.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)

	result, err = svc.MarkCorrect(ctx, author.ID, q.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Empty(t, correctAnswers(t, db, q.ID))
}

func TestMarkCorrect_AtMostOnePerQuestion(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	otherQ := testutils.CreateTestQuestion(db, author.ID)
	answers := make([]*answerModel.Answer, 4)
	for i := range answers {
		answers[i] = testutils.CreateTestAnswer(db, q.ID, author.ID)
	}
	foreign := testutils.CreateTestAnswer(db, otherQ.ID, author.ID, testutils.WithCorrect())
	svc := NewService(db)

	for _, i := range []int{0, 2, 2, 3, 1, 1, 0} {
		_, err := svc.MarkCorrect(ctx, author.ID, q.ID, answers[i].ID)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(correctAnswers(t, db, q.ID)), 1)
	}
	assert.Equal(t, []uint{answers[0].ID}, correctAnswers(t, db, q.ID))
	assert.Equal(t, []uint{foreign.ID}, correctAnswers(t, db, otherQ.ID), "other questions are untouched")
}

func TestMarkCorrect_Concurrent(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	answers := make([]*answerModel.Answer, 8)
	for i := range answers {
		answers[i] = testutils.CreateTestAnswer(db, q.ID, author.ID)
	}
	svc := NewService(db)

	var wg sync.WaitGroup
	errs := make([]error, len(answers))
	for i, a := range answers {
		wg.Add(1)
		go func(i int, answerID uint) {
			defer wg.Done()
			_, errs[i] = svc.MarkCorrect(ctx, author.ID, q.ID, answerID)
		}(i, a.ID)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, correctAnswers(t, db, q.ID), 1)
}

func TestMarkCorrect_Errors(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	stranger := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	otherQ := testutils.CreateTestQuestion(db, author.ID)
	a := testutils.CreateTestAnswer(db, q.ID, stranger.ID)
	foreign := testutils.CreateTestAnswer(db, otherQ.ID, stranger.ID)
	svc := NewService(db)

	tests := []struct {
		name       string
		userID     uint
		questionID uint
		answerID   uint
		want       error
	}{
		{name: "missing question", userID: author.ID, questionID: 9999, answerID: a.ID, want: ErrQuestionNotFound},
		{name: "not the author", userID: stranger.ID, questionID: q.ID, answerID: a.ID, want: ErrNotAuthor},
		{name: "missing answer", userID: author.ID, questionID: q.ID, answerID: 9999, want: ErrAnswerNotFound},
		{name: "answer of another question", userID: author.ID, questionID: q.ID, answerID: foreign.ID, want: ErrAnswerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MarkCorrect(ctx, tt.userID, tt.questionID, tt.answerID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, correctAnswers(t, db, q.ID))
}

func TestCreateAnswer(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	svc := NewService(db)

	result, err := svc.CreateAnswer(ctx, author.ID, q.ID, CreateAnswerRequest{Text: "use a context"})
	require.NoError(t, err)
	assert.NotZero(t, result.AnswerID)
	assert.Contains(t, result.RedirectURL, "/question/")

	var stored answerModel.Answer
	require.NoError(t, db.First(&stored, result.AnswerID).Error)
	assert.Equal(t, "use a context", stored.Text)
	assert.False(t, stored.IsCorrect)

	_, err = svc.CreateAnswer(ctx, author.ID, 9999, CreateAnswerRequest{Text: "x"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
