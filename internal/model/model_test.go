package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/model/answer"
	"github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/model/tag"
	"github.com/Jam721/VkWebHomework/internal/model/user"
	"github.com/Jam721/VkWebHomework/internal/testutils"
)

func count(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func TestDeleteUserCascades(t *testing.T) {
	db := testutils.SetupTestDBWithForeignKeys(t)
	asker := testutils.CreateTestUser(db)
	voter := testutils.CreateTestUser(db)
	golang := testutils.CreateTestTag(db, "go")
	q := testutils.CreateTestQuestion(db, asker.ID, testutils.WithTags(golang))
	testutils.CreateTestAnswer(db, q.ID, voter.ID)
	testutils.CreateTestAnswer(db, q.ID, asker.ID)
	testutils.AddLike(db, q.ID, voter.ID)

	// the voter's like and answer go with them
	require.NoError(t, db.Delete(&user.User{}, voter.ID).Error)
	assert.Zero(t, count(t, db, &question.QuestionLike{}))
	assert.Equal(t, int64(1), count(t, db, &answer.Answer{}))
	assert.Equal(t, int64(1), count(t, db, &question.QuestionTag{}))

	// the asker's tagged question, its links and answers go with them
	require.NoError(t, db.Delete(&user.User{}, asker.ID).Error)
	assert.Zero(t, count(t, db, &question.Question{}))
	assert.Zero(t, count(t, db, &question.QuestionTag{}))
	assert.Zero(t, count(t, db, &answer.Answer{}))

	// tags outlive their questions
	assert.Equal(t, int64(1), count(t, db, &tag.Tag{}))
}

func TestDeleteQuestionAndTagCascade(t *testing.T) {
	db := testutils.SetupTestDBWithForeignKeys(t)
	author := testutils.CreateTestUser(db)
	voter := testutils.CreateTestUser(db)
	keep := testutils.CreateTestTag(db, "keep")
	drop := testutils.CreateTestTag(db, "drop")
	q1 := testutils.CreateTestQuestion(db, author.ID, testutils.WithTags(keep, drop))
	q2 := testutils.CreateTestQuestion(db, author.ID, testutils.WithTags(keep))
	testutils.AddDislike(db, q1.ID, voter.ID)
	testutils.CreateTestAnswer(db, q1.ID, voter.ID)

	require.NoError(t, db.Delete(&tag.Tag{}, drop.ID).Error)
	assert.Equal(t, int64(2), count(t, db, &question.QuestionTag{}))

	require.NoError(t, db.Delete(&question.Question{}, q1.ID).Error)
	assert.Zero(t, count(t, db, &question.QuestionDislike{}))
	assert.Zero(t, count(t, db, &answer.Answer{}))

	var links []question.QuestionTag
	require.NoError(t, db.Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, q2.ID, links[0].QuestionID)
}

func TestAtMostOneCorrectAnswerIndex(t *testing.T) {
	db := testutils.SetupTestDB(t)
	author := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	testutils.CreateTestAnswer(db, q.ID, author.ID, testutils.WithCorrect())
	testutils.CreateTestAnswer(db, q.ID, author.ID)

	second := &answer.Answer{QuestionID: q.ID, AuthorID: author.ID, Text: "also right", IsCorrect: true}
	assert.Error(t, db.Omit("Author").Create(second).Error)

	// any number of non-correct answers is fine
	third := &answer.Answer{QuestionID: q.ID, AuthorID: author.ID, Text: "wrong"}
	assert.NoError(t, db.Omit("Author").Create(third).Error)
}
