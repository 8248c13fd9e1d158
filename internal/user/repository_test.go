package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	questionModel "github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/testutils"
)

func TestFindByLogin(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(db, testutils.WithUsername("alice"), testutils.WithEmail("alice@example.com"))
	repo := NewUserRepository(db)

	byName, err := repo.FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := repo.FindByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = repo.FindByLogin(ctx, "bob")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTaken(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(db, testutils.WithNickname("ally"))
	repo := NewUserRepository(db)

	taken, err := repo.Taken(ctx, "nickname", "ally", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.Taken(ctx, "nickname", "ally", u.ID)
	require.NoError(t, err)
	assert.False(t, taken, "the owner does not conflict with itself")

	_, err = repo.Taken(ctx, "password_hash", "x", 0)
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	u := testutils.CreateTestUser(db)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Update(ctx, u.ID, map[string]any{"nickname": "renamed"}))
	require.NoError(t, repo.Update(ctx, u.ID, nil))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Nickname)
}

func TestDelete_AdjustsVoteCounters(t *testing.T) {
	db := testutils.SetupTestDBWithForeignKeys(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	leaving := testutils.CreateTestUser(db)
	staying := testutils.CreateTestUser(db)

	liked := testutils.CreateTestQuestion(db, author.ID, testutils.WithLikesCount(2))
	testutils.AddLike(db, liked.ID, leaving.ID)
	testutils.AddLike(db, liked.ID, staying.ID)

	disliked := testutils.CreateTestQuestion(db, author.ID)
	testutils.AddDislike(db, disliked.ID, leaving.ID)
	require.NoError(t, db.Model(disliked).Update("dislikes_count", 1).Error)

	repo := NewUserRepository(db)
	require.NoError(t, repo.Delete(ctx, leaving.ID))

	got := testutils.ReloadQuestion(db, liked.ID)
	assert.Equal(t, 1, got.LikesCount)
	got = testutils.ReloadQuestion(db, disliked.ID)
	assert.Equal(t, 0, got.DislikesCount)

	var likes int64
	db.Model(&questionModel.QuestionLike{}).Count(&likes)
	assert.Equal(t, int64(1), likes)

	assert.ErrorIs(t, repo.Delete(ctx, leaving.ID), gorm.ErrRecordNotFound)
}
