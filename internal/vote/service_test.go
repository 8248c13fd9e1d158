package vote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Jam721/VkWebHomework/internal/model/question"
	"github.com/Jam721/VkWebHomework/internal/testutils"
)

func assertCountersMatchMembership(t *testing.T, db *gorm.DB, questionID uint) {
	t.Helper()
	var likes, dislikes int64
	require.NoError(t, db.Model(&question.QuestionLike{}).Where("question_id = ?", questionID).Count(&likes).Error)
	require.NoError(t, db.Model(&question.QuestionDislike{}).Where("question_id = ?", questionID).Count(&dislikes).Error)

	q := testutils.ReloadQuestion(db, questionID)
	assert.Equal(t, int(likes), q.LikesCount)
	assert.Equal(t, int(dislikes), q.DislikesCount)
}

func TestToggleLike_Sequence(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	voter := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	svc := NewService(db)

	// like: 0 -> 1
	liked, err := svc.ToggleLike(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, &LikeResult{Liked: true, TotalLikes: 1, TotalDislikes: 0}, liked)

	// like again: 1 -> 0
	liked, err = svc.ToggleLike(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, &LikeResult{Liked: false, TotalLikes: 0, TotalDislikes: 0}, liked)

	// dislike: 0 -> 1
	disliked, err := svc.ToggleDislike(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, &DislikeResult{Disliked: true, TotalLikes: 0, TotalDislikes: 1}, disliked)

	// like switches sides
	liked, err = svc.ToggleLike(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, &LikeResult{Liked: true, TotalLikes: 1, TotalDislikes: 0}, liked)

	state, err := svc.VoteState(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, State{Liked: true, Disliked: false}, state)

	assertCountersMatchMembership(t, db, q.ID)
}

func TestToggleDislike_SwitchesFromLike(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	voter := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	svc := NewService(db)

	_, err := svc.ToggleLike(ctx, voter.ID, q.ID)
	require.NoError(t, err)

	disliked, err := svc.ToggleDislike(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, &DislikeResult{Disliked: true, TotalLikes: 0, TotalDislikes: 1}, disliked)

	disliked, err = svc.ToggleDislike(ctx, voter.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, &DislikeResult{Disliked: false, TotalLikes: 0, TotalDislikes: 0}, disliked)

	assertCountersMatchMembership(t, db, q.ID)
}

func TestToggle_ManyUsersKeepCountersConsistent(t *testing.T) {
	db := testutils.SetupTestDB(t)
	ctx := context.Background()
	author := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)
	svc := NewService(db)

	for i := 0; i < 6; i++ {
		u := testutils.CreateTestUser(db)
		if i%2 == 0 {
			_, err := svc.ToggleLike(ctx, u.ID, q.ID)
			require.NoError(t, err)
		} else {
			_, err := svc.ToggleDislike(ctx, u.ID, q.ID)
			require.NoError(t, err)
		}
		if i%3 == 0 {
			_, err := svc.ToggleDislike(ctx, u.ID, q.ID)
			require.NoError(t, err)
		}

		state, err := svc.VoteState(ctx, u.ID, q.ID)
		require.NoError(t, err)
		assert.False(t, state.Liked && state.Disliked, "user %d is in both sets", u.ID)
	}

	assertCountersMatchMembership(t, db, q.ID)
}

func TestToggle_QuestionNotFound(t *testing.T) {
	db := testutils.SetupTestDB(t)
	voter := testutils.CreateTestUser(db)
	svc := NewService(db)

	_, err := svc.ToggleLike(context.Background(), voter.ID, 9999)
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = svc.ToggleDislike(context.Background(), voter.ID, 9999)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestVoteState_Anonymous(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewService(db)

	state, err := svc.VoteState(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, State{}, state)
}
