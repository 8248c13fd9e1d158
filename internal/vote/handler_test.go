package vote

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jam721/VkWebHomework/internal/testutils"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func fakeAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func TestHandler_Like(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutils.SetupTestDB(t)
	author := testutils.CreateTestUser(db)
	voter := testutils.CreateTestUser(db)
	q := testutils.CreateTestQuestion(db, author.ID)

	r := gin.New()
	SetupVoteRoutes(r, db, fakeAuth(voter.ID))

	t.Run("form body", func(t *testing.T) {
		form := url.Values{"id": {strconv.Itoa(int(q.ID))}}
		req := httptest.NewRequest(http.MethodPost, "/like", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, 100, env.Code)
		assert.JSONEq(t, `{"liked":true,"total_likes":1,"total_dislikes":0}`, string(env.Data))
	})

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/dislike", strings.NewReader(`{"id":`+strconv.Itoa(int(q.ID))+`}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.JSONEq(t, `{"disliked":true,"total_likes":0,"total_dislikes":1}`, string(env.Data))
	})

	t.Run("missing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/like", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown question", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/like", strings.NewReader(`{"id":424242}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_RequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutils.SetupTestDB(t)

	r := gin.New()
	SetupVoteRoutes(r, db, fakeAuth(0))

	req := httptest.NewRequest(http.MethodPost, "/like", strings.NewReader(`{"id":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
