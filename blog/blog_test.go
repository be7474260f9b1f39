package blog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"neonpulse/cache"
	"neonpulse/models"
	"neonpulse/storage"
)

func newTestServer(t *testing.T) (*gin.Engine, *storage.MemStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemStorage()
	router := gin.New()
	NewBlogModule(store, cache.NewStore(time.Minute)).RegisterRoutes(router)

	return router, store
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedPost(store *storage.MemStorage, title, slug string) *models.Post {
	return store.CreatePost(models.Post{
		Title:      title,
		Content:    "<p>body</p>",
		Slug:       slug,
		Status:     models.StatusPublished,
		Visibility: models.VisibilityPublic,
		AuthorID:   1,
	})
}

func TestListPosts(t *testing.T) {
	router, store := newTestServer(t)
	seedPost(store, "One", "one")
	seedPost(store, "Two", "two")

	w := get(router, "/api/posts")
	assert.Equal(t, http.StatusOK, w.Code)

	var posts []models.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	assert.Len(t, posts, 2)
	assert.Equal(t, "One", posts[0].Title)
}

func TestGetPost(t *testing.T) {
	router, store := newTestServer(t)
	post := seedPost(store, "One", "one")

	w := get(router, fmt.Sprintf("/api/posts/%d", post.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/posts/999").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/posts/abc").Code)
}

func TestGetPostBySlug_CountsViews(t *testing.T) {
	router, store := newTestServer(t)
	post := seedPost(store, "Counted", "counted")

	for i := 1; i <= 3; i++ {
		w := get(router, "/api/posts/slug/counted")
		assert.Equal(t, http.StatusOK, w.Code)

		var got models.Post
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, i, got.Views, "each fetch counts exactly one view")
	}

	assert.Equal(t, 3, store.GetPost(post.ID).Views)
	assert.Equal(t, 3, store.GetStats().TotalViews)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/posts/slug/missing").Code)
	assert.Equal(t, 3, store.GetStats().TotalViews, "a miss counts nothing")
}

func TestListComments_OnlyApproved(t *testing.T) {
	router, store := newTestServer(t)
	post := seedPost(store, "P", "p")

	pending := store.CreateComment("hidden", "a", "a@b.c", post.ID)
	visible := store.CreateComment("shown", "b", "b@b.c", post.ID)
	store.ApproveComment(visible.ID)

	w := get(router, fmt.Sprintf("/api/posts/%d/comments", post.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	var comments []models.Comment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Len(t, comments, 1)
	assert.Equal(t, "shown", comments[0].Content)

	// Moderation makes the pending comment appear.
	store.ApproveComment(pending.ID)
	w = get(router, fmt.Sprintf("/api/posts/%d/comments", post.ID))
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Len(t, comments, 2)
}

func TestListComments_EmptyIsArray(t *testing.T) {
	router, store := newTestServer(t)
	post := seedPost(store, "P", "p")

	w := get(router, fmt.Sprintf("/api/posts/%d/comments", post.ID))
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestCreateComment(t *testing.T) {
	router, store := newTestServer(t)
	post := seedPost(store, "P", "p")

	w := postJSON(router, fmt.Sprintf("/api/posts/%d/comments", post.ID),
		`{"content":"nice","author":"Riko","email":"riko@night.city"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var comment models.Comment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	assert.False(t, comment.Approved, "new comments start unmoderated")

	w = postJSON(router, "/api/posts/999/comments",
		`{"content":"nice","author":"Riko","email":"riko@night.city"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postJSON(router, fmt.Sprintf("/api/posts/%d/comments", post.ID),
		`{"content":"nice","author":"Riko","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPostCategoriesAndTags(t *testing.T) {
	router, store := newTestServer(t)
	post := seedPost(store, "P", "p")
	category := store.CreateCategory("Netrunning", "netrunning")
	tag := store.CreateTag("neon", "neon")
	store.AddCategoryToPost(post.ID, category.ID)
	store.AddTagToPost(post.ID, tag.ID)

	w := get(router, fmt.Sprintf("/api/posts/%d/categories", post.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Netrunning")

	w = get(router, fmt.Sprintf("/api/posts/%d/tags", post.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "neon")
}

func TestListAdverts_EnabledOnly(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/api/adverts")
	assert.Equal(t, http.StatusOK, w.Code)

	var adverts []models.Advert
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &adverts))
	assert.Len(t, adverts, 2, "the seeded footer slot is disabled")
	for _, advert := range adverts {
		assert.True(t, advert.Enabled)
	}
}

func TestActiveTheme(t *testing.T) {
	router, store := newTestServer(t)

	w := get(router, "/api/theme")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Neon City")

	store.DeleteTheme(store.GetActiveTheme().ID)

	// The cached middleware would serve the stale body; hit a fresh
	// router to observe the store state.
	fresh := gin.New()
	NewBlogModule(store, cache.NewStore(time.Minute)).RegisterRoutes(fresh)
	w = get(fresh, "/api/theme")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No active theme found")
}

func TestCachedListEndpoints(t *testing.T) {
	router, _ := newTestServer(t)

	w := get(router, "/api/categories")
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))

	w = get(router, "/api/categories")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	// Slug reads must never come from cache: view counts depend on the
	// handler running.
	assert.Empty(t, get(router, "/api/posts/slug/none").Header().Get("X-Cache"))
}
