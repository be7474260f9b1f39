package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neonpulse/models"
)

func newPost(title, slug string) models.Post {
	return models.Post{
		Title:      title,
		Content:    "<p>content</p>",
		Slug:       slug,
		Status:     models.StatusPublished,
		Visibility: models.VisibilityPublic,
		AuthorID:   1,
	}
}

func TestSeedData(t *testing.T) {
	s := NewMemStorage()

	admin := s.GetUserByUsername("admin")
	assert.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "admin", admin.Password, "seeded credential is plaintext until bootstrap migrates it")

	assert.Len(t, s.GetAllCategories(), 4)
	assert.Len(t, s.GetAllAdverts(), 3)

	theme := s.GetActiveTheme()
	assert.NotNil(t, theme)
	assert.Equal(t, "Neon City", theme.Name)

	stats := s.GetStats()
	assert.Equal(t, 1, stats.ID)
	assert.Equal(t, 0, stats.TotalViews)
}

func TestGetUserByUsername_CaseInsensitive(t *testing.T) {
	s := NewMemStorage()
	s.CreateUser("NightRunner", "secret", false)

	assert.NotNil(t, s.GetUserByUsername("nightrunner"))
	assert.NotNil(t, s.GetUserByUsername("NIGHTRUNNER"))
	assert.Nil(t, s.GetUserByUsername("dayrunner"))
}

func TestCreateUser_IdsNeverReused(t *testing.T) {
	s := NewMemStorage()

	first := s.CreateUser("one", "pw", false)
	second := s.CreateUser("two", "pw", false)
	assert.Greater(t, second.ID, first.ID)

	post := s.CreatePost(newPost("A", "a"))
	s.DeletePost(post.ID)
	next := s.CreatePost(newPost("B", "b"))
	assert.Greater(t, next.ID, post.ID)
}

func TestPostCRUD(t *testing.T) {
	s := NewMemStorage()

	post := s.CreatePost(newPost("Hello World", "hello-world"))
	assert.Equal(t, 0, post.Views)
	assert.False(t, post.CreatedAt.IsZero())

	assert.Equal(t, post.ID, s.GetPost(post.ID).ID)
	assert.Equal(t, post.ID, s.GetPostBySlug("hello-world").ID)
	assert.Nil(t, s.GetPost(999))
	assert.Nil(t, s.GetPostBySlug("missing"))

	title := "Updated"
	updated := s.UpdatePost(post.ID, models.PostPatch{Title: &title})
	assert.Equal(t, "Updated", updated.Title)
	assert.Equal(t, "hello-world", updated.Slug, "omitted fields are preserved")
	assert.True(t, updated.UpdatedAt.After(post.UpdatedAt) || updated.UpdatedAt.Equal(post.UpdatedAt))

	assert.Nil(t, s.UpdatePost(999, models.PostPatch{Title: &title}))

	assert.True(t, s.DeletePost(post.ID))
	assert.False(t, s.DeletePost(post.ID))
	assert.Nil(t, s.GetPost(post.ID))
}

func TestUpdatePost_ExplicitClear(t *testing.T) {
	s := NewMemStorage()
	post := s.CreatePost(models.Post{Title: "T", Content: "c", Excerpt: "e", Slug: "t"})

	empty := ""
	updated := s.UpdatePost(post.ID, models.PostPatch{Excerpt: &empty})
	assert.Equal(t, "", updated.Excerpt, "a provided zero value clears the field")
	assert.Equal(t, "T", updated.Title)
}

func TestGetAllPosts_InsertionOrder(t *testing.T) {
	s := NewMemStorage()
	s.CreatePost(newPost("First", "first"))
	s.CreatePost(newPost("Second", "second"))
	s.CreatePost(newPost("Third", "third"))

	posts := s.GetAllPosts()
	assert.Len(t, posts, 3)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Second", posts[1].Title)
	assert.Equal(t, "Third", posts[2].Title)
}

func TestGetPostsByAuthor(t *testing.T) {
	s := NewMemStorage()
	mine := newPost("Mine", "mine")
	mine.AuthorID = 7
	s.CreatePost(mine)
	s.CreatePost(newPost("Theirs", "theirs"))

	posts := s.GetPostsByAuthor(7)
	assert.Len(t, posts, 1)
	assert.Equal(t, "Mine", posts[0].Title)
}

func TestIncrementPostViews_Monotonic(t *testing.T) {
	s := NewMemStorage()
	post := s.CreatePost(newPost("Viewed", "viewed"))

	last := 0
	for i := 1; i <= 5; i++ {
		updated := s.IncrementPostViews(post.ID)
		assert.Equal(t, last+1, updated.Views)
		last = updated.Views
	}
	assert.Nil(t, s.IncrementPostViews(999))
}

func TestReturnedEntitiesAreSnapshots(t *testing.T) {
	s := NewMemStorage()
	post := s.CreatePost(newPost("Original", "original"))

	post.Title = "Mutated by caller"
	assert.Equal(t, "Original", s.GetPost(post.ID).Title)
}

func TestJoinSymmetry(t *testing.T) {
	s := NewMemStorage()
	post := s.CreatePost(newPost("P", "p"))
	category := s.CreateCategory("Netrunning", "netrunning")

	s.AddCategoryToPost(post.ID, category.ID)
	categories := s.GetCategoriesByPost(post.ID)
	assert.Len(t, categories, 1)
	assert.Equal(t, category.ID, categories[0].ID)

	assert.True(t, s.RemoveCategoryFromPost(post.ID, category.ID))
	assert.Empty(t, s.GetCategoriesByPost(post.ID))
	assert.False(t, s.RemoveCategoryFromPost(post.ID, category.ID))
}

func TestDuplicateJoinRowsAllowed(t *testing.T) {
	s := NewMemStorage()
	post := s.CreatePost(newPost("P", "p"))
	tag := s.CreateTag("neon", "neon")

	first := s.AddTagToPost(post.ID, tag.ID)
	second := s.AddTagToPost(post.ID, tag.ID)
	assert.NotEqual(t, first.ID, second.ID, "adds never deduplicate")

	// One remove drops one row; the second row keeps the link alive.
	assert.True(t, s.RemoveTagFromPost(post.ID, tag.ID))
	assert.Len(t, s.GetTagsByPost(post.ID), 1)
	assert.True(t, s.RemoveTagFromPost(post.ID, tag.ID))
	assert.Empty(t, s.GetTagsByPost(post.ID))
}

func TestDeletePost_NoCascade(t *testing.T) {
	s := NewMemStorage()
	post := s.CreatePost(newPost("P", "p"))
	category := s.CreateCategory("C", "c")
	s.AddCategoryToPost(post.ID, category.ID)
	comment := s.CreateComment("hi", "a", "a@b.c", post.ID)

	assert.True(t, s.DeletePost(post.ID))

	// Known boundary: join rows and comments dangle after the parent
	// post is gone.
	assert.Len(t, s.GetCategoriesByPost(post.ID), 1)
	assert.NotNil(t, s.GetComment(comment.ID))
}

func TestCommentModeration(t *testing.T) {
	s := NewMemStorage()
	post := s.CreatePost(newPost("P", "p"))

	comment := s.CreateComment("great post", "Riko", "riko@night.city", post.ID)
	assert.False(t, comment.Approved)

	approved := s.ApproveComment(comment.ID)
	assert.True(t, approved.Approved)

	// Approving again is a no-op, not a duplicate.
	again := s.ApproveComment(comment.ID)
	assert.True(t, again.Approved)
	assert.Len(t, s.GetCommentsByPost(post.ID), 1)

	assert.Nil(t, s.ApproveComment(999))
	assert.True(t, s.DeleteComment(comment.ID))
	assert.False(t, s.DeleteComment(comment.ID))
}

func TestThemeActivationInvariant(t *testing.T) {
	s := NewMemStorage()
	seeded := s.GetActiveTheme()
	assert.NotNil(t, seeded)

	second := s.CreateTheme(models.Theme{Name: "Chrome Dusk"})
	assert.False(t, second.IsActive)
	assert.Equal(t, seeded.ID, s.GetActiveTheme().ID)

	activated := s.ActivateTheme(second.ID)
	assert.True(t, activated.IsActive)
	assertAtMostOneActive(t, s)
	assert.False(t, s.GetTheme(seeded.ID).IsActive)

	// Re-activating the active theme is idempotent.
	s.ActivateTheme(second.ID)
	assertAtMostOneActive(t, s)
	assert.Equal(t, second.ID, s.GetActiveTheme().ID)

	assert.Nil(t, s.ActivateTheme(999))
}

func TestCreateTheme_ActiveDeactivatesOthers(t *testing.T) {
	s := NewMemStorage()
	seeded := s.GetActiveTheme()

	created := s.CreateTheme(models.Theme{Name: "Acid Rain", IsActive: true})
	assert.True(t, created.IsActive)
	assert.False(t, s.GetTheme(seeded.ID).IsActive)
	assertAtMostOneActive(t, s)
}

func TestDeleteActiveTheme_LeavesZeroActive(t *testing.T) {
	s := NewMemStorage()
	active := s.GetActiveTheme()

	// Documented boundary: the active theme is not protected from
	// deletion.
	assert.True(t, s.DeleteTheme(active.ID))
	assert.Nil(t, s.GetActiveTheme())
}

func assertAtMostOneActive(t *testing.T, s *MemStorage) {
	t.Helper()
	count := 0
	for _, theme := range s.GetAllThemes() {
		if theme.IsActive {
			count++
		}
	}
	assert.LessOrEqual(t, count, 1)
}

func TestStats(t *testing.T) {
	s := NewMemStorage()

	stats := s.IncrementViews(1)
	assert.Equal(t, 1, stats.TotalViews)
	stats = s.IncrementViews(1)
	assert.Equal(t, 2, stats.TotalViews)

	stats = s.UpdateAdRevenue(500)
	assert.Equal(t, 500, stats.TotalAdRevenue)

	// Negative amounts are accepted at this layer.
	stats = s.UpdateAdRevenue(-200)
	assert.Equal(t, 300, stats.TotalAdRevenue)
}

func TestCategoryAndTagCRUD(t *testing.T) {
	s := NewMemStorage()

	category := s.CreateCategory("Street Tech", "street-tech")
	name := "Street Technology"
	updated := s.UpdateCategory(category.ID, models.CategoryPatch{Name: &name})
	assert.Equal(t, "Street Technology", updated.Name)
	assert.Equal(t, "street-tech", updated.Slug)
	assert.Nil(t, s.UpdateCategory(999, models.CategoryPatch{}))
	assert.True(t, s.DeleteCategory(category.ID))
	assert.False(t, s.DeleteCategory(category.ID))

	tag := s.CreateTag("implants", "implants")
	slug := "chrome"
	assert.Equal(t, "chrome", s.UpdateTag(tag.ID, models.TagPatch{Slug: &slug}).Slug)
	assert.True(t, s.DeleteTag(tag.ID))
}

func TestAdvertCRUD(t *testing.T) {
	s := NewMemStorage()

	advert := s.CreateAdvert(models.Advert{
		Name:     "Takeover",
		Size:     "970x250",
		Code:     "<div>ad</div>",
		Enabled:  true,
		Position: models.PositionFooter,
	})

	enabled := false
	updated := s.UpdateAdvert(advert.ID, models.AdvertPatch{Enabled: &enabled})
	assert.False(t, updated.Enabled)
	assert.Equal(t, "Takeover", updated.Name)

	assert.Nil(t, s.UpdateAdvert(999, models.AdvertPatch{}))
	assert.True(t, s.DeleteAdvert(advert.ID))
}
