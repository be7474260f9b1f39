package blog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"neonpulse/cache"
	"neonpulse/models"
	"neonpulse/storage"
)

// BlogModule serves the public JSON API consumed by the site frontend.
type BlogModule struct {
	store storage.Storage
	cache *cache.Store
}

func NewBlogModule(store storage.Storage, responseCache *cache.Store) *BlogModule {
	return &BlogModule{store: store, cache: responseCache}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		cached := b.cache.Middleware()

		api.GET("/posts", cached, b.listPosts)
		api.GET("/posts/:id", b.getPost)
		// Slug lookups bump the view counters, so they bypass the cache.
		api.GET("/posts/slug/:slug", b.getPostBySlug)
		api.GET("/posts/:id/comments", b.listComments)
		api.POST("/posts/:id/comments", b.createComment)
		api.GET("/posts/:id/categories", b.listPostCategories)
		api.GET("/posts/:id/tags", b.listPostTags)
		api.GET("/categories", cached, b.listCategories)
		api.GET("/tags", cached, b.listTags)
		api.GET("/adverts", b.listAdverts)
		api.GET("/theme", cached, b.activeTheme)
	}
}

func (b *BlogModule) listPosts(c *gin.Context) {
	c.JSON(http.StatusOK, b.store.GetAllPosts())
}

func (b *BlogModule) getPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
		return
	}

	post := b.store.GetPost(id)
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// getPostBySlug is the public single-post view: every hit counts one
// view on the post and one on the global stats record.
func (b *BlogModule) getPostBySlug(c *gin.Context) {
	post := b.store.GetPostBySlug(c.Param("slug"))
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	post = b.store.IncrementPostViews(post.ID)
	b.store.IncrementViews(1)

	c.JSON(http.StatusOK, post)
}

func (b *BlogModule) listComments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
		return
	}

	// Public reads only ever see moderated comments.
	approved := make([]models.Comment, 0)
	for _, comment := range b.store.GetCommentsByPost(id) {
		if comment.Approved {
			approved = append(approved, comment)
		}
	}
	c.JSON(http.StatusOK, approved)
}

func (b *BlogModule) createComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
		Author  string `json:"author" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	if b.store.GetPost(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	comment := b.store.CreateComment(req.Content, req.Author, req.Email, id)
	c.JSON(http.StatusCreated, comment)
}

func (b *BlogModule) listPostCategories(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
		return
	}
	c.JSON(http.StatusOK, b.store.GetCategoriesByPost(id))
}

func (b *BlogModule) listPostTags(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid post id"})
		return
	}
	c.JSON(http.StatusOK, b.store.GetTagsByPost(id))
}

func (b *BlogModule) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, b.store.GetAllCategories())
}

func (b *BlogModule) listTags(c *gin.Context) {
	c.JSON(http.StatusOK, b.store.GetAllTags())
}

// listAdverts only exposes enabled ad slots; their code is rendered
// verbatim by the frontend.
func (b *BlogModule) listAdverts(c *gin.Context) {
	enabled := make([]models.Advert, 0)
	for _, advert := range b.store.GetAllAdverts() {
		if advert.Enabled {
			enabled = append(enabled, advert)
		}
	}
	c.JSON(http.StatusOK, enabled)
}

func (b *BlogModule) activeTheme(c *gin.Context) {
	theme := b.store.GetActiveTheme()
	if theme == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No active theme found"})
		return
	}
	c.JSON(http.StatusOK, theme)
}
