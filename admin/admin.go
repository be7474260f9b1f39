package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"neonpulse/auth"
	"neonpulse/cache"
	"neonpulse/common"
	"neonpulse/models"
	"neonpulse/storage"
)

const excerptLength = 160

// AdminModule serves the dashboard API. Every route requires an
// authenticated admin session.
type AdminModule struct {
	store storage.Storage
	cache *cache.Store

	media    []mediaFile
	plugins  []plugin
	settings map[string]interface{}
}

func NewAdminModule(store storage.Storage, responseCache *cache.Store) *AdminModule {
	return &AdminModule{
		store:    store,
		cache:    responseCache,
		plugins:  defaultPlugins(),
		settings: defaultSettings(),
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine, authModule *auth.AuthModule) {
	group := router.Group("/api/admin")
	group.Use(authModule.RequireAuth, authModule.RequireAdmin)
	{
		group.POST("/posts", a.createPost)
		group.PUT("/posts/:id", a.updatePost)
		group.DELETE("/posts/:id", a.deletePost)
		group.POST("/posts/preview", a.previewPost)

		group.POST("/categories", a.createCategory)
		group.PUT("/categories/:id", a.updateCategory)
		group.DELETE("/categories/:id", a.deleteCategory)

		group.POST("/tags", a.createTag)
		group.PUT("/tags/:id", a.updateTag)
		group.DELETE("/tags/:id", a.deleteTag)

		group.POST("/posts/:id/categories/:categoryId", a.addCategoryToPost)
		group.DELETE("/posts/:id/categories/:categoryId", a.removeCategoryFromPost)
		group.POST("/posts/:id/tags/:tagId", a.addTagToPost)
		group.DELETE("/posts/:id/tags/:tagId", a.removeTagFromPost)

		group.GET("/comments", a.listComments)
		group.PUT("/comments/:id/approve", a.approveComment)
		group.DELETE("/comments/:id", a.deleteComment)

		group.GET("/adverts", a.listAdverts)
		group.POST("/adverts", a.createAdvert)
		group.PUT("/adverts/:id", a.updateAdvert)
		group.DELETE("/adverts/:id", a.deleteAdvert)

		group.GET("/themes", a.listThemes)
		group.POST("/themes", a.createTheme)
		group.PUT("/themes/:id", a.updateTheme)
		group.PUT("/themes/:id/activate", a.activateTheme)
		group.DELETE("/themes/:id", a.deleteTheme)

		group.GET("/stats", a.stats)
		group.POST("/stats/revenue", a.updateRevenue)

		group.GET("/media", a.listMedia)
		group.POST("/media", a.uploadMedia)
		group.DELETE("/media/:id", a.deleteMedia)
		group.GET("/plugins", a.listPlugins)
		group.PUT("/plugins/:id/toggle", a.togglePlugin)
		group.GET("/settings", a.getSettings)
		group.PUT("/settings", a.updateSettings)
	}
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return 0, false
	}
	return id, true
}

// ----- Posts -----

type postRequest struct {
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content" binding:"required"`
	Excerpt       string `json:"excerpt"`
	Slug          string `json:"slug"`
	FeaturedImage string `json:"featuredImage"`
	Status        string `json:"status"`
	Visibility    string `json:"visibility"`
}

func (a *AdminModule) createPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	if req.Slug == "" {
		req.Slug = common.Slugify(req.Title)
	}
	if req.Excerpt == "" {
		req.Excerpt = common.Excerpt(req.Content, excerptLength)
	}
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if req.Visibility == "" {
		req.Visibility = models.VisibilityPublic
	}

	user := auth.CurrentUser(c)

	post := a.store.CreatePost(models.Post{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Slug:          req.Slug,
		FeaturedImage: req.FeaturedImage,
		Status:        req.Status,
		Visibility:    req.Visibility,
		AuthorID:      user.ID,
	})

	a.cache.Clear()
	c.JSON(http.StatusCreated, post)
}

func (a *AdminModule) updatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	// Re-derive slug and excerpt when their sources change without an
	// explicit override.
	if patch.Title != nil && patch.Slug == nil {
		slug := common.Slugify(*patch.Title)
		patch.Slug = &slug
	}
	if patch.Content != nil && patch.Excerpt == nil {
		excerpt := common.Excerpt(*patch.Content, excerptLength)
		patch.Excerpt = &excerpt
	}

	post := a.store.UpdatePost(id, patch)
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, post)
}

func (a *AdminModule) deletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !a.store.DeletePost(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// ----- Categories -----

type taxonomyRequest struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

func (a *AdminModule) createCategory(c *gin.Context) {
	var req taxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}
	if req.Slug == "" {
		req.Slug = common.Slugify(req.Name)
	}

	category := a.store.CreateCategory(req.Name, req.Slug)
	a.cache.Clear()
	c.JSON(http.StatusCreated, category)
}

func (a *AdminModule) updateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}
	if patch.Name != nil && patch.Slug == nil {
		slug := common.Slugify(*patch.Name)
		patch.Slug = &slug
	}

	category := a.store.UpdateCategory(id, patch)
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, category)
}

func (a *AdminModule) deleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !a.store.DeleteCategory(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// ----- Tags -----

func (a *AdminModule) createTag(c *gin.Context) {
	var req taxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}
	if req.Slug == "" {
		req.Slug = common.Slugify(req.Name)
	}

	tag := a.store.CreateTag(req.Name, req.Slug)
	a.cache.Clear()
	c.JSON(http.StatusCreated, tag)
}

func (a *AdminModule) updateTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.TagPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}
	if patch.Name != nil && patch.Slug == nil {
		slug := common.Slugify(*patch.Name)
		patch.Slug = &slug
	}

	tag := a.store.UpdateTag(id, patch)
	if tag == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tag not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, tag)
}

func (a *AdminModule) deleteTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !a.store.DeleteTag(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tag not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

// ----- Relations -----

func (a *AdminModule) addCategoryToPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}

	if a.store.GetPost(postID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if a.store.GetCategory(categoryID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}

	pc := a.store.AddCategoryToPost(postID, categoryID)
	c.JSON(http.StatusCreated, pc)
}

func (a *AdminModule) removeCategoryFromPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}

	if !a.store.RemoveCategoryFromPost(postID, categoryID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post-category relationship not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category removed from post successfully"})
}

func (a *AdminModule) addTagToPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	if a.store.GetPost(postID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	if a.store.GetTag(tagID) == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tag not found"})
		return
	}

	pt := a.store.AddTagToPost(postID, tagID)
	c.JSON(http.StatusCreated, pt)
}

func (a *AdminModule) removeTagFromPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	tagID, ok := pathID(c, "tagId")
	if !ok {
		return
	}

	if !a.store.RemoveTagFromPost(postID, tagID) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post-tag relationship not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag removed from post successfully"})
}

// ----- Comments -----

type moderatedComment struct {
	models.Comment
	PostTitle string `json:"postTitle"`
}

func (a *AdminModule) listComments(c *gin.Context) {
	all := make([]moderatedComment, 0)
	for _, post := range a.store.GetAllPosts() {
		for _, comment := range a.store.GetCommentsByPost(post.ID) {
			all = append(all, moderatedComment{Comment: comment, PostTitle: post.Title})
		}
	}
	c.JSON(http.StatusOK, all)
}

func (a *AdminModule) approveComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment := a.store.ApproveComment(id)
	if comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (a *AdminModule) deleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !a.store.DeleteComment(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// ----- Adverts -----

type advertRequest struct {
	Name     string `json:"name" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Enabled  bool   `json:"enabled"`
	Position string `json:"position" binding:"required,oneof=sidebar content footer"`
}

func (a *AdminModule) listAdverts(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.GetAllAdverts())
}

func (a *AdminModule) createAdvert(c *gin.Context) {
	var req advertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	advert := a.store.CreateAdvert(models.Advert{
		Name:     req.Name,
		Size:     req.Size,
		Code:     req.Code,
		Enabled:  req.Enabled,
		Position: req.Position,
	})
	c.JSON(http.StatusCreated, advert)
}

func (a *AdminModule) updateAdvert(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.AdvertPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	advert := a.store.UpdateAdvert(id, patch)
	if advert == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Advert not found"})
		return
	}
	c.JSON(http.StatusOK, advert)
}

func (a *AdminModule) deleteAdvert(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !a.store.DeleteAdvert(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Advert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Advert deleted successfully"})
}

// ----- Themes -----

type themeRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	PreviewImage string `json:"previewImage"`
}

func (a *AdminModule) listThemes(c *gin.Context) {
	c.JSON(http.StatusOK, a.store.GetAllThemes())
}

// createTheme always creates an inactive theme; activation is a
// separate, explicit transition.
func (a *AdminModule) createTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	theme := a.store.CreateTheme(models.Theme{
		Name:         req.Name,
		Description:  req.Description,
		PreviewImage: req.PreviewImage,
	})
	c.JSON(http.StatusCreated, theme)
}

func (a *AdminModule) updateTheme(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch models.ThemePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	theme := a.store.UpdateTheme(id, patch)
	if theme == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Theme not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, theme)
}

func (a *AdminModule) activateTheme(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	theme := a.store.ActivateTheme(id)
	if theme == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Theme not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, theme)
}

func (a *AdminModule) deleteTheme(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !a.store.DeleteTheme(id) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Theme not found"})
		return
	}

	a.cache.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Theme deleted successfully"})
}

// ----- Stats -----

func (a *AdminModule) stats(c *gin.Context) {
	stats := a.store.GetStats()
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Stats not found"})
		return
	}

	posts := a.store.GetAllPosts()
	totalComments := 0
	pendingComments := 0
	for _, post := range posts {
		for _, comment := range a.store.GetCommentsByPost(post.ID) {
			totalComments++
			if !comment.Approved {
				pendingComments++
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               stats.ID,
		"totalViews":       stats.TotalViews,
		"totalAdRevenue":   stats.TotalAdRevenue,
		"updatedAt":        stats.UpdatedAt,
		"totalPosts":       len(posts),
		"totalComments":    totalComments,
		"pendingComments":  pendingComments,
		"formattedRevenue": fmt.Sprintf("$%.2f", float64(stats.TotalAdRevenue)/100),
	})
}

func (a *AdminModule) updateRevenue(c *gin.Context) {
	var req struct {
		Amount *int `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Amount must be a number"})
		return
	}

	stats := a.store.UpdateAdRevenue(*req.Amount)
	c.JSON(http.StatusOK, stats)
}
