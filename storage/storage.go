package storage

import (
	"github.com/gin-contrib/sessions"

	"neonpulse/models"
)

// Storage is the single authority over all domain entities. Every
// operation that targets a specific id returns nil (or false) when the
// record does not exist; absence is never an error.
type Storage interface {
	// Users
	GetUser(id int) *models.User
	GetUserByUsername(username string) *models.User
	CreateUser(username, password string, isAdmin bool) *models.User
	SetUserPassword(id int, password string) *models.User

	// Posts
	CreatePost(post models.Post) *models.Post
	GetPost(id int) *models.Post
	GetPostBySlug(slug string) *models.Post
	UpdatePost(id int, patch models.PostPatch) *models.Post
	DeletePost(id int) bool
	GetAllPosts() []models.Post
	GetPostsByAuthor(authorID int) []models.Post
	IncrementPostViews(id int) *models.Post

	// Categories
	CreateCategory(name, slug string) *models.Category
	GetCategory(id int) *models.Category
	GetAllCategories() []models.Category
	UpdateCategory(id int, patch models.CategoryPatch) *models.Category
	DeleteCategory(id int) bool

	// Tags
	CreateTag(name, slug string) *models.Tag
	GetTag(id int) *models.Tag
	GetAllTags() []models.Tag
	UpdateTag(id int, patch models.TagPatch) *models.Tag
	DeleteTag(id int) bool

	// Post-category relations
	AddCategoryToPost(postID, categoryID int) *models.PostCategory
	RemoveCategoryFromPost(postID, categoryID int) bool
	GetCategoriesByPost(postID int) []models.Category

	// Post-tag relations
	AddTagToPost(postID, tagID int) *models.PostTag
	RemoveTagFromPost(postID, tagID int) bool
	GetTagsByPost(postID int) []models.Tag

	// Comments
	CreateComment(content, author, email string, postID int) *models.Comment
	GetComment(id int) *models.Comment
	GetCommentsByPost(postID int) []models.Comment
	ApproveComment(id int) *models.Comment
	DeleteComment(id int) bool

	// Adverts
	CreateAdvert(advert models.Advert) *models.Advert
	GetAdvert(id int) *models.Advert
	GetAllAdverts() []models.Advert
	UpdateAdvert(id int, patch models.AdvertPatch) *models.Advert
	DeleteAdvert(id int) bool

	// Themes
	CreateTheme(theme models.Theme) *models.Theme
	GetTheme(id int) *models.Theme
	GetAllThemes() []models.Theme
	UpdateTheme(id int, patch models.ThemePatch) *models.Theme
	DeleteTheme(id int) bool
	ActivateTheme(id int) *models.Theme
	GetActiveTheme() *models.Theme

	// Stats
	GetStats() *models.Stats
	IncrementViews(count int) *models.Stats
	UpdateAdRevenue(amount int) *models.Stats

	// SessionStore backs the login sessions for the auth module.
	SessionStore() sessions.Store
}
