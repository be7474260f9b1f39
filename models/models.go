package models

import "time"

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // hash (or legacy plaintext before bootstrap); never exposed in API
	IsAdmin  bool   `json:"isAdmin"`
}

// Post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// Post visibilities
const (
	VisibilityPublic   = "public"
	VisibilityPrivate  = "private"
	VisibilityPassword = "password"
)

type Post struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"` // HTML from the editor
	Excerpt       string    `json:"excerpt"`
	Slug          string    `json:"slug"`
	FeaturedImage string    `json:"featuredImage"`
	Status        string    `json:"status"`
	Visibility    string    `json:"visibility"`
	AuthorID      int       `json:"authorId"`
	Views         int       `json:"views"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PostCategory struct {
	ID         int `json:"id"`
	PostID     int `json:"postId"`
	CategoryID int `json:"categoryId"`
}

type PostTag struct {
	ID     int `json:"id"`
	PostID int `json:"postId"`
	TagID  int `json:"tagId"`
}

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	PostID    int       `json:"postId"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// Advert positions
const (
	PositionSidebar = "sidebar"
	PositionContent = "content"
	PositionFooter  = "footer"
)

type Advert struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Size     string `json:"size"`
	Code     string `json:"code"` // raw HTML/script, rendered verbatim when enabled
	Enabled  bool   `json:"enabled"`
	Position string `json:"position"`
}

type Theme struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PreviewImage string `json:"previewImage"`
	IsActive     bool   `json:"isActive"`
}

// Stats is a singleton record (id is always 1). TotalAdRevenue is in cents.
type Stats struct {
	ID             int       `json:"id"`
	TotalViews     int       `json:"totalViews"`
	TotalAdRevenue int       `json:"totalAdRevenue"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
