package models

// Patch structs carry partial updates. A nil field means "not provided";
// a non-nil field always overwrites, even with a zero value. This keeps
// omission and explicit clearing distinguishable, unlike a naive merge.

type PostPatch struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	Slug          *string `json:"slug"`
	FeaturedImage *string `json:"featuredImage"`
	Status        *string `json:"status"`
	Visibility    *string `json:"visibility"`
	AuthorID      *int    `json:"authorId"`
}

type CategoryPatch struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type TagPatch struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type AdvertPatch struct {
	Name     *string `json:"name"`
	Size     *string `json:"size"`
	Code     *string `json:"code"`
	Enabled  *bool   `json:"enabled"`
	Position *string `json:"position"`
}

type ThemePatch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	PreviewImage *string `json:"previewImage"`
}
