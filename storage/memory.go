package storage

import (
	"crypto/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"

	"neonpulse/models"
)

// MemStorage keeps everything in process memory. Each entity lives in
// its own map keyed by id; ids are assigned from per-entity counters
// and never reused, so ascending id order is insertion order. A single
// RWMutex serializes access — the in-memory maps have exactly one
// writer path and callers only ever see copies.
type MemStorage struct {
	mu sync.RWMutex

	users          map[int]models.User
	posts          map[int]models.Post
	categories     map[int]models.Category
	tags           map[int]models.Tag
	postCategories map[int]models.PostCategory
	postTags       map[int]models.PostTag
	comments       map[int]models.Comment
	adverts        map[int]models.Advert
	themes         map[int]models.Theme
	stats          models.Stats

	userCounter         int
	postCounter         int
	categoryCounter     int
	tagCounter          int
	postCategoryCounter int
	postTagCounter      int
	commentCounter      int
	advertCounter       int
	themeCounter        int

	sessionStore sessions.Store
}

var _ Storage = (*MemStorage)(nil)

// NewMemStorage builds a store pre-seeded with the bootstrap data set:
// the admin account (plaintext credential, migrated to a hash by the
// auth module at startup), the starter categories, the default theme
// and the sample adverts. The session store key is random per process;
// sessions are as volatile as the rest of the state.
func NewMemStorage() *MemStorage {
	return NewMemStorageWithSessionKey(nil)
}

// NewMemStorageWithSessionKey is NewMemStorage with a caller-supplied
// key signing the session cookies, so a configured secret keeps cookies
// stable across processes. An empty key falls back to a random one.
func NewMemStorageWithSessionKey(key []byte) *MemStorage {
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("storage: cannot seed session key: " + err.Error())
		}
	}

	s := &MemStorage{
		users:          make(map[int]models.User),
		posts:          make(map[int]models.Post),
		categories:     make(map[int]models.Category),
		tags:           make(map[int]models.Tag),
		postCategories: make(map[int]models.PostCategory),
		postTags:       make(map[int]models.PostTag),
		comments:       make(map[int]models.Comment),
		adverts:        make(map[int]models.Advert),
		themes:         make(map[int]models.Theme),
		stats: models.Stats{
			ID:        1,
			UpdatedAt: time.Now(),
		},
		sessionStore: memstore.NewStore(key),
	}

	s.CreateUser("admin", "admin", true)

	s.CreateCategory("Cyberpunk", "cyberpunk")
	s.CreateCategory("Technology", "technology")
	s.CreateCategory("Future", "future")
	s.CreateCategory("AI", "ai")

	s.CreateTheme(models.Theme{
		Name:         "Neon City",
		Description:  "Default cyberpunk theme",
		PreviewImage: "https://images.unsplash.com/photo-1511447333015-45b65e60f6d5",
		IsActive:     true,
	})

	s.CreateAdvert(models.Advert{
		Name:     "Sidebar Ad",
		Size:     "300x250",
		Code:     "<script>console.log('Sidebar Ad');</script>",
		Enabled:  true,
		Position: models.PositionSidebar,
	})
	s.CreateAdvert(models.Advert{
		Name:     "In-content Ad",
		Size:     "728x90",
		Code:     "<script>console.log('In-content Ad');</script>",
		Enabled:  true,
		Position: models.PositionContent,
	})
	s.CreateAdvert(models.Advert{
		Name:     "Footer Ad",
		Size:     "970x250",
		Code:     "<script>console.log('Footer Ad');</script>",
		Enabled:  false,
		Position: models.PositionFooter,
	})

	return s
}

func (s *MemStorage) SessionStore() sessions.Store {
	return s.sessionStore
}

// ----- Users -----

func (s *MemStorage) GetUser(id int) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, ok := s.users[id]; ok {
		return &user
	}
	return nil
}

func (s *MemStorage) GetUserByUsername(username string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			u := user
			return &u
		}
	}
	return nil
}

func (s *MemStorage) CreateUser(username, password string, isAdmin bool) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userCounter++
	user := models.User{
		ID:       s.userCounter,
		Username: username,
		Password: password,
		IsAdmin:  isAdmin,
	}
	s.users[user.ID] = user
	return &user
}

func (s *MemStorage) SetUserPassword(id int, password string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil
	}
	user.Password = password
	s.users[id] = user
	return &user
}

// ----- Posts -----

func (s *MemStorage) CreatePost(post models.Post) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postCounter++
	now := time.Now()
	post.ID = s.postCounter
	post.Views = 0
	post.CreatedAt = now
	post.UpdatedAt = now
	s.posts[post.ID] = post
	return &post
}

func (s *MemStorage) GetPost(id int) *models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.posts[id]; ok {
		return &post
	}
	return nil
}

func (s *MemStorage) GetPostBySlug(slug string) *models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post.Slug == slug {
			p := post
			return &p
		}
	}
	return nil
}

func (s *MemStorage) UpdatePost(id int, patch models.PostPatch) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil
	}

	applyString(&post.Title, patch.Title)
	applyString(&post.Content, patch.Content)
	applyString(&post.Excerpt, patch.Excerpt)
	applyString(&post.Slug, patch.Slug)
	applyString(&post.FeaturedImage, patch.FeaturedImage)
	applyString(&post.Status, patch.Status)
	applyString(&post.Visibility, patch.Visibility)
	applyInt(&post.AuthorID, patch.AuthorID)
	post.UpdatedAt = time.Now()

	s.posts[id] = post
	return &post
}

func (s *MemStorage) DeletePost(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Join rows and comments are deliberately left behind; nothing
	// cascades at this layer.
	if _, ok := s.posts[id]; !ok {
		return false
	}
	delete(s.posts, id)
	return true
}

func (s *MemStorage) GetAllPosts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post)
	}
	sortByID(posts, func(p models.Post) int { return p.ID })
	return posts
}

func (s *MemStorage) GetPostsByAuthor(authorID int) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0)
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	sortByID(posts, func(p models.Post) int { return p.ID })
	return posts
}

func (s *MemStorage) IncrementPostViews(id int) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil
	}
	post.Views++
	s.posts[id] = post
	return &post
}

// ----- Categories -----

func (s *MemStorage) CreateCategory(name, slug string) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categoryCounter++
	category := models.Category{ID: s.categoryCounter, Name: name, Slug: slug}
	s.categories[category.ID] = category
	return &category
}

func (s *MemStorage) GetCategory(id int) *models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if category, ok := s.categories[id]; ok {
		return &category
	}
	return nil
}

func (s *MemStorage) GetAllCategories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sortByID(categories, func(c models.Category) int { return c.ID })
	return categories
}

func (s *MemStorage) UpdateCategory(id int, patch models.CategoryPatch) *models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil
	}
	applyString(&category.Name, patch.Name)
	applyString(&category.Slug, patch.Slug)
	s.categories[id] = category
	return &category
}

func (s *MemStorage) DeleteCategory(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false
	}
	delete(s.categories, id)
	return true
}

// ----- Tags -----

func (s *MemStorage) CreateTag(name, slug string) *models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tagCounter++
	tag := models.Tag{ID: s.tagCounter, Name: name, Slug: slug}
	s.tags[tag.ID] = tag
	return &tag
}

func (s *MemStorage) GetTag(id int) *models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if tag, ok := s.tags[id]; ok {
		return &tag
	}
	return nil
}

func (s *MemStorage) GetAllTags() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]models.Tag, 0, len(s.tags))
	for _, tag := range s.tags {
		tags = append(tags, tag)
	}
	sortByID(tags, func(t models.Tag) int { return t.ID })
	return tags
}

func (s *MemStorage) UpdateTag(id int, patch models.TagPatch) *models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag, ok := s.tags[id]
	if !ok {
		return nil
	}
	applyString(&tag.Name, patch.Name)
	applyString(&tag.Slug, patch.Slug)
	s.tags[id] = tag
	return &tag
}

func (s *MemStorage) DeleteTag(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tags[id]; !ok {
		return false
	}
	delete(s.tags, id)
	return true
}

// ----- Post-category relations -----

func (s *MemStorage) AddCategoryToPost(postID, categoryID int) *models.PostCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	// No idempotence check: adding the same pair twice yields two rows.
	s.postCategoryCounter++
	pc := models.PostCategory{ID: s.postCategoryCounter, PostID: postID, CategoryID: categoryID}
	s.postCategories[pc.ID] = pc
	return &pc
}

func (s *MemStorage) RemoveCategoryFromPost(postID, categoryID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, pc := range s.postCategories {
		if pc.PostID == postID && pc.CategoryID == categoryID {
			delete(s.postCategories, id)
			return true
		}
	}
	return false
}

func (s *MemStorage) GetCategoriesByPost(postID int) []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	linked := make(map[int]bool)
	for _, pc := range s.postCategories {
		if pc.PostID == postID {
			linked[pc.CategoryID] = true
		}
	}

	categories := make([]models.Category, 0)
	for _, category := range s.categories {
		if linked[category.ID] {
			categories = append(categories, category)
		}
	}
	sortByID(categories, func(c models.Category) int { return c.ID })
	return categories
}

// ----- Post-tag relations -----

func (s *MemStorage) AddTagToPost(postID, tagID int) *models.PostTag {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postTagCounter++
	pt := models.PostTag{ID: s.postTagCounter, PostID: postID, TagID: tagID}
	s.postTags[pt.ID] = pt
	return &pt
}

func (s *MemStorage) RemoveTagFromPost(postID, tagID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, pt := range s.postTags {
		if pt.PostID == postID && pt.TagID == tagID {
			delete(s.postTags, id)
			return true
		}
	}
	return false
}

func (s *MemStorage) GetTagsByPost(postID int) []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()

	linked := make(map[int]bool)
	for _, pt := range s.postTags {
		if pt.PostID == postID {
			linked[pt.TagID] = true
		}
	}

	tags := make([]models.Tag, 0)
	for _, tag := range s.tags {
		if linked[tag.ID] {
			tags = append(tags, tag)
		}
	}
	sortByID(tags, func(t models.Tag) int { return t.ID })
	return tags
}

// ----- Comments -----

func (s *MemStorage) CreateComment(content, author, email string, postID int) *models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commentCounter++
	comment := models.Comment{
		ID:        s.commentCounter,
		Content:   content,
		Author:    author,
		Email:     email,
		PostID:    postID,
		Approved:  false,
		CreatedAt: time.Now(),
	}
	s.comments[comment.ID] = comment
	return &comment
}

func (s *MemStorage) GetComment(id int) *models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if comment, ok := s.comments[id]; ok {
		return &comment
	}
	return nil
}

func (s *MemStorage) GetCommentsByPost(postID int) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]models.Comment, 0)
	for _, comment := range s.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sortByID(comments, func(c models.Comment) int { return c.ID })
	return comments
}

func (s *MemStorage) ApproveComment(id int) *models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil
	}
	comment.Approved = true
	s.comments[id] = comment
	return &comment
}

func (s *MemStorage) DeleteComment(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return false
	}
	delete(s.comments, id)
	return true
}

// ----- Adverts -----

func (s *MemStorage) CreateAdvert(advert models.Advert) *models.Advert {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.advertCounter++
	advert.ID = s.advertCounter
	s.adverts[advert.ID] = advert
	return &advert
}

func (s *MemStorage) GetAdvert(id int) *models.Advert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if advert, ok := s.adverts[id]; ok {
		return &advert
	}
	return nil
}

func (s *MemStorage) GetAllAdverts() []models.Advert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adverts := make([]models.Advert, 0, len(s.adverts))
	for _, advert := range s.adverts {
		adverts = append(adverts, advert)
	}
	sortByID(adverts, func(a models.Advert) int { return a.ID })
	return adverts
}

func (s *MemStorage) UpdateAdvert(id int, patch models.AdvertPatch) *models.Advert {
	s.mu.Lock()
	defer s.mu.Unlock()

	advert, ok := s.adverts[id]
	if !ok {
		return nil
	}
	applyString(&advert.Name, patch.Name)
	applyString(&advert.Size, patch.Size)
	applyString(&advert.Code, patch.Code)
	applyBool(&advert.Enabled, patch.Enabled)
	applyString(&advert.Position, patch.Position)
	s.adverts[id] = advert
	return &advert
}

func (s *MemStorage) DeleteAdvert(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.adverts[id]; !ok {
		return false
	}
	delete(s.adverts, id)
	return true
}

// ----- Themes -----

func (s *MemStorage) CreateTheme(theme models.Theme) *models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	if theme.IsActive {
		s.deactivateAllLocked()
	}

	s.themeCounter++
	theme.ID = s.themeCounter
	s.themes[theme.ID] = theme
	return &theme
}

func (s *MemStorage) GetTheme(id int) *models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if theme, ok := s.themes[id]; ok {
		return &theme
	}
	return nil
}

func (s *MemStorage) GetAllThemes() []models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	themes := make([]models.Theme, 0, len(s.themes))
	for _, theme := range s.themes {
		themes = append(themes, theme)
	}
	sortByID(themes, func(t models.Theme) int { return t.ID })
	return themes
}

func (s *MemStorage) UpdateTheme(id int, patch models.ThemePatch) *models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme, ok := s.themes[id]
	if !ok {
		return nil
	}
	applyString(&theme.Name, patch.Name)
	applyString(&theme.Description, patch.Description)
	applyString(&theme.PreviewImage, patch.PreviewImage)
	s.themes[id] = theme
	return &theme
}

// DeleteTheme does not protect the active theme; deleting it leaves
// the site with no active theme until another is activated.
func (s *MemStorage) DeleteTheme(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.themes[id]; !ok {
		return false
	}
	delete(s.themes, id)
	return true
}

func (s *MemStorage) ActivateTheme(id int) *models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	theme, ok := s.themes[id]
	if !ok {
		return nil
	}

	s.deactivateAllLocked()
	theme.IsActive = true
	s.themes[id] = theme
	return &theme
}

func (s *MemStorage) GetActiveTheme() *models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, theme := range s.themes {
		if theme.IsActive {
			t := theme
			return &t
		}
	}
	return nil
}

// deactivateAllLocked clears the active flag on every theme. Callers
// must hold the write lock.
func (s *MemStorage) deactivateAllLocked() {
	for id, theme := range s.themes {
		if theme.IsActive {
			theme.IsActive = false
			s.themes[id] = theme
		}
	}
}

// ----- Stats -----

func (s *MemStorage) GetStats() *models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := s.stats
	return &stats
}

func (s *MemStorage) IncrementViews(count int) *models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalViews += count
	s.stats.UpdatedAt = time.Now()
	stats := s.stats
	return &stats
}

// UpdateAdRevenue adds amount (cents) to the running total. Negative
// amounts are allowed; validation happens upstream.
func (s *MemStorage) UpdateAdRevenue(amount int) *models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalAdRevenue += amount
	s.stats.UpdatedAt = time.Now()
	stats := s.stats
	return &stats
}

// ----- helpers -----

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func sortByID[T any](items []T, id func(T) int) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]) < id(items[j])
	})
}
