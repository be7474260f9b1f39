package admin

import (
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The media library, plugin registry and settings blob back the
// dashboard pages but are deliberately non-functional beyond the
// dashboard itself: uploads are catalogued, never stored to disk, and
// plugins never execute.

type mediaFile struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type plugin struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Enabled     bool   `json:"enabled"`
}

var mockMu sync.Mutex

func defaultPlugins() []plugin {
	return []plugin{
		{ID: "neon-seo", Name: "Neon SEO", Description: "Meta tags and sitemap generation", Version: "1.2.0", Enabled: true},
		{ID: "glitch-gallery", Name: "Glitch Gallery", Description: "Image galleries with glitch transitions", Version: "0.9.4", Enabled: false},
		{ID: "holo-forms", Name: "Holo Forms", Description: "Contact form builder", Version: "2.0.1", Enabled: false},
	}
}

func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"siteTitle":       "NeonPulse",
		"tagline":         "Dispatches from the neon grid",
		"postsPerPage":    10,
		"commentsEnabled": true,
	}
}

func (a *AdminModule) listMedia(c *gin.Context) {
	mockMu.Lock()
	defer mockMu.Unlock()

	if a.media == nil {
		a.media = []mediaFile{}
	}
	c.JSON(http.StatusOK, a.media)
}

func (a *AdminModule) uploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file provided"})
		return
	}

	id := uuid.New().String()
	entry := mediaFile{
		ID:         id,
		Filename:   file.Filename,
		Size:       file.Size,
		URL:        "/media/" + id + filepath.Ext(file.Filename),
		UploadedAt: time.Now(),
	}

	mockMu.Lock()
	a.media = append(a.media, entry)
	mockMu.Unlock()

	c.JSON(http.StatusCreated, entry)
}

func (a *AdminModule) deleteMedia(c *gin.Context) {
	id := c.Param("id")

	mockMu.Lock()
	defer mockMu.Unlock()

	for i, entry := range a.media {
		if entry.ID == id {
			a.media = append(a.media[:i], a.media[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Media not found"})
}

func (a *AdminModule) listPlugins(c *gin.Context) {
	mockMu.Lock()
	defer mockMu.Unlock()

	c.JSON(http.StatusOK, a.plugins)
}

func (a *AdminModule) togglePlugin(c *gin.Context) {
	id := c.Param("id")

	mockMu.Lock()
	defer mockMu.Unlock()

	for i := range a.plugins {
		if a.plugins[i].ID == id {
			a.plugins[i].Enabled = !a.plugins[i].Enabled
			c.JSON(http.StatusOK, a.plugins[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Plugin not found"})
}

func (a *AdminModule) getSettings(c *gin.Context) {
	mockMu.Lock()
	defer mockMu.Unlock()

	c.JSON(http.StatusOK, a.settings)
}

func (a *AdminModule) updateSettings(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	mockMu.Lock()
	defer mockMu.Unlock()

	for key, value := range updates {
		a.settings[key] = value
	}
	c.JSON(http.StatusOK, a.settings)
}
