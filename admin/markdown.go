package admin

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// markdown renderer for the editor preview, configured with the GFM
// extension set
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		// On renderer failure, hand back the source so the preview
		// never blanks out.
		return content
	}
	return buf.String()
}

// previewPost renders editor markdown to the HTML the post would be
// published with.
func (a *AdminModule) previewPost(c *gin.Context) {
	var req struct {
		Markdown string `json:"markdown" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": renderMarkdown(req.Markdown)})
}
