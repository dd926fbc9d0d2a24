package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/storage"
)

// MediaHandler serves uploaded files.
type MediaHandler struct {
	avatars *storage.AvatarStorage
}

func NewMediaHandler(avatars *storage.AvatarStorage) *MediaHandler {
	return &MediaHandler{avatars: avatars}
}

// Serve streams /media/*path from storage
func (h *MediaHandler) Serve(c *gin.Context) {
	f, info, err := h.avatars.Open(c.Param("path"))
	if err != nil {
		apperrors.NotFound(c)
		return
	}
	defer f.Close()

	c.Header("Cache-Control", "public, max-age=3600")
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
