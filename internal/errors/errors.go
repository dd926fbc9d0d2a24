// Package errors renders the HTML error pages.
package errors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/dto"
	"github.com/yukikurage/qa-forum/internal/models"
)

const errorTemplate = "error.html"

// Page is the data of the error template
type Page struct {
	Status  int
	Title   string
	Message string
}

// Render writes the error page with the given status
func Render(c *gin.Context, status int, title, message string) {
	data := gin.H{
		"Title": title,
		"Query": "",
		"Error": Page{Status: status, Title: title, Message: message},
	}
	if v, ok := c.Get(constants.ContextKeyUser); ok {
		if user, ok := v.(*models.User); ok && user != nil {
			view := dto.ToUserView(*user)
			data["CurrentUser"] = &view
		}
	}
	c.HTML(status, errorTemplate, data)
}

// Helper functions for common error responses

// NotFound sends a 404 page
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "Not Found", "The requested page could not be found.")
}

// BadRequest sends a 400 page
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Render(c, http.StatusBadRequest, "Bad Request", message)
}

// InternalError logs err and sends a 500 page
func InternalError(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	_ = c.Error(err)
	Render(c, http.StatusInternalServerError, "Server Error", "Something went wrong. Please try again later.")
}
