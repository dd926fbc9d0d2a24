package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum/internal/dto"
	"github.com/yukikurage/qa-forum/internal/middleware"
)

// render adds the data every page needs and executes the named template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.GetCurrentUser(c); ok {
		view := dto.ToUserView(*user)
		data["CurrentUser"] = &view
	}
	if _, ok := data["Query"]; !ok {
		data["Query"] = ""
	}

	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		messages := make([]string, 0, len(flashes))
		for _, f := range flashes {
			messages = append(messages, fmt.Sprint(f))
		}
		data["Flashes"] = messages
		_ = session.Save()
	}

	c.HTML(status, name, data)
}

// flash queues a message for the next rendered page.
func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// redirectAfterPost sends the client to location with 303 See Other.
func redirectAfterPost(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil
}

func questionURL(id uint64) string {
	return fmt.Sprintf("/questions/%d", id)
}

func userURL(id uint64) string {
	return fmt.Sprintf("/users/%d", id)
}
