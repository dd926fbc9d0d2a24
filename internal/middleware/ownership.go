package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yukikurage/qa-forum/internal/errors"
	"github.com/yukikurage/qa-forum/internal/permissions"
)

// OwnerDeniedURL is where non-owners are sent by RequireOwner
const OwnerDeniedURL = "/"

// RequireOwner lets the request through only when the current user owns the
// resource named by the URL parameter. Unknown ids render 404, anyone else
// is redirected before the handler runs.
func RequireOwner(guard *permissions.Guard, kind permissions.Kind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			apperrors.NotFound(c)
			c.Abort()
			return
		}

		ok, err := guard.CanEdit(CurrentActor(c), kind, id)
		if err != nil {
			if errors.Is(err, permissions.ErrResourceNotFound) {
				apperrors.NotFound(c)
			} else {
				apperrors.InternalError(c, err)
			}
			c.Abort()
			return
		}
		if !ok {
			c.Redirect(http.StatusFound, OwnerDeniedURL)
			c.Abort()
			return
		}

		c.Next()
	}
}
