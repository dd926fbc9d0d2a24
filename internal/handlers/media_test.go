package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaHandler_Serve(t *testing.T) {
	app := newTestApp(t)
	c := app.anonymous()

	w := c.get("/media/avatars/default.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default", w.Body.String())

	assert.Equal(t, http.StatusNotFound, c.get("/media/avatars/missing.png").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/media/avatars").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/media/../../etc/passwd").Code)
}

func TestHealthHandler_Check(t *testing.T) {
	app := newTestApp(t)

	w := app.anonymous().get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
