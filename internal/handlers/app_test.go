package handlers

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum/internal/constants"
	"github.com/yukikurage/qa-forum/internal/storage"
	"github.com/yukikurage/qa-forum/internal/testutil"
	"github.com/yukikurage/qa-forum/web"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testApp drives the full router the way a browser would, one cookie jar per client.
type testApp struct {
	t      *testing.T
	db     *gorm.DB
	fs     afero.Fs
	router *gin.Engine
}

type client struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, constants.DefaultAvatar, []byte("default"), 0o644))

	router := NewRouter(Dependencies{
		DB:           db,
		SessionStore: cookie.NewStore([]byte("secret")),
		Avatars:      storage.NewAvatarStorageFs(fs),
		Templates:    web.MustTemplates(),
		BcryptCost:   bcrypt.MinCost,
	})

	return &testApp{t: t, db: db, fs: fs, router: router}
}

func (a *testApp) anonymous() *client {
	return &client{app: a, cookies: map[string]*http.Cookie{}}
}

// loggedIn registers username through the sign up form, which logs the user in.
func (a *testApp) loggedIn(username string) *client {
	a.t.Helper()
	c := a.anonymous()
	w := c.postForm("/register", url.Values{
		"username":  {username},
		"email":     {username + "@example.com"},
		"password1": {"supersecret"},
		"password2": {"supersecret"},
	})
	require.Equal(a.t, http.StatusSeeOther, w.Code, w.Body.String())
	return c
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.app.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postMultipart(path string, values url.Values, fileField, filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, vals := range values {
		for _, v := range vals {
			_ = mw.WriteField(key, v)
		}
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		require.NoError(c.app.t, err)
		_, err = io.Copy(part, bytes.NewReader(content))
		require.NoError(c.app.t, err)
	}
	require.NoError(c.app.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 200, 150))))
	return buf.Bytes()
}
