package goslots_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	goslots "github.com/goliatone/go-slots"
)

func testEngine(t *testing.T) *goslots.Engine {
	t.Helper()
	eng, err := goslots.New()
	require.NoError(t, err, "build engine")
	require.NoError(t, eng.Register(goslots.Definition{
		Name:   "pages/home",
		Source: "<h1>{{ title }}</h1>",
	}))
	return eng
}

func TestHTMLRenderServesComponents(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.HTMLRender = goslots.NewHTMLRender(testEngine(t))
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "pages/home", gin.H{"title": "Home"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "<h1>Home</h1>", w.Body.String())
}

func TestHTMLRenderAcceptsNilData(t *testing.T) {
	gin.SetMode(gin.TestMode)

	eng, err := goslots.New()
	require.NoError(t, err)
	require.NoError(t, eng.Register(goslots.Definition{Name: "static", Source: "ok"}))

	r := gin.New()
	r.HTMLRender = goslots.NewHTMLRender(eng)
	r.GET("/static", func(c *gin.Context) {
		c.HTML(http.StatusOK, "static", nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestHTMLRenderRejectsNonMapData(t *testing.T) {
	gin.SetMode(gin.TestMode)

	render := goslots.NewHTMLRender(testEngine(t)).Instance("pages/home", []string{"nope"})

	w := httptest.NewRecorder()
	err := render.Render(w)
	require.Error(t, err)
	require.Contains(t, err.Error(), "string-keyed map")
}
