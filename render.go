package goslots

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin/render"
)

var _ render.HTMLRender = (*HTMLRender)(nil)

// HTMLRender plugs the engine into gin as its HTML renderer.
//
//	r := gin.New()
//	r.HTMLRender = goslots.NewHTMLRender(eng)
//	r.GET("/", func(c *gin.Context) {
//	    c.HTML(http.StatusOK, "pages/home", gin.H{"title": "Home"})
//	})
type HTMLRender struct {
	engine *Engine
}

// NewHTMLRender creates a gin HTML renderer backed by eng.
func NewHTMLRender(eng *Engine) *HTMLRender {
	return &HTMLRender{engine: eng}
}

// Instance returns a render.Render for one response.
func (h *HTMLRender) Instance(name string, data any) render.Render {
	return &Render{engine: h.engine, name: name, data: data}
}

// Render renders one component as an HTTP response body.
type Render struct {
	engine *Engine
	name   string
	data   any
}

// Render writes the rendered component to w.
func (r *Render) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	data, err := renderData(r.data)
	if err != nil {
		return err
	}
	return r.engine.Render(w, r.name, data)
}

// WriteContentType writes an HTML content type to the response header if not
// set.
func (r *Render) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{"text/html; charset=utf-8"}
	}
}

// renderData coerces the value gin hands to Instance into component data.
// gin.H and any other string-keyed map are accepted.
func renderData(data any) (map[string]any, error) {
	if data == nil {
		return nil, nil
	}
	if m, ok := data.(map[string]any); ok {
		return m, nil
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("goslots: render data must be a string-keyed map, got %T", data)
}
