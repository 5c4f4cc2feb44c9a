package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"math"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebrowser/internal/markup"
)

//go:embed templates/*.html
var templateFS embed.FS

const baseTemplate = "base.html"

// Renderer executes page templates inside the shared base layout. Pages are
// parsed once at construction.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"sanitize": markup.Sanitize,
	"round": func(f float64) int {
		return int(math.Round(f))
	},
	"amount": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
}

// NewRenderer creates a new template renderer
func NewRenderer() (*Renderer, error) {
	paths, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, p := range paths {
		name := path.Base(p)
		if name == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+baseTemplate, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the base layout
func (r *Renderer) Render(c *gin.Context, status int, name string, data interface{}) {
	tmpl, ok := r.pages[name]
	if !ok {
		slog.Error("unknown template", "component", "web", "template", name)
		c.String(http.StatusInternalServerError, "Could not load template")
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, baseTemplate, data); err != nil {
		slog.Error("failed to render template", "component", "web", "template", name, "error", err)
		c.String(http.StatusInternalServerError, "Could not render template")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
