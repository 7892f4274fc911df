package realtime

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/internal/config"
)

// PageTemplate is the name the interview page is rendered under.
const PageTemplate = "webrtc.html"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS returns the browser assets rooted at the static directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("realtime: static assets missing: %v", err))
	}
	return sub
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse realtime templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// NewPage builds the data for one page render. It refuses to build a page
// without a key, so a placeholder credential can never reach the browser.
func NewPage(cfg config.Config) (entities.RealtimePage, error) {
	key, err := cfg.RequireAPIKey()
	if err != nil {
		return entities.RealtimePage{}, err
	}
	return entities.RealtimePage{
		Model:        cfg.Model,
		Voice:        cfg.Voice,
		SilenceMS:    cfg.SilenceMS,
		ClientID:     uuid.New().String(),
		APIKey:       key,
		Instructions: cfg.Instructions,
	}, nil
}
