package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"sync"

	"ignite-shop/internal/checkout"
	"ignite-shop/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed templates/styles.css
var styles string

// pageNames are the templates rendered inside the shared layout.
var pageNames = []string{"product", "home", "success"}

// loadTemplates parses the page templates and global styles exactly once per
// process; later calls return the same result. Each page gets its own set so
// the layout blocks it overrides do not clash.
var loadTemplates = sync.OnceValues(func() (map[string]*template.Template, error) {
	set := make(map[string]*template.Template, len(pageNames)+1)
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		set[name] = tmpl
	}
	fallback, err := template.ParseFS(templateFS, "templates/fallback.html")
	if err != nil {
		return nil, fmt.Errorf("parse fallback: %w", err)
	}
	set["fallback"] = fallback
	return set, nil
})

// Init performs the one-time template and style setup. It is safe to call
// more than once.
func Init() error {
	_, err := loadTemplates()
	return err
}

type productData struct {
	Styles         template.CSS
	Product        models.Product
	FailureMessage string
}

type successData struct {
	Styles    template.CSS
	SessionID string
}

type fallbackData struct {
	Styles  template.CSS
	DataURL string
}

// RenderProduct renders the static product page.
func RenderProduct(p models.Product) ([]byte, error) {
	return execute("product", productData{
		Styles:         template.CSS(styles),
		Product:        p,
		FailureMessage: checkout.FailureMessage,
	})
}

// RenderFallback renders the loading page served while the page for id is
// generated.
func RenderFallback(id string) ([]byte, error) {
	return execute("fallback", fallbackData{
		Styles:  template.CSS(styles),
		DataURL: DataPath(id),
	})
}

// RenderHome renders the landing page shoppers return to after cancelling
// a checkout.
func RenderHome() ([]byte, error) {
	return execute("home", struct{ Styles template.CSS }{template.CSS(styles)})
}

// RenderSuccess renders the page shoppers land on after paying.
func RenderSuccess(sessionID string) ([]byte, error) {
	return execute("success", successData{
		Styles:    template.CSS(styles),
		SessionID: sessionID,
	})
}

func execute(name string, data any) ([]byte, error) {
	set, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := set[name].ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// DataPath is the route of the JSON page data for id.
func DataPath(id string) string {
	return "/_data/product/" + url.PathEscape(id)
}
