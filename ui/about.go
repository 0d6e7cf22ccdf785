package ui

import (
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// handleAbout renders the methodology page from the embedded markdown source
func (a *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	src, err := embeddedFiles.ReadFile("static/about.md")
	if err != nil {
		a.logger.Error("about page missing: %v", err)
		http.Error(w, "about page unavailable", http.StatusInternalServerError)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	rendered := markdown.ToHTML(src, p, renderer)

	a.renderTemplate(w, "about.html", map[string]interface{}{
		"Title":   "About",
		"Content": template.HTML(rendered),
	})
}
