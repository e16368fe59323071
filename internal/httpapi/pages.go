package httpapi

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"timesheet-web/internal/nav"
	"timesheet-web/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const shellTemplate = "shell.tmpl"

// Templates returns the page templates for gin.Engine.SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

type bootstrap struct {
	Session sessionView `json:"session"`
	Nav     []nav.Group `json:"nav"`
}

// Page serves the SPA shell for a route, seeded with the session and the
// menu the caller may see.
func (h Handlers) Page(title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := session.FromGin(c)
		c.HTML(http.StatusOK, shellTemplate, gin.H{
			"Title": title,
			"Path":  c.Request.URL.Path,
			"Bootstrap": bootstrap{
				Session: viewOf(st),
				Nav:     nav.ForToken(st.Token),
			},
		})
	}
}
