package responses

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/angelmondragon/shopcart/pkg/logger"
)

// WriteHTML executes the named template into a buffer first so a template
// failure still yields a clean 500 instead of a half-written page.
func WriteHTML(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		if logg != nil {
			logg.Error(logg.WithField(ctx, "template", name), "template.render_failed", err)
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Redirect answers a form post with 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
