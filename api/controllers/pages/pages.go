package pages

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/angelmondragon/shopcart/api/middleware"
	"github.com/angelmondragon/shopcart/internal/catalog"
	cartsvc "github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/pkg/config"
	pkgerrors "github.com/angelmondragon/shopcart/pkg/errors"
	"github.com/angelmondragon/shopcart/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Notices carried in the query string after a form post redirect.
const (
	NoticeAdded      = "added"
	NoticeSaveFailed = "save_failed"
	NoticeStale      = "stale"
	NoticeInvalid    = "invalid"
)

// StoreProvider resolves the cart store of a visitor session.
type StoreProvider interface {
	Store(sessionID string) *cartsvc.Store
}

// Deps wires the server-rendered pages.
type Deps struct {
	Stores   StoreProvider
	Catalog  *catalog.Catalog
	Order    config.OrderConfig
	Location *time.Location
	Logger   *logger.Logger
	Now      func() time.Time
}

// Handlers serves the catalog, cart and order pages.
type Handlers struct {
	stores  StoreProvider
	catalog *catalog.Catalog
	order   config.OrderConfig
	loc     *time.Location
	logg    *logger.Logger
	now     func() time.Time
	tmpl    *template.Template
}

func New(d Deps) (*Handlers, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"control":    func(l cartsvc.Labels, a cartsvc.Action) string { return l.ControlText(a) },
		"controlFor": controlFor,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	h := &Handlers{
		stores:  d.Stores,
		catalog: d.Catalog,
		order:   d.Order,
		loc:     d.Location,
		logg:    d.Logger,
		now:     d.Now,
		tmpl:    tmpl,
	}
	if h.loc == nil {
		h.loc = time.UTC
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.logg == nil {
		h.logg = logger.Nop()
	}
	return h, nil
}

type notice struct {
	Kind string
	Text string
}

type page struct {
	Labels    cartsvc.Labels
	Title     string
	Notice    *notice
	CartCount int
}

func (h *Handlers) page(r *http.Request, title string, c cartsvc.Cart) page {
	labels := middleware.LabelsFromContext(r.Context())
	return page{
		Labels:    labels,
		Title:     title,
		Notice:    noticeFor(r.URL.Query().Get("notice"), labels),
		CartCount: c.Count(),
	}
}

func noticeFor(code string, l cartsvc.Labels) *notice {
	switch code {
	case NoticeAdded:
		return &notice{Kind: "info", Text: l.ItemAdded}
	case NoticeSaveFailed:
		return &notice{Kind: "warning", Text: l.SaveFailed}
	case NoticeStale:
		return &notice{Kind: "info", Text: l.StaleLine}
	case NoticeInvalid:
		return &notice{Kind: "warning", Text: l.InvalidInput}
	}
	return nil
}

// store returns nil when the page has no cart collaborator; pages then
// render as if the cart were empty.
func (h *Handlers) store(r *http.Request) *cartsvc.Store {
	if h.stores == nil {
		return nil
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil
	}
	return h.stores.Store(sessionID)
}

func load(r *http.Request, store *cartsvc.Store) cartsvc.Cart {
	if store == nil {
		return cartsvc.Cart{}
	}
	return store.Load(r.Context())
}

// noticeForError maps a failed mutation onto the banner shown after redirect.
func noticeForError(err error) string {
	switch {
	case errors.Is(err, cartsvc.ErrLineNotFound):
		return NoticeStale
	case pkgerrors.HasCode(err, pkgerrors.CodeValidation):
		return NoticeInvalid
	}
	return NoticeSaveFailed
}

func withNotice(path, code string) string {
	if code == "" {
		return path
	}
	return path + "?notice=" + code
}

// lineControl is the model of one control form on a cart line.
type lineControl struct {
	Labels  cartsvc.Labels
	Binding cartsvc.Binding
	Name    string
}

// controlFor picks the line's control for action and errors when the line
// has none.
func controlFor(l cartsvc.Labels, line cartsvc.LineView, action string) (lineControl, error) {
	b, ok := line.Control(cartsvc.Action(action))
	if !ok {
		return lineControl{}, fmt.Errorf("line %d has no %q control", line.Position, action)
	}
	return lineControl{Labels: l, Binding: b, Name: line.Name}, nil
}
