package pages

import (
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"github.com/angelmondragon/shopcart/api/middleware"
	"github.com/angelmondragon/shopcart/api/responses"
	"github.com/angelmondragon/shopcart/api/validators"
	cartsvc "github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/internal/catalog"
)

const maxSearchLen = 100

type link struct {
	Label  string
	URL    string
	Active bool
}

type catalogPage struct {
	page
	Products   []catalog.Product
	Categories []link
	Sorts      []link
	Category   string
	Search     string
	Sort       string
	Dir        string
}

// catalogQuery is the filter state carried in the catalog URL.
type catalogQuery struct {
	category string
	search   string
	sort     catalog.SortField
	desc     bool
}

func parseCatalogQuery(r *http.Request) catalogQuery {
	q := r.URL.Query()
	category := validators.SanitizeString(q.Get("category"), 100)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	return catalogQuery{
		category: category,
		search:   validators.SanitizeString(q.Get("q"), maxSearchLen),
		sort:     catalog.ParseSortField(q.Get("sort")),
		desc:     strings.EqualFold(q.Get("dir"), "desc"),
	}
}

func (q catalogQuery) dir() string {
	if q.desc {
		return "desc"
	}
	return "asc"
}

// url renders q as a catalog link; empty values are left out.
func (q catalogQuery) url() string {
	v := url.Values{}
	if q.category != "" {
		v.Set("category", q.category)
	}
	if q.search != "" {
		v.Set("q", q.search)
	}
	if q.sort != catalog.SortNone {
		v.Set("sort", string(q.sort))
		v.Set("dir", q.dir())
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// Catalog renders the product list with add-to-cart forms. The category,
// q, sort and dir query parameters narrow and order the list; a second
// click on the active sort flips its direction.
func (h *Handlers) Catalog(w http.ResponseWriter, r *http.Request) {
	labels := middleware.LabelsFromContext(r.Context())
	q := parseCatalogQuery(r)

	data := catalogPage{
		page: h.page(r, labels.CatalogTitle, load(r, h.store(r))),
		Products: h.catalog.Filter(catalog.Query{
			Category:   q.category,
			Search:     q.search,
			Sort:       q.sort,
			Descending: q.desc,
			Language:   language.Make(labels.Locale),
		}),
		Category: q.category,
		Search:   q.search,
		Sort:     string(q.sort),
		Dir:      q.dir(),
	}

	all := q
	all.category = ""
	data.Categories = append(data.Categories, link{Label: labels.AllCategories, URL: all.url(), Active: q.category == ""})
	for _, c := range h.catalog.Categories() {
		next := q
		next.category = c
		data.Categories = append(data.Categories, link{Label: c, URL: next.url(), Active: q.category == c})
	}

	for _, s := range []struct {
		field catalog.SortField
		label string
	}{{catalog.SortPrice, labels.SortByPrice}, {catalog.SortName, labels.SortByName}} {
		next := q
		next.sort = s.field
		next.desc = q.sort == s.field && !q.desc
		data.Sorts = append(data.Sorts, link{Label: s.label, URL: next.url(), Active: q.sort == s.field})
	}

	responses.WriteHTML(r.Context(), h.logg, w, http.StatusOK, h.tmpl, "catalog.html", data)
}

// AddToCart adds one unit of the posted product and redirects back to the
// catalog with a notice.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.store(r)
	if store == nil {
		responses.Redirect(w, r, withNotice("/", NoticeSaveFailed))
		return
	}
	if err := r.ParseForm(); err != nil {
		responses.Redirect(w, r, withNotice("/", NoticeInvalid))
		return
	}

	name := validators.SanitizeString(r.PostFormValue("name"), 200)
	price, err := validators.ParseFormInt(r, "price", 0)
	if err != nil || price < 0 || price > cartsvc.MaxPrice {
		responses.Redirect(w, r, withNotice("/", NoticeInvalid))
		return
	}
	image := validators.SanitizeString(r.PostFormValue("image"), 2048)
	if p, ok := h.catalog.Lookup(name); ok {
		name, price, image = p.Name, p.Price, p.Image
	}

	if err := store.AddOrIncrement(ctx, name, price, image); err != nil {
		h.logg.Warn(h.logg.WithField(ctx, "product", name), "cart.add_failed")
		responses.Redirect(w, r, withNotice("/", noticeForError(err)))
		return
	}
	responses.Redirect(w, r, withNotice("/", NoticeAdded))
}
