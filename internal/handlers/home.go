package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/devGospel/jetstores/internal/catalog"
	"github.com/devGospel/jetstores/internal/models"
	"github.com/devGospel/jetstores/internal/session"
)

type HomeHandler struct {
	Sessions     *session.Manager
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Index renders the catalog with the active filter, search and sort, plus
// whichever overlay (login, register, login prompt, checkout) is open.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess, sid := browserSession(h.SessionStore, r)

	// Query params update the remembered view state so it can be reset
	// wholesale on login.
	q := r.URL.Query()
	if q.Has("category") {
		sess.Values[keyCategory] = q.Get("category")
	}
	if q.Has("q") {
		sess.Values[keyQuery] = q.Get("q")
	}
	if q.Has("sort") {
		sess.Values[keySort] = q.Get("sort")
	}
	category := sessionString(sess, keyCategory)
	query := sessionString(sess, keyQuery)
	sortOption := sessionString(sess, keySort)
	if sortOption == "" {
		sortOption = catalog.SortDefault
	}

	products := catalog.Sort(catalog.Filter(catalog.Products, category, query), sortOption)

	auth := h.Sessions.Current(r.Context(), sid)

	var selected *models.Product
	if id := selectedProductID(sess); id != 0 {
		selected = catalog.ByID(id)
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Products":        products,
		"Categories":      catalog.Categories(catalog.Products),
		"Category":        category,
		"Query":           query,
		"Sort":            sortOption,
		"SortOptions":     []string{catalog.SortDefault, catalog.SortPriceLowHigh, catalog.SortPriceHighLow, catalog.SortName},
		"IsAuthenticated": auth.IsAuthenticated,
		"User":            auth.User,
		"Overlay":         string(currentOverlay(sess)),
		"Selected":        selected,
		"Sellers":         h.Sessions.Sellers(sid),
		"Platforms":       []string{models.PlatformPaypal, models.PlatformFlutterwave},
		"Flashes":         GetFlash(sess),
		"CsrfField":       csrf.TemplateField(r),
	}
	sess.Save(r, w)
	tmpl.Execute(w, data)
}
