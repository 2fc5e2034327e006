package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopcart/api/controllers"
	cartcontrollers "github.com/angelmondragon/shopcart/api/controllers/cart"
	"github.com/angelmondragon/shopcart/api/controllers/pages"
	"github.com/angelmondragon/shopcart/api/middleware"
	"github.com/angelmondragon/shopcart/internal/cart"
	"github.com/angelmondragon/shopcart/pkg/config"
	"github.com/angelmondragon/shopcart/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	slotPinger controllers.Pinger,
	stores cartcontrollers.StoreProvider,
	products cartcontrollers.ProductLookup,
	pageHandlers *pages.Handlers,
	gatherer prometheus.Gatherer,
	requestObserver middleware.RequestObserver,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, requestObserver),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, slotPinger))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))
		r.Use(middleware.Locale(cfg.Cart.Locale))

		if pageHandlers != nil {
			r.Get("/", pageHandlers.Catalog)
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", pageHandlers.Cart)
				r.Post("/items", pageHandlers.AddToCart)
				r.Post("/items/{index}/{action}", pageHandlers.LineAction)
				r.Post("/clear", pageHandlers.Clear)
			})
			r.Route("/order", func(r chi.Router) {
				r.Get("/", pageHandlers.Order)
				r.Post("/", pageHandlers.Submit)
				r.Get("/summary", pageHandlers.OrderSummary)
			})
		}

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Use(middleware.CORS(cfg.CORS))
			r.Get("/", cartcontrollers.CartFetch(stores, logg))
			r.Post("/items", cartcontrollers.CartAddItem(stores, products, logg))
			r.Post("/items/{index}/increase", cartcontrollers.CartLineAction(stores, cart.ActionIncrease, logg))
			r.Post("/items/{index}/decrease", cartcontrollers.CartLineAction(stores, cart.ActionDecrease, logg))
			r.Post("/items/{index}/remove", cartcontrollers.CartLineAction(stores, cart.ActionRemove, logg))
			r.Post("/clear", cartcontrollers.CartClear(stores, logg))
			r.Get("/summary", cartcontrollers.CartSummary(stores, logg))
		})
	})

	return r
}
