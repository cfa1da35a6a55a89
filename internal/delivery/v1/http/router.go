package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/storefront/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(
	catalogUC usecase.CatalogUC,
	checkoutUC usecase.CheckoutUC,
	sessions *usecase.SessionStore,
	requestTimeout time.Duration,
) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.router.Use(middleware.Timeout(requestTimeout))
	}

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, HealthResponse{
			Status:        "ok",
			CatalogLoaded: catalogUC.Peek() != nil,
			Sessions:      sessions.Len(),
		})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(SessionMiddleware(sessions))

		registerProductRoutes(v1, NewProductHandler(catalogUC, r.logger))
		registerCartRoutes(v1, NewCartHandler(catalogUC, r.logger))
		registerCheckoutRoutes(v1, NewCheckoutHandler(checkoutUC, r.logger))
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Get("/products", prHandler.getProducts)
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Get("/", cartHandler.getCart)
		cart.Put("/", cartHandler.setOrder)
		cart.Delete("/", cartHandler.clearCart)
		cart.Put("/{name}", cartHandler.setQuantity)
		cart.Post("/{name}/increment", cartHandler.increment)
		cart.Post("/{name}/decrement", cartHandler.decrement)
	})

	router.Delete("/notification", cartHandler.dismissNotification)
}

func registerCheckoutRoutes(router chi.Router, checkoutHandler *CheckoutHandler) {
	router.Post("/checkout", checkoutHandler.submit)
}
