// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	bannersfeature "github.com/dalemusser/waygo/internal/app/features/banners"
	blogsfeature "github.com/dalemusser/waygo/internal/app/features/blogs"
	busesfeature "github.com/dalemusser/waygo/internal/app/features/buses"
	couponsfeature "github.com/dalemusser/waygo/internal/app/features/coupons"
	healthfeature "github.com/dalemusser/waygo/internal/app/features/health"
	homefeature "github.com/dalemusser/waygo/internal/app/features/home"
	logoutfeature "github.com/dalemusser/waygo/internal/app/features/logout"
	paymentsfeature "github.com/dalemusser/waygo/internal/app/features/payments"
	usersfeature "github.com/dalemusser/waygo/internal/app/features/users"
	bannerstore "github.com/dalemusser/waygo/internal/app/store/banners"
	blogstore "github.com/dalemusser/waygo/internal/app/store/blogs"
	busstore "github.com/dalemusser/waygo/internal/app/store/buses"
	couponstore "github.com/dalemusser/waygo/internal/app/store/coupons"
	paymentstore "github.com/dalemusser/waygo/internal/app/store/payments"
	userstore "github.com/dalemusser/waygo/internal/app/store/users"
	"github.com/dalemusser/waygo/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// routerDeps is everything the router needs. Stores are interfaces so tests
// can build the full route table without a database.
type routerDeps struct {
	Users    usersfeature.Store
	Buses    busesfeature.Store
	Banners  bannersfeature.Store
	Blogs    blogsfeature.Store
	Coupons  couponsfeature.Store
	Payments paymentsfeature.Store
	Pinger   healthfeature.Pinger

	// WriteLimiter throttles mutating requests; nil disables throttling.
	WriteLimiter *ratelimit.Limiter

	AppCfg     AppConfig
	Production bool
	Logger     *zap.Logger
}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. One store per collection is built on
// the shared database handle and injected into its feature handler.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.WayGOMongoDatabase

	var limiter *ratelimit.Limiter
	if appCfg.WriteRateLimit > 0 {
		limiter = ratelimit.New(appCfg.WriteRateLimit, appCfg.WriteRateWindow)
	}

	return newRouter(routerDeps{
		Users:        userstore.New(db),
		Buses:        busstore.New(db),
		Banners:      bannerstore.New(db),
		Blogs:        blogstore.New(db),
		Coupons:      couponstore.New(db),
		Payments:     paymentstore.New(db),
		Pinger:       deps.WayGOMongoClient,
		WriteLimiter: limiter,
		AppCfg:       appCfg,
		Production:   coreCfg.Env == "prod",
		Logger:       logger,
	}), nil
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AppCfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(ratelimit.Writes(d.WriteLimiter, d.Logger))

	// Liveness.
	r.Mount("/", homefeature.Routes(homefeature.NewHandler(d.Logger)))
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(d.Pinger, d.Logger)))

	// Users, plus the legacy upsert that lives outside the /users prefix.
	usersHandler := usersfeature.NewHandler(d.Users, d.Logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))
	r.Put("/user", usersHandler.ServeUpsert)
	if !d.Production {
		r.Get("/test/users", usersHandler.ServeDebugList)
	}

	// Buses and route search.
	busesHandler := busesfeature.NewHandler(d.Buses, d.AppCfg.BusReverseBlock, d.Logger)
	r.Mount("/allbus", busesfeature.Routes(busesHandler))
	r.Get("/searchbus", busesHandler.ServeSearch)
	r.Post("/addbus", busesHandler.ServeAdd)

	// Content.
	r.Mount("/banners", bannersfeature.Routes(bannersfeature.NewHandler(d.Banners, d.Logger)))
	r.Mount("/blogs", blogsfeature.Routes(blogsfeature.NewHandler(d.Blogs, d.Logger)))

	// Commerce.
	r.Mount("/coupons", couponsfeature.Routes(couponsfeature.NewHandler(d.Coupons, d.Logger)))
	paymentsHandler := paymentsfeature.NewHandler(d.Payments, d.Logger)
	r.Mount("/payments", paymentsfeature.Routes(paymentsHandler))
	r.Post("/create-payment-intent", paymentsHandler.ServeCreateIntent)

	// Session.
	logoutHandler := logoutfeature.NewHandler(d.AppCfg.CookieName, []byte(d.AppCfg.CookieKey), d.Production, d.Logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	return r
}
