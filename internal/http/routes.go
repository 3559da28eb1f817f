package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Accounts      *service.AccountService
	Sessions      *service.SessionService
	CourseModules *service.CourseModuleService
	BlogPosts     *service.BlogPostService

	AdminSecret  domainauth.AdminSecret
	CookieName   string
	CookieDomain string
	IsDev        bool
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router with browser detection.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authOpts := AuthMiddlewareOptions{
		Sessions:    services.Sessions,
		CookieName:  services.CookieName,
		AdminSecret: services.AdminSecret,
	}

	userHandlers := &UserHandlers{
		Svc:          services.Accounts,
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       services.Logger,
	}
	sessionHandlers := &SessionHandlers{
		Svc:          services.Sessions,
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
	}
	moduleHandlers := &CourseModuleHandlers{Svc: services.CourseModules}
	postHandlers := &BlogPostHandlers{Svc: services.BlogPosts}

	registerUserRoutes(mux, userHandlers, authOpts)
	registerSessionRoutes(mux, sessionHandlers, authOpts)
	registerCourseModuleRoutes(mux, moduleHandlers, authOpts)
	registerBlogPostRoutes(mux, postHandlers, authOpts)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return BrowserDetection()(mux)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, opts AuthMiddlewareOptions) {
	mux.HandleFunc("POST /api/users/register", h.Register)
	mux.HandleFunc("POST /api/users/login", h.Login)
	mux.Handle("POST /api/users/admin-login", RequireAdminSecret(opts)(http.HandlerFunc(h.AdminLogin)))
	mux.HandleFunc("POST /api/users/logout", h.Logout)
	mux.Handle("GET /api/users/me", RequireSession(opts)(http.HandlerFunc(h.Me)))
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers, opts AuthMiddlewareOptions) {
	adminOnly := RequireAdmin(opts)
	mux.Handle("POST /api/session/create", adminOnly(http.HandlerFunc(h.Create)))
	mux.HandleFunc("GET /api/session/get", h.Get)
	mux.HandleFunc("PUT /api/session/update", h.Update)
	mux.HandleFunc("DELETE /api/session/destroy", h.Destroy)
	mux.Handle("POST /api/session/cleanup", adminOnly(http.HandlerFunc(h.Cleanup)))
}

func registerCourseModuleRoutes(mux *http.ServeMux, h *CourseModuleHandlers, opts AuthMiddlewareOptions) {
	adminOnly := RequireAdmin(opts)
	mux.HandleFunc("GET /api/course-modules", h.List)
	mux.HandleFunc("GET /api/course-modules/{id}", h.GetByID)
	mux.Handle("POST /api/course-modules", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/course-modules/{id}", adminOnly(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/course-modules/{id}", adminOnly(http.HandlerFunc(h.Delete)))
}

func registerBlogPostRoutes(mux *http.ServeMux, h *BlogPostHandlers, opts AuthMiddlewareOptions) {
	withSession := RequireSession(opts)
	mux.HandleFunc("GET /api/blog-posts", h.List)
	mux.HandleFunc("GET /api/blog-posts/{id}", h.GetByID)
	mux.Handle("POST /api/blog-posts", withSession(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/blog-posts/{id}", withSession(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/blog-posts/{id}", withSession(http.HandlerFunc(h.Delete)))
}
