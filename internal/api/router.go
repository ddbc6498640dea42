package api

import (
	"net/http"
	"time"

	"blogapi/internal/api/handler"
	"blogapi/internal/api/middleware"
	"blogapi/internal/app/service"
	"blogapi/internal/common/security"
	"blogapi/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	postService *service.PostService,
	tokens security.TokenRevoker,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Parses the access_token cookie on every request and parks the result in
	// the context. Only routes behind Authenticator act on failures, so public
	// reads are unaffected by a stale cookie.
	r.Use(jwtauth.Verify(security.TokenAuth, security.TokenFromCookie))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		api.Route("/auth", authHandler.RegisterRoutes)

		postHandler := handler.NewPostHandler(postService, middleware.Authenticator(tokens))
		api.Route("/posts", postHandler.RegisterRoutes)

		uploadHandler := handler.NewUploadHandler(config.AppConfig.UploadDir)
		api.Post("/upload", uploadHandler.Upload)
	})

	// Uploaded assets are served statically, same as the client expects.
	uploadServer := http.StripPrefix("/upload/", http.FileServer(http.Dir(config.AppConfig.UploadDir)))
	r.Get("/upload/*", uploadServer.ServeHTTP)

	return r
}
