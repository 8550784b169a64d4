package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/service"
	"github.com/jotterlabs/jotter/internal/blog/store"
	"github.com/jotterlabs/jotter/pkg/httpx"
	"github.com/jotterlabs/jotter/pkg/jwtx"
	"github.com/jotterlabs/jotter/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	AccountService *service.AccountService
	ProfileService *service.ProfileService
	PostService    *service.PostService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerPosts()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Public endpoints get strict per-IP limits (brute force prevention).
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	changeHandler := &ChangePasswordHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/change-password",
		httpx.Chain(changeHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{
		ProfileService: r.ProfileService,
		AccountService: r.AccountService,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /v1/auth/profile", secured(h.HandleGet))
	r.Mux.Handle("PUT /v1/auth/profile", secured(h.HandlePut))
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService}

	read := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		)
	}
	write := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/posts", read(h.HandleList))
	r.Mux.Handle("POST /v1/posts", write(h.HandleCreate))
	r.Mux.Handle("GET /v1/posts/{id}", read(h.HandleGet))
	r.Mux.Handle("PUT /v1/posts/{id}", write(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/posts/{id}", write(h.HandleDelete))
	r.Mux.Handle("GET /v1/my-posts", read(h.HandleListMine))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
