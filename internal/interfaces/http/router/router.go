package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain function to the RouteRegistrar interface
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes implements RouteRegistrar
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// SectionGuards holds the access guards for the three portal sections.
// Each guard enforces the role scope of its section and redirects or
// rejects callers who do not qualify.
type SectionGuards struct {
	Portal     gin.HandlerFunc
	Admin      gin.HandlerFunc
	SuperAdmin gin.HandlerFunc
}

// Router manages HTTP route registration. Routes register into one of
// four sections: public (no session required), portal (any signed-in
// account), admin (branch admins) and superadmin (platform admins).
type Router struct {
	engine     *gin.Engine
	apiVersion string
	guards     SectionGuards

	public     []RouteRegistrar
	portal     []RouteRegistrar
	admin      []RouteRegistrar
	superadmin []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, guards SectionGuards, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		guards:     guards,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Public adds registrars for routes that need no session
func (r *Router) Public(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Portal adds registrars for routes open to any signed-in account
func (r *Router) Portal(registrars ...RouteRegistrar) *Router {
	r.portal = append(r.portal, registrars...)
	return r
}

// Admin adds registrars for branch administration routes
func (r *Router) Admin(registrars ...RouteRegistrar) *Router {
	r.admin = append(r.admin, registrars...)
	return r
}

// SuperAdmin adds registrars for platform administration routes
func (r *Router) SuperAdmin(registrars ...RouteRegistrar) *Router {
	r.superadmin = append(r.superadmin, registrars...)
	return r
}

// Setup registers all routes with the engine. Section prefixes match the
// frontend sections, so a guard's redirect target is also the API prefix
// the client should switch to.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	portal := api.Group("/portal")
	if r.guards.Portal != nil {
		portal.Use(r.guards.Portal)
	}
	for _, registrar := range r.portal {
		registrar.RegisterRoutes(portal)
	}

	admin := api.Group("/admin")
	if r.guards.Admin != nil {
		admin.Use(r.guards.Admin)
	}
	for _, registrar := range r.admin {
		registrar.RegisterRoutes(admin)
	}

	superadmin := api.Group("/superadmin")
	if r.guards.SuperAdmin != nil {
		superadmin.Use(r.guards.SuperAdmin)
	}
	for _, registrar := range r.superadmin {
		registrar.RegisterRoutes(superadmin)
	}
}
