// Package router assembles the versioned storefront API from domain route
// groups.
package router

import (
	"cmp"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes under the API base group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>.
type Router struct {
	engine     *gin.Engine
	version    string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion replaces the default "v1" segment.
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.version = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup.
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// BasePath is the versioned API prefix, e.g. /api/v1
func (r *Router) BasePath() string {
	return "/api/" + r.version
}

// Paths prefixes route paths with the base path
func (r *Router) Paths(paths ...string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = r.BasePath() + p
	}
	return out
}

// Setup mounts every registered group on the engine.
func (r *Router) Setup() {
	base := r.engine.Group(r.BasePath())
	for _, reg := range r.registrars {
		reg.RegisterRoutes(base)
	}
}

// RouteInfo is one declared route. Path is relative to the API base path.
type RouteInfo struct {
	Group  string
	Method string
	Path   string
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// DomainGroup declares the routes of one area of the API, together with the
// middleware they share. Subgroups inherit that middleware.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
	children   []*DomainGroup
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// Use appends middleware that runs before every route of the group.
func (dg *DomainGroup) Use(mw ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, mw...)
	return dg
}

// Handle declares a route. The verb helpers below call it.
func (dg *DomainGroup) Handle(method, p string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: p, handlers: handlers})
	return dg
}

func (dg *DomainGroup) GET(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, p, h...)
}

func (dg *DomainGroup) POST(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, p, h...)
}

func (dg *DomainGroup) PUT(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, p, h...)
}

func (dg *DomainGroup) PATCH(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, p, h...)
}

func (dg *DomainGroup) DELETE(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, p, h...)
}

// Update binds PUT and PATCH to the same handlers. Updates are partial
// either way.
func (dg *DomainGroup) Update(p string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.PUT(p, h...).PATCH(p, h...)
}

// Group returns a child group mounted below this one.
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	child := NewDomainGroup(name, prefix)
	dg.children = append(dg.children, child)
	return child
}

// RegisterRoutes implements RouteRegistrar.
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		g.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range dg.children {
		child.RegisterRoutes(g)
	}
}

// Routes lists what the group and its children declare.
func (dg *DomainGroup) Routes() []RouteInfo {
	var out []RouteInfo
	dg.walk("/", func(prefix string, g *DomainGroup) {
		for _, rt := range g.routes {
			out = append(out, RouteInfo{Group: g.name, Method: rt.method, Path: joinPath(prefix, rt.path)})
		}
	})
	return out
}

func (dg *DomainGroup) walk(base string, visit func(prefix string, g *DomainGroup)) {
	prefix := joinPath(base, dg.prefix)
	visit(prefix, dg)
	for _, child := range dg.children {
		child.walk(prefix, visit)
	}
}

// SortRoutes orders routes by path, then method.
func SortRoutes(routes []RouteInfo) {
	slices.SortFunc(routes, func(a, b RouteInfo) int {
		return cmp.Or(strings.Compare(a.Path, b.Path), strings.Compare(a.Method, b.Method))
	})
}

// joinPath joins like path.Join but keeps a trailing slash on rel.
func joinPath(base, rel string) string {
	if rel == "" {
		return base
	}
	joined := path.Join(base, rel)
	if strings.HasSuffix(rel, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
