// Package router assembles the HTTP surface from per-module route blocks
// so every module declares its endpoints in one place and the server wires
// them together at startup.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Registrar mounts a block of routes onto the versioned API group.
type Registrar interface {
	Mount(api *gin.RouterGroup)
}

// Router collects route blocks and mounts them under /api/<version>.
type Router struct {
	engine  *gin.Engine
	version string
	blocks  []Registrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" path segment
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.version = version
	}
}

// NewRouter wraps a gin engine. Nothing is mounted until Setup runs.
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:  engine,
		version: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues one or more route blocks for Setup
func (r *Router) Register(blocks ...Registrar) *Router {
	r.blocks = append(r.blocks, blocks...)
	return r
}

// Setup mounts every registered block under the versioned prefix
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.version)
	for _, block := range r.blocks {
		block.Mount(api)
	}
}

// DomainGroup is a named block of routes sharing a path prefix and a
// middleware chain. Routes are recorded up front and mounted together,
// which keeps middleware ordering explicit per module.
type DomainGroup struct {
	name   string
	prefix string
	chain  []gin.HandlerFunc
	routes []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates an empty route block for one module
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use appends middleware that runs before every route in the block
func (g *DomainGroup) Use(mw ...gin.HandlerFunc) *DomainGroup {
	g.chain = append(g.chain, mw...)
	return g
}

// Handle records a route for mounting
func (g *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

// GET records a GET route
func (g *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodGet, path, handlers...)
}

// POST records a POST route
func (g *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPost, path, handlers...)
}

// PUT records a PUT route
func (g *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPut, path, handlers...)
}

// DELETE records a DELETE route
func (g *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodDelete, path, handlers...)
}

// Mount implements Registrar
func (g *DomainGroup) Mount(api *gin.RouterGroup) {
	grp := api.Group(g.prefix)
	grp.Use(g.chain...)
	for _, rt := range g.routes {
		grp.Handle(rt.method, rt.path, rt.handlers...)
	}
}

// Name identifies the block in logs and diagnostics
func (g *DomainGroup) Name() string {
	return g.name
}
