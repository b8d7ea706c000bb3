// Package stub is an in-memory stand-in for the Sweet Shop backend,
// implementing the REST contract the client consumes. It exists so the
// test suite and local development have a collaborator to talk to; it
// keeps everything in maps and is not a production server.
package stub

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweetshop-client/internal/model"
)

// Server hosts the stub API. All state is process-local.
type Server struct {
	e      *echo.Echo
	secret string

	mu       sync.Mutex
	accounts map[string]account
	sweets   map[string]model.Sweet
	order    []string // listing order of sweet ids
	nextID   int
}

// New builds a stub signing tokens with the given secret.
func New(secret string) *Server {
	s := &Server{
		e:        echo.New(),
		secret:   secret,
		accounts: make(map[string]account),
		sweets:   make(map[string]model.Sweet),
		nextID:   1,
	}
	s.e.HideBanner = true
	s.routes()
	return s
}

// routes wires the documented endpoint table under /api.
func (s *Server) routes() {
	api := s.e.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	sweets := api.Group("/sweets", s.requireAuth)
	sweets.GET("", s.list)
	sweets.GET("/search", s.search)
	sweets.POST("", s.create, s.requireAdmin)
	sweets.PUT("/:id", s.update, s.requireAdmin)
	sweets.DELETE("/:id", s.remove, s.requireAdmin)
	sweets.POST("/:id/purchase", s.purchase)
	sweets.POST("/:id/restock", s.restock, s.requireAdmin)
}

// Handler exposes the stub for httptest.
func (s *Server) Handler() http.Handler { return s.e }

// Start blocks serving on addr.
func (s *Server) Start(addr string) error { return s.e.Start(addr) }

// ----- seeding, for tests and the dev binary -----

// SeedAdmin registers an admin account.
func (s *Server) SeedAdmin(username, password string) error {
	_, err := s.addAccount(username, "", password, model.RoleAdmin)
	return err
}

// SeedUser registers a standard account.
func (s *Server) SeedUser(username, email, password string) error {
	_, err := s.addAccount(username, email, password, model.RoleUser)
	return err
}

// SeedSweet inserts a sweet directly, returning its assigned id.
func (s *Server) SeedSweet(sweet model.Sweet) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertSweetLocked(sweet).ID
}

// Sweet returns the current server-side record, for test assertions.
func (s *Server) Sweet(id string) (model.Sweet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet, ok := s.sweets[id]
	return sweet, ok
}
