package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/raywall/bar-order-service/pkg/apperr"
	"github.com/raywall/bar-order-service/pkg/identity"
	"github.com/raywall/bar-order-service/repository"
	"github.com/raywall/bar-order-service/service"
)

// Deps reúne o que as rotas precisam.
type Deps struct {
	Patrons        *repository.PatronRepository
	Menu           *repository.MenuRepository
	Orders         *service.OrderService
	Reset          *service.ResetService
	Auth           identity.Authenticator
	Policy         identity.Policy
	RequestTimeout time.Duration
}

type handlers struct {
	Deps
}

// NewRouter monta a tabela de rotas. Observabilidade, CORS e timeout
// envolvem toda rota, incluindo 404, 405 e o preflight.
func NewRouter(d Deps) *mux.Router {
	h := &handlers{Deps: d}
	r := mux.NewRouter()

	wrap := func(next http.Handler) http.Handler {
		return ObservabilityMiddleware(CORSMiddleware(next))
	}
	r.NotFoundHandler = wrap(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, apperr.NotFound("route %s not found", req.URL.Path))
	}))
	r.MethodNotAllowedHandler = wrap(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, apperr.MethodNotAllowed("method %s not allowed on %s", req.Method, req.URL.Path))
	}))
	r.Use(ObservabilityMiddleware, CORSMiddleware, TimeoutMiddleware(d.RequestTimeout))

	// preflight para qualquer caminho; CORSMiddleware responde antes do handler
	r.Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	user := func(fn http.HandlerFunc) http.HandlerFunc { return authenticated(d.Auth, d.Policy, false, fn) }
	admin := func(fn http.HandlerFunc) http.HandlerFunc { return authenticated(d.Auth, d.Policy, true, fn) }

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/menus", h.listMenu).Methods(http.MethodGet)

	r.HandleFunc("/patrons", user(h.listPatrons)).Methods(http.MethodGet)
	r.HandleFunc("/patrons", user(h.createPatron)).Methods(http.MethodPost)
	r.HandleFunc("/patrons/{patronId}", user(h.getPatron)).Methods(http.MethodGet)
	r.HandleFunc("/patrons/{patronId}", user(h.updatePatron)).Methods(http.MethodPatch)

	r.HandleFunc("/orders", user(h.listOrders)).Methods(http.MethodGet)
	r.HandleFunc("/orders", user(h.createOrder)).Methods(http.MethodPost)
	r.HandleFunc("/orders/{orderId}", user(h.getOrder)).Methods(http.MethodGet)

	a := r.PathPrefix("/admin").Subrouter()
	a.HandleFunc("/reset-all", admin(h.resetAll)).Methods(http.MethodPost)
	a.HandleFunc("/reset", admin(h.resetTenant)).Methods(http.MethodPost)

	a.HandleFunc("/menu-items", admin(h.listMenuItems)).Methods(http.MethodGet)
	a.HandleFunc("/menu-items", admin(h.createMenuItem)).Methods(http.MethodPost)
	a.HandleFunc("/menu-items/{id}", admin(h.updateMenuItem)).Methods(http.MethodPatch)
	a.HandleFunc("/menu-items/{id}", admin(h.deleteMenuItem)).Methods(http.MethodDelete)

	a.HandleFunc("/categories", admin(h.listCategories)).Methods(http.MethodGet)
	a.HandleFunc("/categories", admin(h.createCategory)).Methods(http.MethodPost)
	a.HandleFunc("/categories/{id}", admin(h.updateCategory)).Methods(http.MethodPatch)
	a.HandleFunc("/categories/{id}", admin(h.deleteCategory)).Methods(http.MethodDelete)

	a.HandleFunc("/blends", admin(h.listBlends)).Methods(http.MethodGet)
	a.HandleFunc("/blends", admin(h.createBlend)).Methods(http.MethodPost)
	a.HandleFunc("/blends/{id}", admin(h.updateBlend)).Methods(http.MethodPatch)
	a.HandleFunc("/blends/{id}", admin(h.deleteBlend)).Methods(http.MethodDelete)

	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// orEmpty garante "[]" em vez de "null" nas listas serializadas.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
