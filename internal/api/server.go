package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Server holds the handler dependencies. Authorization happens in the
// gate middleware before a request reaches any handler here, so the
// handlers only validate input and talk to storage.
type Server struct {
	auth           AuthService
	users          UserReader
	stores         StoreRepo
	copypoints     CopypointRepo
	sales          SaleRepo
	paymentMethods PaymentMethodRepo
	employees      EmployeeRepo
	db             Pinger
	cache          Pinger
}

type ServerDeps struct {
	Auth           AuthService
	Users          UserReader
	Stores         StoreRepo
	Copypoints     CopypointRepo
	Sales          SaleRepo
	PaymentMethods PaymentMethodRepo
	Employees      EmployeeRepo
	DB             Pinger
	Cache          Pinger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		auth:           deps.Auth,
		users:          deps.Users,
		stores:         deps.Stores,
		copypoints:     deps.Copypoints,
		sales:          deps.Sales,
		paymentMethods: deps.PaymentMethods,
		employees:      deps.Employees,
		db:             deps.DB,
		cache:          deps.Cache,
	}
}

// RegisterRoutes mounts every endpoint on the router. Patterns are
// registered flat so chi.Walk reports them exactly as the rule table
// coverage check probes them.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", s.handleHealth)

	r.Post("/api/auth/sign-in", s.handleSignIn)
	r.Post("/api/auth/sign-up", s.handleSignUp)
	r.Post("/api/auth/refresh", s.handleRefresh)
	r.Post("/api/auth/logout", s.handleLogout)
	r.Get("/api/auth/my-profile", s.handleMyProfile)

	r.Post("/api/users", s.handleCreateUser)
	r.Get("/api/payment-methods", s.handleListPaymentMethods)

	r.Get("/api/stores", s.handleListStores)
	r.Post("/api/stores", s.handleCreateStore)
	r.Get("/api/stores/{storeID}", s.handleGetStore)

	r.Get("/api/stores/{storeID}/copypoints", s.handleListCopypoints)
	r.Post("/api/stores/{storeID}/copypoints", s.handleCreateCopypoint)

	r.Get("/api/stores/{storeID}/copypoints/{copypointID}/sales", s.handleListSales)
	r.Post("/api/stores/{storeID}/copypoints/{copypointID}/sales", s.handleCreateSale)
	r.Get("/api/stores/{storeID}/copypoints/{copypointID}/employees", s.handleListEmployees)
}

// pathID parses a chi URL parameter as an int64 id. The authorization
// gate already rejected non-numeric segments for scoped routes, but the
// handlers still validate so they stay safe when called directly.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
