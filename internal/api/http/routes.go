package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"library-lending-backend/internal/service"
)

// Services bundles what the HTTP API serves
type Services struct {
	Lending    service.LendingService
	Rules      service.RulesService
	Books      service.BookService
	Members    service.MemberService
	Librarians service.LibrarianService
	Libraries  service.LibraryService
}

// NewRouter builds the API router over the given services
func NewRouter(svcs Services) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, svcs)
	return router
}

// RegisterRoutes registers all API endpoints on router
func RegisterRoutes(router *mux.Router, svcs Services) {
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	loans := NewLoanHandler(svcs.Lending)
	api.HandleFunc("/loans", loans.Borrow).Methods("POST")
	api.HandleFunc("/loans/overdue", loans.ListOverdue).Methods("GET")
	api.HandleFunc("/loans/{id}/return", loans.Return).Methods("POST")
	api.HandleFunc("/members/{id}/loans", loans.ListOpenForMember).Methods("GET")

	rules := NewRulesHandler(svcs.Rules)
	api.HandleFunc("/rules", rules.Get).Methods("GET")
	api.HandleFunc("/rules", rules.Update).Methods("PUT")

	books := NewBookHandler(svcs.Books)
	api.HandleFunc("/books", books.List).Methods("GET")
	api.HandleFunc("/books", books.Create).Methods("POST")
	api.HandleFunc("/books/{isbn}", books.Get).Methods("GET")
	api.HandleFunc("/books/{isbn}", books.Update).Methods("PUT")
	api.HandleFunc("/books/{isbn}", books.Delete).Methods("DELETE")

	registerCRUD(api, "/members", NewMemberHandler(svcs.Members))
	registerCRUD(api, "/librarians", NewLibrarianHandler(svcs.Librarians))
	registerCRUD(api, "/libraries", NewLibraryHandler(svcs.Libraries))
}

type crudHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

func registerCRUD(router *mux.Router, prefix string, h crudHandler) {
	router.HandleFunc(prefix, h.List).Methods("GET")
	router.HandleFunc(prefix, h.Create).Methods("POST")
	router.HandleFunc(prefix+"/{id}", h.Get).Methods("GET")
	router.HandleFunc(prefix+"/{id}", h.Update).Methods("PUT")
	router.HandleFunc(prefix+"/{id}", h.Delete).Methods("DELETE")
}
