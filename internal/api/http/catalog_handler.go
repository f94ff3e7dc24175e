package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/service"
)

type BookHandler struct {
	bookSvc service.BookService
}

func NewBookHandler(bookSvc service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := decodeBody(r, &book); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.bookSvc.AddBook(r.Context(), &book); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := decodeBody(r, &book); err != nil {
		writeError(w, r, err)
		return
	}
	book.ISBN = mux.Vars(r)["isbn"]
	if err := h.bookSvc.UpdateBook(r.Context(), &book); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bookSvc.RemoveBook(r.Context(), mux.Vars(r)["isbn"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookSvc.GetBook(r.Context(), mux.Vars(r)["isbn"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookSvc.ListBooks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var member domain.Member
	if err := decodeBody(r, &member); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.memberSvc.AddMember(r.Context(), &member); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	var member domain.Member
	if err := decodeBody(r, &member); err != nil {
		writeError(w, r, err)
		return
	}
	member.ID = mux.Vars(r)["id"]
	if err := h.memberSvc.UpdateMember(r.Context(), &member); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.memberSvc.DeleteMember(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.memberSvc.GetMember(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberSvc.ListMembers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

type LibrarianHandler struct {
	librarianSvc service.LibrarianService
}

func NewLibrarianHandler(librarianSvc service.LibrarianService) *LibrarianHandler {
	return &LibrarianHandler{librarianSvc: librarianSvc}
}

func (h *LibrarianHandler) Create(w http.ResponseWriter, r *http.Request) {
	var librarian domain.Librarian
	if err := decodeBody(r, &librarian); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.librarianSvc.AddLibrarian(r.Context(), &librarian); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, librarian)
}

func (h *LibrarianHandler) Update(w http.ResponseWriter, r *http.Request) {
	var librarian domain.Librarian
	if err := decodeBody(r, &librarian); err != nil {
		writeError(w, r, err)
		return
	}
	librarian.ID = mux.Vars(r)["id"]
	if err := h.librarianSvc.UpdateLibrarian(r.Context(), &librarian); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, librarian)
}

func (h *LibrarianHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.librarianSvc.DeleteLibrarian(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LibrarianHandler) Get(w http.ResponseWriter, r *http.Request) {
	librarian, err := h.librarianSvc.GetLibrarian(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, librarian)
}

func (h *LibrarianHandler) List(w http.ResponseWriter, r *http.Request) {
	librarians, err := h.librarianSvc.ListLibrarians(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, librarians)
}

type LibraryHandler struct {
	librarySvc service.LibraryService
}

func NewLibraryHandler(librarySvc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{librarySvc: librarySvc}
}

func (h *LibraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var library domain.Library
	if err := decodeBody(r, &library); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.librarySvc.AddLibrary(r.Context(), &library); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, library)
}

func (h *LibraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var library domain.Library
	if err := decodeBody(r, &library); err != nil {
		writeError(w, r, err)
		return
	}
	library.ID = mux.Vars(r)["id"]
	if err := h.librarySvc.UpdateLibrary(r.Context(), &library); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, library)
}

func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.librarySvc.DeleteLibrary(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	library, err := h.librarySvc.GetLibrary(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, library)
}

func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	libraries, err := h.librarySvc.ListLibraries(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, libraries)
}
