package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"library-lending-backend/internal/service"
)

type LoanHandler struct {
	lendingSvc service.LendingService
}

func NewLoanHandler(lendingSvc service.LendingService) *LoanHandler {
	return &LoanHandler{lendingSvc: lendingSvc}
}

type borrowRequest struct {
	MemberID string `json:"member_id"`
	ISBN     string `json:"isbn"`
}

func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	loan, err := h.lendingSvc.Borrow(r.Context(), req.MemberID, req.ISBN)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, MapDomainLoanToResponse(loan))
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["id"]
	fine, err := h.lendingSvc.ReturnLoan(r.Context(), loanID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReturnResponse{LoanID: loanID, Fine: formatMoney(fine)})
}

func (h *LoanHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	loans, err := h.lendingSvc.GetOverdueLoans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainLoansToResponse(loans))
}

func (h *LoanHandler) ListOpenForMember(w http.ResponseWriter, r *http.Request) {
	loans, err := h.lendingSvc.GetOpenLoansForMember(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainLoansToResponse(loans))
}
