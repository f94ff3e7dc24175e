package http

import (
	"net/http"

	"library-lending-backend/internal/domain"
	"library-lending-backend/internal/service"
)

type RulesHandler struct {
	rulesSvc service.RulesService
}

func NewRulesHandler(rulesSvc service.RulesService) *RulesHandler {
	return &RulesHandler{rulesSvc: rulesSvc}
}

func (h *RulesHandler) Get(w http.ResponseWriter, r *http.Request) {
	rules, err := h.rulesSvc.GetRules(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRulesToResponse(rules))
}

func (h *RulesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rules domain.BorrowingRules
	if err := decodeBody(r, &rules); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.rulesSvc.UpdateRules(r.Context(), &rules); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapDomainRulesToResponse(&rules))
}
