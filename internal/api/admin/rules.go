package admin

import (
	"context"
	"net/http"

	"github.com/codr1/courtbook/internal/api/apiutil"
	"github.com/codr1/courtbook/internal/pricing"
)

// GET /api/v1/admin/pricing-rules
func HandleRulesList(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	rules, err := svc.ListRules(ctx)
	respond(w, r, http.StatusOK, map[string]any{"rules": rules}, err)
}

// GET /api/v1/admin/pricing-rules/{id}
func HandleRuleGet(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	rule, err := svc.GetRule(ctx, id)
	respond(w, r, http.StatusOK, rule, err)
}

// POST /api/v1/admin/pricing-rules
func HandleRuleCreate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	var rule pricing.Rule
	if err := apiutil.DecodeJSON(r, &rule); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	created, err := svc.CreateRule(ctx, rule)
	respond(w, r, http.StatusCreated, created, err)
}

// PUT /api/v1/admin/pricing-rules/{id}
func HandleRuleUpdate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	var rule pricing.Rule
	if err := apiutil.DecodeJSON(r, &rule); err != nil {
		apiutil.WriteError(w, r, apiutil.FieldError{Field: "body", Reason: "must be valid JSON: " + err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	updated, err := svc.UpdateRule(ctx, id, rule)
	respond(w, r, http.StatusOK, updated, err)
}

// DELETE /api/v1/admin/pricing-rules/{id}
func HandleRuleDelete(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	if err := svc.DeleteRule(ctx, id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
