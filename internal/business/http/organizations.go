package http

import (
	"encoding/json"
	"net/http"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/service"
	"github.com/bizkopa/bizkopa/pkg/bizsdk"
	"github.com/bizkopa/bizkopa/pkg/httpx"
)

type OrganizationsHandler struct {
	OrganizationService *service.OrganizationService
	MemberService       *service.MemberService
}

func toOrganization(o domain.Organization) bizsdk.Organization {
	return bizsdk.Organization{
		ID:        o.ID,
		Name:      o.Name,
		Industry:  o.Industry,
		Phone:     o.Phone,
		Email:     o.Email,
		Address:   o.Address,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// HandleCreate godoc
//
//	@Summary		Create Organization
//	@Description	Create a new organization with the caller as its owner.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bizsdk.CreateOrganizationRequest	true	"Organization profile"
//	@Success		201		{object}	bizsdk.Organization					"The created organization"
//	@Failure		400		{object}	bizsdk.ErrorResponse				"error, error_description"
//	@Failure		401		{object}	bizsdk.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations [post].
func (h *OrganizationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccountID(w, r); !ok {
		return
	}

	var req bizsdk.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	org, err := h.OrganizationService.Create(r.Context(), identityFromRequest(r), domain.Organization{
		Name:     req.Name,
		Industry: req.Industry,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOrganization(org))
}

// HandleList godoc
//
//	@Summary		List Organizations
//	@Description	List every organization the caller belongs to, with the caller's role in each.
//	@Tags			Organizations
//	@Produce		json
//	@Success		200	{object}	bizsdk.OrganizationList	"organizations"
//	@Failure		401	{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations [get].
func (h *OrganizationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	memberships, err := h.MemberService.ListForAccount(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := bizsdk.OrganizationList{
		Organizations: make([]bizsdk.OrganizationMembership, 0, len(memberships)),
	}
	for _, m := range memberships {
		out.Organizations = append(out.Organizations, bizsdk.OrganizationMembership{
			Organization: toOrganization(m.Organization),
			Role:         string(m.Role),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get Organization
//	@Description	Fetch one organization. The caller must be a member.
//	@Tags			Organizations
//	@Produce		json
//	@Param			id	path		string					true	"Organization ID"
//	@Success		200	{object}	bizsdk.Organization		"The organization"
//	@Failure		403	{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id} [get].
func (h *OrganizationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	org, err := h.OrganizationService.Get(r.Context(), r.PathValue("id"), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrganization(org))
}

// HandleUpdate godoc
//
//	@Summary		Update Organization Profile
//	@Description	Apply a partial update to the organization profile. Owners and managers only; omitted fields are left untouched.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Organization ID"
//	@Param			request	body		bizsdk.UpdateOrganizationRequest	true	"Fields to update"
//	@Success		200		{object}	bizsdk.Organization					"The updated organization"
//	@Failure		400		{object}	bizsdk.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	bizsdk.ErrorResponse				"error, error_description"
//	@Failure		404		{object}	bizsdk.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id} [patch].
func (h *OrganizationsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	var req bizsdk.UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	org, err := h.OrganizationService.UpdateProfile(r.Context(), r.PathValue("id"), accountID, domain.OrganizationPatch{
		Name:     req.Name,
		Industry: req.Industry,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrganization(org))
}

// HandleDelete godoc
//
//	@Summary		Delete Organization
//	@Description	Permanently delete the organization, its memberships, and its invitations. Owner only.
//	@Tags			Organizations
//	@Produce		json
//	@Param			id	path	string	true	"Organization ID"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id} [delete].
func (h *OrganizationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	if err := h.OrganizationService.Delete(r.Context(), r.PathValue("id"), accountID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
