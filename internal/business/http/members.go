package http

import (
	"encoding/json"
	"net/http"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/service"
	"github.com/bizkopa/bizkopa/pkg/bizsdk"
	"github.com/bizkopa/bizkopa/pkg/httpx"
)

type MembersHandler struct {
	MemberService *service.MemberService
}

// HandleList godoc
//
//	@Summary		List Members
//	@Description	List the member roster of an organization with mirrored account profiles. Any member may read it.
//	@Tags			Members
//	@Produce		json
//	@Param			id	path		string					true	"Organization ID"
//	@Success		200	{object}	bizsdk.MemberList		"members"
//	@Failure		403	{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	members, err := h.MemberService.ListMembers(r.Context(), r.PathValue("id"), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := bizsdk.MemberList{Members: make([]bizsdk.Member, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, bizsdk.Member{
			AccountID: m.Membership.AccountID,
			Email:     m.Profile.Email,
			Name:      m.Profile.Name,
			Role:      string(m.Membership.Role),
			JoinedAt:  m.Membership.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleChangeRole godoc
//
//	@Summary		Change Member Role
//	@Description	Move a member between manager and staff. Owner only; the owner role itself is never assignable.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			id			path	string						true	"Organization ID"
//	@Param			accountID	path	string						true	"Target account ID"
//	@Param			request		body	bizsdk.ChangeRoleRequest	true	"New role"
//	@Success		204			"Role changed"
//	@Failure		400			{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		403			{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		409			{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id}/members/{accountID} [patch].
func (h *MembersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	var req bizsdk.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_role", "Role must be manager or staff")
		return
	}

	err = h.MemberService.ChangeRole(r.Context(),
		r.PathValue("id"), accountID, r.PathValue("accountID"), role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove godoc
//
//	@Summary		Remove Member
//	@Description	Remove a member from the organization. Owners may remove managers and staff; managers may remove staff only.
//	@Tags			Members
//	@Produce		json
//	@Param			id			path	string	true	"Organization ID"
//	@Param			accountID	path	string	true	"Target account ID"
//	@Success		204			"Removed"
//	@Failure		403			{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id}/members/{accountID} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	err := h.MemberService.RemoveMember(r.Context(),
		r.PathValue("id"), accountID, r.PathValue("accountID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
