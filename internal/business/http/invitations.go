package http

import (
	"encoding/json"
	"net/http"

	"github.com/bizkopa/bizkopa/internal/business/domain"
	"github.com/bizkopa/bizkopa/internal/business/service"
	"github.com/bizkopa/bizkopa/pkg/bizsdk"
	"github.com/bizkopa/bizkopa/pkg/httpx"
)

type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

func toInvitation(inv domain.Invitation) bizsdk.Invitation {
	return bizsdk.Invitation{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      string(inv.Role),
		Status:    string(inv.Status),
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

// HandleCreate godoc
//
//	@Summary		Create Invitation
//	@Description	Invite an email address to join the organization as manager or staff. Owners and managers only.
//	@Description	The returned token is shown exactly once; only its fingerprint is stored.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Organization ID"
//	@Param			request	body		bizsdk.CreateInvitationRequest	true	"Invitee email and role"
//	@Success		201		{object}	bizsdk.InvitationTokenResponse	"invitation, token"
//	@Failure		400		{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id}/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	var req bizsdk.CreateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_role", "Role must be manager or staff")
		return
	}

	created, err := h.InvitationService.Create(r.Context(),
		r.PathValue("id"), accountID, req.Email, role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, bizsdk.InvitationTokenResponse{
		Invitation: toInvitation(created.Invitation),
		Token:      created.Token,
	})
}

// HandleList godoc
//
//	@Summary		List Invitations
//	@Description	List the organization's invitations, optionally filtered by status. Owners and managers only.
//	@Description	Status reflects expiry at read time: a lapsed pending invitation reads as expired.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id		path		string					true	"Organization ID"
//	@Param			status	query		string					false	"Filter by status (pending, accepted, expired, cancelled)"
//	@Success		200		{object}	bizsdk.InvitationList	"invitations"
//	@Failure		400		{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id}/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	var status domain.InvitationStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.InvitationStatus(s)
		switch status {
		case domain.InvitationPending, domain.InvitationAccepted,
			domain.InvitationExpired, domain.InvitationCancelled:
		default:
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Unknown status filter")
			return
		}
	}

	invitations, err := h.InvitationService.List(r.Context(), r.PathValue("id"), accountID, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := bizsdk.InvitationList{Invitations: make([]bizsdk.Invitation, 0, len(invitations))}
	for _, inv := range invitations {
		out.Invitations = append(out.Invitations, toInvitation(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleResend godoc
//
//	@Summary		Resend Invitation
//	@Description	Rotate the invitation token and push out its expiry. The old token stops working immediately.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id				path		string							true	"Organization ID"
//	@Param			invitationID	path		string							true	"Invitation ID"
//	@Success		200				{object}	bizsdk.InvitationTokenResponse	"invitation, token"
//	@Failure		403				{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Failure		404				{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Failure		409				{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id}/invitations/{invitationID}/resend [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	resent, err := h.InvitationService.Resend(r.Context(),
		r.PathValue("id"), accountID, r.PathValue("invitationID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bizsdk.InvitationTokenResponse{
		Invitation: toInvitation(resent.Invitation),
		Token:      resent.Token,
	})
}

// HandleCancel godoc
//
//	@Summary		Cancel Invitation
//	@Description	Revoke a pending invitation. Its token stops working immediately.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id				path	string	true	"Organization ID"
//	@Param			invitationID	path	string	true	"Invitation ID"
//	@Success		204				"Cancelled"
//	@Failure		403				{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Failure		409				{object}	bizsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{id}/invitations/{invitationID}/cancel [post].
func (h *InvitationsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	accountID, ok := requireAccountID(w, r)
	if !ok {
		return
	}

	err := h.InvitationService.Cancel(r.Context(),
		r.PathValue("id"), accountID, r.PathValue("invitationID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleValidate godoc
//
//	@Summary		Validate Invitation Token
//	@Description	Look up an invitation by raw token and report what accepting it would mean. Unauthenticated; possession of the token is the credential.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string								true	"Raw invitation token"
//	@Success		200		{object}	bizsdk.ValidateInvitationResponse	"email, role, organization_name, status, expires_at"
//	@Failure		400		{object}	bizsdk.ErrorResponse				"error, error_description"
//	@Failure		404		{object}	bizsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/invitations/validate [get].
func (h *InvitationsHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	view, err := h.InvitationService.Validate(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bizsdk.ValidateInvitationResponse{
		Email:            view.Email,
		Role:             string(view.Role),
		OrganizationName: view.OrganizationName,
		Status:           string(view.Status),
		ExpiresAt:        view.ExpiresAt,
	})
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Redeem an invitation token for the authenticated account, creating or updating the membership.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		bizsdk.AcceptInvitationRequest	true	"Raw invitation token"
//	@Success		200		{object}	bizsdk.Membership				"The resulting membership"
//	@Failure		400		{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Failure		410		{object}	bizsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAccountID(w, r); !ok {
		return
	}

	var req bizsdk.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	membership, err := h.InvitationService.Accept(r.Context(), identityFromRequest(r), req.Token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, bizsdk.Membership{
		OrganizationID: membership.OrganizationID,
		AccountID:      membership.AccountID,
		Role:           string(membership.Role),
		JoinedAt:       membership.CreatedAt,
	})
}
