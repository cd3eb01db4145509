package bizsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs authenticated operations against the business service on
// behalf of one account. Sessions are cheap; create one per access token.
type Session struct {
	client      *SDKClient
	accessToken string
}

// ============================================================================
// Organizations
// ============================================================================

// CreateOrganization creates a new organization with the caller as owner.
func (s *Session) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/organizations", req)
	if err != nil {
		return nil, err
	}

	var org Organization
	if err := decodeJSON(resp, &org, http.StatusCreated); err != nil {
		return nil, err
	}
	return &org, nil
}

// ListOrganizations returns every organization the caller belongs to with
// the caller's role in each.
func (s *Session) ListOrganizations(ctx context.Context) (*OrganizationList, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/organizations", nil)
	if err != nil {
		return nil, err
	}

	var list OrganizationList
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetOrganization fetches one organization the caller is a member of.
func (s *Session) GetOrganization(ctx context.Context, organizationID string) (*Organization, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet,
		"/v1/organizations/"+url.PathEscape(organizationID), nil)
	if err != nil {
		return nil, err
	}

	var org Organization
	if err := decodeJSON(resp, &org, http.StatusOK); err != nil {
		return nil, err
	}
	return &org, nil
}

// UpdateOrganization applies a partial profile patch. Owner or manager only.
func (s *Session) UpdateOrganization(
	ctx context.Context,
	organizationID string,
	req UpdateOrganizationRequest,
) (*Organization, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch,
		"/v1/organizations/"+url.PathEscape(organizationID), req)
	if err != nil {
		return nil, err
	}

	var org Organization
	if err := decodeJSON(resp, &org, http.StatusOK); err != nil {
		return nil, err
	}
	return &org, nil
}

// DeleteOrganization permanently deletes an organization. Owner only.
func (s *Session) DeleteOrganization(ctx context.Context, organizationID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete,
		"/v1/organizations/"+url.PathEscape(organizationID), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Members
// ============================================================================

// ListMembers returns the member roster of an organization.
func (s *Session) ListMembers(ctx context.Context, organizationID string) (*MemberList, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet,
		"/v1/organizations/"+url.PathEscape(organizationID)+"/members", nil)
	if err != nil {
		return nil, err
	}

	var list MemberList
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// ChangeMemberRole moves a member between manager and staff. Owner only.
func (s *Session) ChangeMemberRole(ctx context.Context, organizationID, accountID, role string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch,
		"/v1/organizations/"+url.PathEscape(organizationID)+"/members/"+url.PathEscape(accountID),
		ChangeRoleRequest{Role: role})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// RemoveMember removes a member from an organization.
func (s *Session) RemoveMember(ctx context.Context, organizationID, accountID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete,
		"/v1/organizations/"+url.PathEscape(organizationID)+"/members/"+url.PathEscape(accountID), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Invitations
// ============================================================================

// CreateInvitation invites an email address to the organization. The token
// in the response is shown exactly once.
func (s *Session) CreateInvitation(
	ctx context.Context,
	organizationID string,
	req CreateInvitationRequest,
) (*InvitationTokenResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/v1/organizations/"+url.PathEscape(organizationID)+"/invitations", req)
	if err != nil {
		return nil, err
	}

	var created InvitationTokenResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListInvitations returns the organization's invitations. Pass status "" for
// all, or one of pending/accepted/expired/cancelled to filter.
func (s *Session) ListInvitations(ctx context.Context, organizationID, status string) (*InvitationList, error) {
	path := "/v1/organizations/" + url.PathEscape(organizationID) + "/invitations"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list InvitationList
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// ResendInvitation rotates the token and expiry of a pending invitation.
func (s *Session) ResendInvitation(
	ctx context.Context,
	organizationID, invitationID string,
) (*InvitationTokenResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/v1/organizations/"+url.PathEscape(organizationID)+
			"/invitations/"+url.PathEscape(invitationID)+"/resend", nil)
	if err != nil {
		return nil, err
	}

	var resent InvitationTokenResponse
	if err := decodeJSON(resp, &resent, http.StatusOK); err != nil {
		return nil, err
	}
	return &resent, nil
}

// CancelInvitation revokes a pending invitation.
func (s *Session) CancelInvitation(ctx context.Context, organizationID, invitationID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost,
		"/v1/organizations/"+url.PathEscape(organizationID)+
			"/invitations/"+url.PathEscape(invitationID)+"/cancel", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// AcceptInvitation redeems an invitation token for the authenticated account.
func (s *Session) AcceptInvitation(ctx context.Context, token string) (*Membership, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invitations/accept",
		AcceptInvitationRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var membership Membership
	if err := decodeJSON(resp, &membership, http.StatusOK); err != nil {
		return nil, err
	}
	return &membership, nil
}
