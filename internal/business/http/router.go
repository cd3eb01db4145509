package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/service"
	"github.com/bizkopa/bizkopa/internal/business/store"
	"github.com/bizkopa/bizkopa/pkg/httpx"
	"github.com/bizkopa/bizkopa/pkg/jwtx"
	"github.com/bizkopa/bizkopa/pkg/slogx"

	_ "github.com/bizkopa/bizkopa/api/business" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	OrganizationService *service.OrganizationService
	MemberService       *service.MemberService
	InvitationService   *service.InvitationService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOrganizations()
	r.registerMembers()
	r.registerInvitations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Bizkopa Business Service API
//	@version		0.1.0
//	@description	Organization membership and invitation service. Accounts come from the external
//	@description	identity service; this service owns organizations, role-based memberships, and
//	@description	the invitation lifecycle that brings new members in.
//
//	@contact.name	Bizkopa Team
//	@contact.url	https://github.com/bizkopa/bizkopa
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token issued by the identity service. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOrganizations() {
	h := &OrganizationsHandler{
		OrganizationService: r.OrganizationService,
		MemberService:       r.MemberService,
	}

	// POST /organizations - moderate rate limit (creates rows)
	r.Mux.Handle("POST /v1/organizations",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// GET /organizations - lenient, read-only listing
	r.Mux.Handle("GET /v1/organizations",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/organizations/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PATCH /v1/organizations/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// DELETE is destructive and rare, strict limit
	r.Mux.Handle("DELETE /v1/organizations/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMembers() {
	h := &MembersHandler{MemberService: r.MemberService}

	r.Mux.Handle("GET /v1/organizations/{id}/members",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PATCH /v1/organizations/{id}/members/{accountID}",
		httpx.Chain(http.HandlerFunc(h.HandleChangeRole),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/organizations/{id}/members/{accountID}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	r.Mux.Handle("POST /v1/organizations/{id}/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/organizations/{id}/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/organizations/{id}/invitations/{invitationID}/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/organizations/{id}/invitations/{invitationID}/cancel",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// GET /invitations/validate - unauthenticated token lookup, strict by IP
	// to slow token guessing
	r.Mux.Handle("GET /v1/invitations/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /invitations/accept - authenticated redeem, strict by IP + account
	r.Mux.Handle("POST /v1/invitations/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByAccount(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
