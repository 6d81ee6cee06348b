package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scm-sandbox/scm-backend/pkg/errors"
)

// SessionCookieName carries the session token on browser navigations.
// Background refreshes may send the same token as a bearer header instead.
const SessionCookieName = "scm_session"

// Role names recognized by the auth gate
const (
	RoleManager       = "Manager"
	RoleAnalyst       = "Analyst"
	RoleSeniorManager = "SeniorManager"
)

// Routing targets for auth decisions
const (
	LoginPath        = "/login"
	ERPDashboardPath = "/erp/dashboard"
)

// AuthenticatedUser is the identity attached to the request context
type AuthenticatedUser struct {
	UserID string
	Name   string
	Role   string
}

// SessionClaims is the JWT claim set for session tokens
type SessionClaims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decision is the outcome of the session gate for one request: either the
// request proceeds, or the user is sent elsewhere.
type Decision struct {
	Allow          bool
	RedirectTarget string
	User           *AuthenticatedUser
}

// SessionAuth validates session tokens and enforces the role routing rule:
// senior managers work in the ERP module, not here.
type SessionAuth struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewSessionAuth creates a session auth gate with the given HMAC secret
func NewSessionAuth(secret string) *SessionAuth {
	return &SessionAuth{
		secret:   []byte(secret),
		tokenTTL: 12 * time.Hour,
	}
}

// IssueToken mints a signed session token. The login flow and tests use it.
func (a *SessionAuth) IssueToken(userID, name, role string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Decide computes the auth decision for a request
func (a *SessionAuth) Decide(r *http.Request) Decision {
	tokenString := a.extractToken(r)
	if tokenString == "" {
		return Decision{RedirectTarget: LoginPath}
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		slog.Warn("Session token rejected", "error", err, "path", r.URL.Path)
		return Decision{RedirectTarget: LoginPath}
	}

	user := &AuthenticatedUser{
		UserID: claims.Subject,
		Name:   claims.Name,
		Role:   claims.Role,
	}

	// Senior managers are routed to the ERP module
	if claims.Role == RoleSeniorManager {
		return Decision{RedirectTarget: ERPDashboardPath, User: user}
	}

	return Decision{Allow: true, User: user}
}

// RequireLogin gates every report route. HTML navigations get a 302 to the
// decision's target; AJAX refreshes get the JSON failure envelope instead,
// with the target in "redirect" so the client script can navigate.
func (a *SessionAuth) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := a.Decide(r)
		if !decision.Allow {
			if IsAJAXRequest(r) {
				apiErr := errors.UnauthorizedError("not authorized")
				if decision.User != nil {
					apiErr = errors.ForbiddenError("not authorized")
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(apiErr.HTTPStatus)
				fmt.Fprintf(w, `{"success":false,"error":%q,"redirect":%q}`, apiErr.Message, decision.RedirectTarget)
				return
			}
			http.Redirect(w, r, decision.RedirectTarget, http.StatusFound)
			return
		}

		ctx := SetAuthenticatedUser(r.Context(), decision.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *SessionAuth) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// IsAJAXRequest reports whether the request is a background refresh rather
// than a page navigation.
func IsAJAXRequest(r *http.Request) bool {
	if r.URL.Query().Get("ajax") == "1" {
		return true
	}
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

const contextKeyUser contextKey = "authenticatedUser"

// SetAuthenticatedUser stores the user on the context
func SetAuthenticatedUser(ctx context.Context, user *AuthenticatedUser) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

// UserFromContext returns the authenticated user, or nil
func UserFromContext(ctx context.Context) *AuthenticatedUser {
	if user, ok := ctx.Value(contextKeyUser).(*AuthenticatedUser); ok {
		return user
	}
	return nil
}
