package middlewares

import (
	"context"
	"net/http"
	"strings"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/sources/psql/models"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const authKey contextKey = "auth"

// SessionCookie carries the signed session token for browser clients.
const SessionCookie = "session"

// AuthContext is the caller's identity, resolved once per request and
// passed explicitly into every controller call.
type AuthContext struct {
	UserID int
	Role   string
	VIN    string
}

func (a AuthContext) IsAdmin() bool { return a.Role == models.RoleAdmin }

// CanAccessVIN is the single visibility rule: admins see everything,
// customers only their own vehicle.
func (a AuthContext) CanAccessVIN(vin string) bool {
	return a.IsAdmin() || a.VIN == vin
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	a, ok := ctx.Value(authKey).(AuthContext)
	return a, ok
}

// WithAuthContext is exported for handler tests.
func WithAuthContext(ctx context.Context, a AuthContext) context.Context {
	return context.WithValue(ctx, authKey, a)
}

// ParseToken validates a signed session token and extracts the identity.
func ParseToken(tokenStr, secret string) (AuthContext, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return AuthContext{}, err
	}
	if !token.Valid {
		return AuthContext{}, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return AuthContext{}, jwt.ErrTokenInvalidClaims
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return AuthContext{}, jwt.ErrTokenInvalidClaims
	}
	role, _ := claims["role"].(string)
	vin, _ := claims["vin"].(string)
	return AuthContext{UserID: int(userID), Role: role, VIN: vin}, nil
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	parts := strings.Split(auth, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// AuthMiddleware resolves the session or rejects the request. Browser
// clients without a session are redirected to the login page; API clients
// get a 401.
func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				rejectUnauthenticated(w, r)
				return
			}
			a, err := ParseToken(tokenStr, cfg.JWTSecret)
			if err != nil {
				rejectUnauthenticated(w, r)
				return
			}
			ctx := WithAuthContext(r.Context(), a)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := FromContext(r.Context())
		if !ok || !a.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
