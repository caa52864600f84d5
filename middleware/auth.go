package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deccan0963-netizen/Tasks/logging"
)

// Claims carried in the bearer token issued at login.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	RoleID   int    `json:"roleId"`
	jwt.RegisteredClaims
}

// Auth validates bearer tokens and stamps the verified identity into request
// headers so handlers read Role and UserId without touching the token again.
type Auth struct {
	secretKey []byte
}

func NewAuth(secretKey []byte) *Auth {
	return &Auth{secretKey: secretKey}
}

func (a *Auth) GenerateToken(userID, username, role string, roleID int) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RoleID:   roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secretKey)
}

func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Middleware rejects requests without a valid bearer token whose role is in
// allowedRoles, and forwards the claims as Role, UserId and RoleId headers.
func (a *Auth) Middleware(next http.Handler, allowedRoles []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			logging.Logger.Warnf("Event ID: TOKEN_REJECTED, Description: Token validation failed: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if claims.Role == "" {
			http.Error(w, "Missing role in token", http.StatusUnauthorized)
			return
		}
		if !contains(allowedRoles, claims.Role) {
			http.Error(w, "Access forbidden", http.StatusForbidden)
			return
		}

		r.Header.Set("Role", claims.Role)
		r.Header.Set("UserId", claims.UserID)
		r.Header.Set("RoleId", strconv.Itoa(claims.RoleID))
		next.ServeHTTP(w, r)
	})
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
