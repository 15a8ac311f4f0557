package rest

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
)

const (
	authCookieName = "casatrack_auth"
	authCookieTTL  = 30 * 24 * time.Hour

	// authTokenLabel is the fixed message the cookie token is derived
	// from. Changing it invalidates every issued cookie.
	authTokenLabel = "casatrack-auth-v1"
)

// AuthHandler implements the shared-password gate. There is no server
// session store; the cookie carries a token derived from the password,
// never the password itself.
type AuthHandler struct {
	password     string
	secureCookie bool
}

// NewAuthHandler creates the handler. An empty password disables the
// gate entirely, which is only intended for local development.
func NewAuthHandler(password string, secureCookie bool) *AuthHandler {
	return &AuthHandler{password: password, secureCookie: secureCookie}
}

// token derives the cookie value: an HMAC of a fixed label under the
// password. Rotating the password invalidates all cookies at once.
func (h *AuthHandler) token() string {
	mac := hmac.New(sha256.New, []byte(h.password))
	mac.Write([]byte(authTokenLabel))
	return hex.EncodeToString(mac.Sum(nil))
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login compares the submitted password in constant time and sets the
// auth cookie on success.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		WriteJSONError(w, http.StatusUnauthorized, "wrong password")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    h.token(),
		Path:     "/",
		Expires:  time.Now().Add(authCookieTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Middleware rejects requests without a valid auth cookie.
func (h *AuthHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.password == "" {
			next.ServeHTTP(w, r)
			return
		}
		cookie, err := r.Cookie(authCookieName)
		if err != nil || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(h.token())) != 1 {
			WriteDomainError(w, domain.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
