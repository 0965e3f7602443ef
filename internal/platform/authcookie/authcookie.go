// Package authcookie implements the signed auth_token cookie that every
// protected endpoint is authorized through, and the Gin middleware
// enforcing it.
package authcookie

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

// CookieName is the name of the signed auth cookie.
const CookieName = "auth_token"

// cookieMaxAge is the auth cookie lifetime of 30 days.
const cookieMaxAge = 30 * 24 * 60 * 60

// forbiddenBody is the fixed response body for every authorization failure.
var forbiddenBody = gin.H{"error": "You do not have permission to access this profile."}

// ErrMalformedCookie is returned when a decoded cookie value does not
// contain the "<username>:<token>" form.
var ErrMalformedCookie = errors.New("malformed auth cookie")

// Authenticator checks a decoded username/token pair against stored state.
// Following Go convention: the interface is defined by the consumer
// (this middleware), not the provider (the accounts usecase).
type Authenticator interface {
	// Authenticate reports whether the token exactly equals the stored
	// token of an existing profile with that username. The error is
	// reserved for persistence failures.
	Authenticate(ctx context.Context, username, token string) (bool, error)
}

// Codec signs and verifies the auth cookie value "<username>:<token>".
// The value is HMAC-signed, so a client cannot mint or alter it, but it
// is not encrypted.
type Codec struct {
	sc *securecookie.SecureCookie
}

// NewCodec creates a Codec signing with the given secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{sc: securecookie.New(secret, nil)}
}

// Encode signs "<username>:<token>" into a cookie value.
func (c *Codec) Encode(username, token string) (string, error) {
	return c.sc.Encode(CookieName, username+":"+token)
}

// Decode verifies a cookie value and splits it on the first ":" into
// username and token.
func (c *Codec) Decode(value string) (username, token string, err error) {
	var pair string
	if err := c.sc.Decode(CookieName, value, &pair); err != nil {
		return "", "", err
	}
	username, token, ok := strings.Cut(pair, ":")
	if !ok {
		return "", "", ErrMalformedCookie
	}
	return username, token, nil
}

// SetCookie sets or refreshes the signed auth cookie for the given
// profile identity. Successful authenticated operations call this to
// confirm and extend the session.
func (c *Codec) SetCookie(ctx *gin.Context, username, token string) {
	value, err := c.Encode(username, token)
	if err != nil {
		// Signing can only fail on misconfiguration; the response itself
		// already succeeded, so log and move on.
		slog.Error("failed to encode auth cookie", "error", err, "username", username)
		return
	}
	ctx.SetCookie(CookieName, value, cookieMaxAge, "/", "", false, true)
}

// AuthRequired returns a Gin middleware that rejects any request lacking
// a valid signed auth_token cookie with 403 and the fixed error body.
//
// Note: validity means "some existing profile's current token", not
// "the profile named in the URL path"; the check is deliberately not
// scoped to the :username path parameter.
func AuthRequired(codec *Codec, auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, forbiddenBody)
			return
		}
		username, token, err := codec.Decode(raw)
		if errors.Is(err, ErrMalformedCookie) {
			// A signed value without the "<username>:<token>" form can only
			// come from the server itself; treat it as an internal failure
			// rather than an authorization one.
			slog.Error("malformed auth cookie value", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, forbiddenBody)
			return
		}
		ok, err := auth.Authenticate(c.Request.Context(), username, token)
		if err != nil {
			slog.Error("auth check failed", "error", err, "username", username)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, forbiddenBody)
			return
		}
		c.Next()
	}
}
