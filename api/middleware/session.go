package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/shopcart/pkg/config"
	"github.com/angelmondragon/shopcart/pkg/logger"
	"github.com/angelmondragon/shopcart/pkg/session"
)

// Session resolves the visitor from the signed session cookie, minting a
// new session when the cookie is missing, expired or forged. The session
// id selects the visitor's cart slot.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sessionID string
			if c, err := r.Cookie(cfg.CookieName); err == nil && c.Value != "" {
				id, err := session.Parse(cfg, c.Value)
				if err == nil {
					sessionID = id
				} else if logg != nil {
					logg.Debug(logg.WithField(ctx, "reason", err.Error()), "session.cookie_rejected")
				}
			}

			if sessionID == "" {
				sessionID = session.NewID()
				now := time.Now()
				token, err := session.Mint(cfg, now, sessionID)
				if err != nil {
					if logg != nil {
						logg.Error(ctx, "session.mint_failed", err)
					}
				} else {
					http.SetCookie(w, &http.Cookie{
						Name:     cfg.CookieName,
						Value:    token,
						Path:     "/",
						Expires:  now.Add(cfg.TTL),
						MaxAge:   int(cfg.TTL.Seconds()),
						HttpOnly: true,
						Secure:   cfg.Secure,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
