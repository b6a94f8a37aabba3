package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

const sessionCookie = "sid"

// sessionID returns the session id carried by the request cookie, "" when there is none.
// With create set, a missing or unrecognised id is replaced by a fresh one and the cookie
// is written to w.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request, create bool) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	if !create {
		return ""
	}

	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	return sid
}
