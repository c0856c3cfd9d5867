// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	CookieName string
	Store      *sessions.CookieStore
}

// NewHandler builds a logout Handler for the auth cookie named cookieName.
// In production the deletion cookie is Secure with SameSite=None so it
// reaches cross-site frontends; otherwise SameSite=Strict. A nil or empty
// key gets a random one, which is enough since the cookie is only cleared.
func NewHandler(cookieName string, key []byte, production bool, logger *zap.Logger) *Handler {
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
	if production {
		store.Options.SameSite = http.SameSiteNoneMode
	}
	return &Handler{
		Log:        logger,
		CookieName: cookieName,
		Store:      store,
	}
}

// ServeLogout handles GET /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	session, err := h.Store.Get(r, h.CookieName)
	if err != nil {
		// The cookie may have been issued elsewhere; clear it regardless.
		h.Log.Debug("logout: cookie not decodable", zap.Error(err))
	}

	opts := *h.Store.Options
	opts.MaxAge = -1 // delete immediately
	session.Options = &opts

	if err := session.Save(r, w); err != nil {
		h.Log.Error("logout: clear cookie", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Failed to logout")
		return
	}

	httpjson.Write(w, http.StatusOK, httpjson.Result{Success: true, Message: "Logged out successfully"})
}
