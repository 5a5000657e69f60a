package common

import (
	"net/http"

	"github.com/dbglance/dbglance/internal/session"
)

// CookieName is the session cookie carrying the session ID and flashes.
const CookieName = "dbglance"

// ResolveState returns the server-side session state for the request,
// creating a new session (and rewriting the cookie) when the request
// carries no valid session ID.
func (d Deps) ResolveState(w http.ResponseWriter, r *http.Request) *session.State {
	sess, _ := d.Sessions.Get(r, CookieName)

	id, _ := sess.Values["sid"].(string)
	st := d.Manager.Get(id)
	if st.ID != id {
		sess.Values["sid"] = st.ID
		_ = sess.Save(r, w)
	}
	return st
}

// TakeFlashes pops and returns the pending flash messages.
func (d Deps) TakeFlashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := d.Sessions.Get(r, CookieName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// RedirectWithFlash stores a flash message and redirects. Used by the
// connection guard: query and visualization views bounce to the upload
// view with an explanation instead of rendering a broken page.
func (d Deps) RedirectWithFlash(w http.ResponseWriter, r *http.Request, msg, target string) {
	sess, _ := d.Sessions.Get(r, CookieName)
	sess.AddFlash(msg)
	_ = sess.Save(r, w)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
