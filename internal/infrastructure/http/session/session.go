package session

import (
	"crypto/sha256"
	"encoding/gob"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	cookieName       = "storefront_session"
	authenticatedKey = "admin_authenticated"
)

// Notice variants understood by the layout
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notice is an ephemeral message shown once on the next rendered page
type Notice struct {
	Title       string
	Description string
	Variant     string
}

func init() {
	gob.Register(Notice{})
}

// Manager keeps the admin authentication flag and pending notices in a signed
// browser-session cookie
type Manager struct {
	store  sessions.Store
	logger *slog.Logger
}

// NewManager creates a cookie backed session manager. The cookie is signed and
// encrypted since a notice may carry the admin credential. With an empty
// secret random keys are generated, so sessions do not survive a restart.
func NewManager(secret string, logger *slog.Logger) (*Manager, error) {
	var hashKey, blockKey []byte
	if secret == "" {
		hashKey = securecookie.GenerateRandomKey(64)
		blockKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil || blockKey == nil {
			return nil, errors.New("failed to generate session keys")
		}
		logger.Warn("SESSION_SECRET not set, using random session keys")
	} else {
		hashKey = []byte(secret)
		sum := sha256.Sum256([]byte("storefront-session-encryption:" + secret))
		blockKey = sum[:]
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, logger: logger}, nil
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		// a cookie signed with another key yields a fresh session
		m.logger.DebugContext(r.Context(), "Discarding unreadable session cookie",
			slog.String("error", err.Error()),
		)
	}
	return sess
}

// IsAuthenticated reports whether the browser session passed the admin gate
func (m *Manager) IsAuthenticated(r *http.Request) bool {
	authenticated, _ := m.get(r).Values[authenticatedKey].(bool)
	return authenticated
}

// SetAuthenticated records the gate outcome for the browser session
func (m *Manager) SetAuthenticated(w http.ResponseWriter, r *http.Request, authenticated bool) error {
	sess := m.get(r)
	if authenticated {
		sess.Values[authenticatedKey] = true
	} else {
		delete(sess.Values, authenticatedKey)
	}
	return sess.Save(r, w)
}

// Notify queues a notice for the next page. Failures are logged and dropped.
func (m *Manager) Notify(w http.ResponseWriter, r *http.Request, notice Notice) {
	if notice.Variant == "" {
		notice.Variant = VariantDefault
	}

	sess := m.get(r)
	sess.AddFlash(notice)
	if err := sess.Save(r, w); err != nil {
		m.logger.ErrorContext(r.Context(), "Failed to queue notice",
			slog.String("title", notice.Title),
			slog.String("error", err.Error()),
		)
	}
}

// Notices pops the pending notices. It must run before the response body is
// written since it rewrites the cookie.
func (m *Manager) Notices(w http.ResponseWriter, r *http.Request) []Notice {
	sess := m.get(r)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}

	if err := sess.Save(r, w); err != nil {
		m.logger.ErrorContext(r.Context(), "Failed to clear notices",
			slog.String("error", err.Error()),
		)
	}

	notices := make([]Notice, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
