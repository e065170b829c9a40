package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/render"
)

const (
	sessionName = "portfolio"

	keyCSRF   = "csrf"
	keyValues = "values"
	keyErrors = "errors"
	keyFlash  = "ack"
	// keyPending holds the submission whose delivery failed, so a retry
	// reuses its ID.
	keyPending = "pending"

	sessionMaxAge = 7 * 24 * 60 * 60
	// sessionMaxLength bounds an encoded session file. A form body is capped
	// at maxBodyBytes and the session keeps at most three copies of it.
	sessionMaxLength = 512 << 10
)

// newSessionStore keeps session values in files under dir (os.TempDir when
// empty); the cookie only carries the signed session ID. Signing and
// encryption keys are derived separately from secret.
func newSessionStore(dir string, secret []byte, secure bool) *sessions.FilesystemStore {
	authKey := sha256.Sum256(append([]byte("auth:"), secret...))
	encKey := sha256.Sum256(append([]byte("enc:"), secret...))
	store := sessions.NewFilesystemStore(dir, authKey[:], encKey[:])
	store.MaxLength(sessionMaxLength)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// visitorSession is the per-visitor page session: the contact form values,
// pending feedback and the CSRF token.
type visitorSession struct {
	*sessions.Session
}

func (s *Server) session(r *http.Request) visitorSession {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		// A cookie signed with an old key still yields a fresh session.
		s.logger.Debug("discarding unreadable session")
	}
	if session == nil {
		session = sessions.NewSession(s.store, sessionName)
	}
	return visitorSession{Session: session}
}

// csrfToken returns the session token, minting one on first use.
func (v visitorSession) csrfToken() string {
	if token, ok := v.Values[keyCSRF].(string); ok && token != "" {
		return token
	}
	token := uuid.NewString()
	v.Values[keyCSRF] = token
	return token
}

func (v visitorSession) validCSRF(provided string) bool {
	expected, ok := v.Values[keyCSRF].(string)
	if !ok || expected == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// values restores the form fields the visitor typed before the last submit.
func (v visitorSession) values() contact.Values {
	var values contact.Values
	raw, ok := v.Values[keyValues].(string)
	if !ok || raw == "" {
		return values
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return contact.Values{}
	}
	return values
}

// takeErrors returns the feedback of the last submit and forgets it.
func (v visitorSession) takeErrors() render.ErrorMapping {
	var mapping render.ErrorMapping
	raw, ok := v.Values[keyErrors].(string)
	delete(v.Values, keyErrors)
	if !ok || raw == "" {
		return mapping
	}
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return render.ErrorMapping{}
	}
	return mapping
}

func (v visitorSession) takeFlash() string {
	for _, flash := range v.Flashes(keyFlash) {
		if message, ok := flash.(string); ok && message != "" {
			return message
		}
	}
	return ""
}

// remember records the result of a submit so the next page view shows it.
func (v visitorSession) remember(outcome contact.Outcome, values contact.Values) {
	v.rememberValues(outcome, values)
	if outcome.Acknowledged() {
		delete(v.Values, keyErrors)
		v.AddFlash(outcome.Message, keyFlash)
		return
	}
	if encoded, err := json.Marshal(render.MapOutcome(outcome)); err == nil {
		v.Values[keyErrors] = string(encoded)
	}
}

// pending restores the submission left by a failed delivery.
func (v visitorSession) pending() (contact.Submission, bool) {
	var submission contact.Submission
	raw, ok := v.Values[keyPending].(string)
	if !ok || raw == "" {
		return submission, false
	}
	if err := json.Unmarshal([]byte(raw), &submission); err != nil || submission.ID == "" {
		return contact.Submission{}, false
	}
	return submission, true
}

// rememberPending stores the controller's pending submission, or clears it
// once delivered or abandoned.
func (v visitorSession) rememberPending(controller *contact.Controller) {
	submission, ok := controller.Pending()
	if !ok {
		delete(v.Values, keyPending)
		return
	}
	if encoded, err := json.Marshal(submission); err == nil {
		v.Values[keyPending] = string(encoded)
	}
}

// rememberValues keeps the form fields of a rejected or failed submit and
// clears them once a message is acknowledged.
func (v visitorSession) rememberValues(outcome contact.Outcome, values contact.Values) {
	if outcome.Acknowledged() || values.IsZero() {
		delete(v.Values, keyValues)
		return
	}
	if encoded, err := json.Marshal(values); err == nil {
		v.Values[keyValues] = string(encoded)
	}
}
