package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/contact"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/page"
	"github.com/goliatone/go-portfolio/pkg/site"
)

// CSRFHeader carries the session token on JSON submissions.
const CSRFHeader = "X-CSRF-Token"

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST "+ContactAction, s.handleContactForm)
	mux.HandleFunc("POST "+ContactAPI, s.handleContactAPI)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET "+AssetPrefix+"/", http.StripPrefix(AssetPrefix+"/", http.FileServerFS(page.AssetsFS())))
	if s.staticDir != "" {
		mux.Handle("GET "+RendersPrefix+"/", http.StripPrefix(RendersPrefix+"/", http.FileServer(http.Dir(s.staticDir))))
	}
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	session := s.session(r)
	token := session.csrfToken()
	values := session.values()
	feedback := session.takeErrors()
	flash := session.takeFlash()

	query := r.URL.Query()
	result, err := s.site.Compose(r.Context(), site.Request{
		Renderer:     query.Get("format"),
		Accept:       r.Header.Get("Accept"),
		ThemeName:    query.Get("theme"),
		ThemeVariant: query.Get("variant"),
		Options: render.PageOptions{
			Values:     valuesMap(values),
			Errors:     feedback.Fields,
			FormErrors: feedback.Form,
			Flash:      flash,
			Hidden:     []render.HiddenField{render.CSRFToken(token)},
			Form:       render.FormAction{Action: ContactAction, Endpoint: ContactAPI},
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, render.ErrRendererNotFound):
			http.Error(w, "unknown format", http.StatusNotFound)
		case errors.Is(err, site.ErrThemeNotFound):
			http.Error(w, "unknown theme", http.StatusBadRequest)
		default:
			s.logger.Error("render page failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	if err := session.Save(r, w); err != nil {
		s.logger.Error("save session failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Vary", "Accept, Cookie")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Body); err != nil {
		s.logger.Debug("write page failed", zap.Error(err))
	}
}

// handleContactForm serves browsers without script: it submits, stores the
// outcome in the session and redirects back to the contact section.
func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	session := s.session(r)
	if !session.validCSRF(r.PostForm.Get(render.CSRFFieldName)) {
		s.logger.Warn("contact form rejected: invalid CSRF token")
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	outcome, values := s.submit(r, session, formValues(r.PostForm))
	session.remember(outcome, values)
	if err := session.Save(r, w); err != nil {
		s.logger.Error("save session failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/#contact", http.StatusSeeOther)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is the JSON body returned by the contact API.
type ContactResponse struct {
	Status     string              `json:"status"`
	Message    string              `json:"message,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"form_errors,omitempty"`
}

func (s *Server) handleContactAPI(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ContactResponse{Status: "error", Message: "invalid request body"})
		return
	}

	session := s.session(r)
	if !session.validCSRF(r.Header.Get(CSRFHeader)) {
		s.logger.Warn("contact request rejected: invalid CSRF token")
		s.writeJSON(w, http.StatusForbidden, ContactResponse{Status: "error", Message: "invalid CSRF token"})
		return
	}

	outcome, values := s.submit(r, session, contact.Values{Name: req.Name, Email: req.Email, Message: req.Message})
	// The page script shows the outcome itself; only the values persist.
	session.rememberValues(outcome, values)
	if err := session.Save(r, w); err != nil {
		s.logger.Error("save session failed", zap.Error(err))
	}

	mapping := render.MapOutcome(outcome)
	s.writeJSON(w, outcomeStatus(outcome.Status), ContactResponse{
		Status:     outcome.Status.String(),
		Message:    outcome.Message,
		Errors:     mapping.Fields,
		FormErrors: mapping.Form,
	})
}

// submit runs one submission through a fresh controller seeded with values
// and returns the outcome plus the values the form should show next. A
// submission left pending in the session by a failed delivery is handed back
// to the controller so an unchanged retry keeps its ID.
func (s *Server) submit(r *http.Request, session visitorSession, values contact.Values) (contact.Outcome, contact.Values) {
	var extra []contact.Option
	if pending, ok := session.pending(); ok {
		extra = append(extra, contact.WithPendingSubmission(pending))
	}
	controller := s.site.NewController(values, extra...)
	outcome := controller.Submit(r.Context())
	session.rememberPending(controller)
	return outcome, controller.Values()
}

func outcomeStatus(status contact.Status) int {
	switch status {
	case contact.StatusAcknowledged:
		return http.StatusOK
	case contact.StatusRejected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Debug("write json failed", zap.Error(err))
	}
}

func formValues(form url.Values) contact.Values {
	return contact.Values{
		Name:    form.Get(string(contact.FieldName)),
		Email:   form.Get(string(contact.FieldEmail)),
		Message: form.Get(string(contact.FieldMessage)),
	}
}

func valuesMap(values contact.Values) map[string]string {
	out := make(map[string]string, len(contact.Fields()))
	for _, field := range contact.Fields() {
		out[string(field)] = values.Get(field)
	}
	return out
}
