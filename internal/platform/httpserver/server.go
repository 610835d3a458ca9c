package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	ballotservice "quorum/contexts/election-core/ballot-service"
	balloterrors "quorum/contexts/election-core/ballot-service/domain/errors"
	ballothttp "quorum/contexts/election-core/ballot-service/transport/http"
	eligibilityservice "quorum/contexts/election-core/eligibility-service"
	eligibilityerrors "quorum/contexts/election-core/eligibility-service/domain/errors"
	eligibilityhttp "quorum/contexts/election-core/eligibility-service/transport/http"
	registryservice "quorum/contexts/voter-access/registry-service"
	registryerrors "quorum/contexts/voter-access/registry-service/domain/errors"
	registryhttp "quorum/contexts/voter-access/registry-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "quorum/internal/platform/httpserver/docs"
)

const sessionCookieName = "voter_session"

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	registry    registryservice.Module
	eligibility eligibilityservice.Module
	ballots     ballotservice.Module

	verifyPayloads bool
	redirectURL    string
}

func New(
	registry registryservice.Module,
	eligibility eligibilityservice.Module,
	ballots ballotservice.Module,
	verifyPayloads bool,
	redirectURL string,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		registry:       registry,
		eligibility:    eligibility,
		ballots:        ballots,
		verifyPayloads: verifyPayloads,
		redirectURL:    redirectURL,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routing table for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/auth/callback", s.handleAuthCallback)
	if !s.verifyPayloads {
		// Dev-only voter fabrication. Production configs verify digests and
		// never expose this route.
		s.mux.HandleFunc("POST /api/auth/bypass", s.handleAuthBypass)
	}

	s.mux.HandleFunc("GET /api/session/voter", s.handleSessionVoter)
	s.mux.HandleFunc("GET /api/elections", s.handleListElections)
	s.mux.HandleFunc("POST /api/ballots", s.handleSubmitBallot)
}

func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	payload := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	resp, err := s.registry.Handler.CallbackHandler(r.Context(), payload, s.verifyPayloads)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}

	s.setSessionCookie(w, resp.Token)
	http.Redirect(w, r, s.redirectURL, http.StatusSeeOther)
}

func (s *Server) handleAuthBypass(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_form", "request body must be a valid form")
		return
	}
	payload := make(map[string]string)
	for key, values := range r.PostForm {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	resp, err := s.registry.Handler.CallbackHandler(r.Context(), payload, false)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}

	s.setSessionCookie(w, resp.Token)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessionVoter(w http.ResponseWriter, r *http.Request) {
	token, ok := s.sessionToken(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_session", "session cookie is required")
		return
	}
	resp, err := s.registry.Handler.SessionVoterHandler(r.Context(), token)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	voterKey, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	resp, err := s.eligibility.Handler.ListElectionsHandler(r.Context(), voterKey)
	if err != nil {
		writeEligibilityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitBallot(w http.ResponseWriter, r *http.Request) {
	voterKey, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req ballothttp.SubmitBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballots.Handler.SubmitBallotHandler(r.Context(), voterKey, req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// authenticate resolves the session cookie to a voter key, writing 401 on
// failure. The bool reports whether the request may proceed.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := s.sessionToken(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_session", "session cookie is required")
		return "", false
	}
	voter, err := s.registry.Service.ResolveSession(r.Context(), token)
	if err != nil {
		writeRegistryDomainError(w, err)
		return "", false
	}
	return voter.VoterKey, true
}

func (s *Server) sessionToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrIncompleteIdentity):
		writeRegistryError(w, http.StatusBadRequest, "incomplete_identity", err.Error())
	case errors.Is(err, registryerrors.ErrTamperedIdentity):
		writeRegistryError(w, http.StatusUnauthorized, "tampered_identity", err.Error())
	case errors.Is(err, registryerrors.ErrIneligibleIdentity):
		writeRegistryError(w, http.StatusUnauthorized, "ineligible_identity", err.Error())
	case errors.Is(err, registryerrors.ErrInvalidSessionToken):
		writeRegistryError(w, http.StatusUnauthorized, "invalid_session", err.Error())
	case errors.Is(err, registryerrors.ErrVoterNotFound):
		writeRegistryError(w, http.StatusUnauthorized, "unknown_voter", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEligibilityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, eligibilityerrors.ErrVoterNotFound):
		writeEligibilityError(w, http.StatusUnauthorized, "unknown_voter", err.Error())
	case errors.Is(err, eligibilityerrors.ErrElectionNotFound):
		writeEligibilityError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, eligibilityerrors.ErrRuleMissing):
		writeEligibilityError(w, http.StatusInternalServerError, "rule_missing", "internal server error")
	default:
		writeEligibilityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balloterrors.ErrMalformedBallot):
		writeBallotError(w, http.StatusBadRequest, "malformed_ballot", err.Error())
	case errors.Is(err, balloterrors.ErrInvalidCandidate):
		writeBallotError(w, http.StatusBadRequest, "invalid_candidate", err.Error())
	case errors.Is(err, balloterrors.ErrNotEligible):
		writeBallotError(w, http.StatusForbidden, "not_eligible", err.Error())
	case errors.Is(err, balloterrors.ErrElectionNotFound):
		writeBallotError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, balloterrors.ErrAlreadyVoted):
		writeBallotError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, eligibilityerrors.ErrRuleMissing):
		writeBallotError(w, http.StatusInternalServerError, "rule_missing", "internal server error")
	case errors.Is(err, balloterrors.ErrSubmissionFailed):
		writeBallotError(w, http.StatusInternalServerError, "submission_failed", "internal server error")
	default:
		writeBallotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeEligibilityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, eligibilityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeBallotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ballothttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
