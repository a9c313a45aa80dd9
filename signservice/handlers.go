package signservice

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-kin-bridge/claims"
	"github.com/rs/zerolog"
)

const contentTypeJSON = "application/json; charset=utf-8"

type signResponse struct {
	JWT string `json:"jwt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// Sign signs a {subject, payload} claim and answers {jwt} or {error}.
func (s *Server) Sign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		logger := zerolog.Ctx(r.Context())

		var claim claims.Claim
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBytes))
		if err := decoder.Decode(&claim); err != nil {
			s.metrics.observe("", OutcomeRejected, started)
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if !claim.Subject.Valid() {
			s.metrics.observe(claim.Subject, OutcomeRejected, started)
			writeError(w, http.StatusBadRequest, "unknown subject "+string(claim.Subject))
			return
		}
		if claim.Payload == nil {
			s.metrics.observe(claim.Subject, OutcomeRejected, started)
			writeError(w, http.StatusBadRequest, "payload must be an object")
			return
		}

		jwt, err := s.signer.Sign(r.Context(), claim)
		if err != nil {
			logger.Error().Err(err).Str("subject", string(claim.Subject)).Msg("failed to sign claim")
			s.metrics.observe(claim.Subject, OutcomeFailed, started)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		logger.Debug().Str("subject", string(claim.Subject)).Msg("claim signed")
		s.metrics.observe(claim.Subject, OutcomeSigned, started)
		writeJSON(w, http.StatusOK, signResponse{JWT: jwt})
	}
}

// Introspect reports whether a form or JSON supplied token was issued by this service.
func (s *Server) Introspect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)

		var rawToken string
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var body struct {
				Token string `json:"token"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
				return
			}
			rawToken = body.Token
		} else {
			if err := r.ParseForm(); err != nil {
				writeError(w, http.StatusBadRequest, "Failed to parse form data")
				return
			}
			rawToken = r.FormValue("token")
		}
		if rawToken == "" {
			writeError(w, http.StatusBadRequest, "token parameter is required")
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, s.signer.Introspect(rawToken))
	}
}

// JWKS publishes the public half of the signing key so token recipients can verify signatures.
func (s *Server) JWKS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jwks, err := s.signer.GetJWKS()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to get JWKS: "+err.Error())
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		writeJSON(w, http.StatusOK, jwks)
	}
}

func (s *Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
