package lsp

import (
	"encoding/json"

	"tptpfmt/internal/config"
)

// lspSettings is the client configuration namespace, e.g.
//
//	{"tptpfmt": {"external": {"path": "/usr/bin/tptp4X", "prefer": true}}}
type lspSettings struct {
	TPTP tptpSettings `json:"tptpfmt"`
}

type tptpSettings struct {
	External       externalSettings `json:"external"`
	MaxDiagnostics *int             `json:"maxDiagnostics,omitempty"`
	Trace          *bool            `json:"trace,omitempty"`
}

type externalSettings struct {
	Path   *string `json:"path,omitempty"`
	Prefer *bool   `json:"prefer,omitempty"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	if s.applySettings(params.Settings) {
		s.scheduleAll()
	}
	return nil
}

// applySettings overlays client settings on the current config and reports
// whether anything changed. Unknown or malformed settings are ignored.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return false
	}
	st := settings.TPTP

	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg
	if st.External.Path != nil {
		cfg.External.Path = *st.External.Path
	}
	if st.External.Prefer != nil {
		cfg.External.Prefer = *st.External.Prefer
	}
	if st.Trace != nil {
		s.traceLSP = *st.Trace
	}
	changed := cfg.Fingerprint() != s.cfg.Fingerprint()
	s.cfg = cfg
	if st.MaxDiagnostics != nil && *st.MaxDiagnostics > 0 && *st.MaxDiagnostics != s.maxDiagnostics {
		s.maxDiagnostics = *st.MaxDiagnostics
		changed = true
	}
	return changed
}

// currentConfig returns the config snapshot used by one request.
func (s *Server) currentConfig() (config.Config, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg, s.maxDiagnostics
}
