package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Current  string          `toml:"current,omitempty"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	Name      string       `toml:"name"`
	Server    serverSchema `toml:"server"`
	Borrower  string       `toml:"borrower,omitempty"`
	Session   string       `toml:"active_session,omitempty"`
	UpdatedAt string       `toml:"updated_at,omitempty"`
}

type serverSchema struct {
	BaseURL  string `toml:"base_url"`
	TokenRef string `toml:"token_ref,omitempty"`
}
