package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const DefaultProfileName = "default"

// Profile binds the CLI to one inventory server.
type Profile struct {
	Name          string
	BaseURL       string
	Borrower      string
	ActiveSession InventorySessionID
	TokenRef      string
	UpdatedAt     time.Time
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("base url is required")
	}
	parsed, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base url must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("base url host is required")
	}

	return nil
}

func (p Profile) TokenKey() string {
	if p.TokenRef != "" {
		return p.TokenRef
	}
	return fmt.Sprintf("invscan/%s/token", p.Name)
}
