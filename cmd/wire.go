package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bnema/invscan/internal/adapters/inventory/httpapi"
	inventoryview "github.com/bnema/invscan/internal/adapters/render/inventory"
	tomlrepo "github.com/bnema/invscan/internal/adapters/repo/toml"
	chainstore "github.com/bnema/invscan/internal/adapters/secrets/chain"
	"github.com/bnema/invscan/internal/application"
	"github.com/bnema/invscan/internal/config"
	"github.com/bnema/invscan/internal/domain"
	"github.com/bnema/invscan/internal/ports"
)

type app struct {
	cfg         config.Config
	logger      *slog.Logger
	profiles    *tomlrepo.Repository
	secretStore ports.SecretStore
	render      func(inventoryview.View, inventoryview.RenderOptions) (string, error)
	httpClient  *http.Client
	now         func() time.Time

	profileName *string
}

func wireApp(profileName *string) (*app, error) {
	settings, cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	repo, err := tomlrepo.NewRepository(settings)
	if err != nil {
		return nil, fmt.Errorf("wire profile repository: %w", err)
	}

	secretStore, err := chainstore.NewTokenStore(cfg.SecretsPath, cfg.PassDir)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		profiles:    repo,
		secretStore: secretStore,
		render:      inventoryview.Render,
		httpClient:  http.DefaultClient,
		now:         time.Now,
		profileName: profileName,
	}, nil
}

// session is everything a command needs to talk to one inventory server.
type session struct {
	profile   domain.Profile
	inventory httpapi.Client
}

func (a *app) connect(ctx context.Context) (session, error) {
	profile, err := a.activeProfile(ctx)
	if err != nil {
		return session{}, err
	}

	token := a.cfg.Token
	if token == "" {
		stored, err := a.secretStore.Get(ctx, profile.TokenKey())
		switch {
		case err == nil:
			token = stored
		case errors.Is(err, domain.ErrSecretNotFound):
		default:
			return session{}, fmt.Errorf("load token for profile %s: %w", profile.Name, err)
		}
	}

	return session{
		profile: profile,
		inventory: httpapi.Client{
			BaseURL:        profile.BaseURL,
			Token:          token,
			HTTPClient:     a.httpClient,
			RequestTimeout: a.cfg.HTTPTimeout,
		},
	}, nil
}

// activeProfile picks the --profile flag, then INVSCAN_PROFILE, then the
// current profile. Without any stored profile the configured base URL is used.
func (a *app) activeProfile(ctx context.Context) (domain.Profile, error) {
	name := a.cfg.Profile
	if a.profileName != nil && strings.TrimSpace(*a.profileName) != "" {
		name = strings.TrimSpace(*a.profileName)
	}

	profile, err := a.profiles.GetByName(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) || name != "" {
			return domain.Profile{}, err
		}
		profile = domain.Profile{Name: domain.DefaultProfileName, BaseURL: a.cfg.BaseURL}
	}
	if a.cfg.BaseURLPinned {
		profile.BaseURL = a.cfg.BaseURL
	}

	return profile, nil
}

func (a *app) newItemCache() *application.ItemCache {
	return application.NewCache(domain.ItemKey, application.CacheOptions[domain.ItemID]{
		StaleAfter: a.cfg.StaleAfter(),
		OnStale:    a.reportStale("item"),
	})
}

func (a *app) newEntryCache() *application.EntryCache {
	return application.NewCache(domain.EntryKey, application.CacheOptions[domain.ItemID]{
		StaleAfter: a.cfg.StaleAfter(),
		OnStale:    a.reportStale("session entry"),
	})
}

func (a *app) reportStale(kind string) func(application.StaleMutation[domain.ItemID]) {
	return func(stale application.StaleMutation[domain.ItemID]) {
		err := domain.NewScanError(domain.KindStaleCache, "reconcile "+kind, fmt.Errorf("local edit %s unconfirmed after %s", stale.MutationID, stale.Age.Round(time.Millisecond)))
		a.logger.Warn("stale local edit dropped", "kind", kind, "item", stale.Key, "error", err)
	}
}

func (a *app) sessionID(flag string, profile domain.Profile) domain.InventorySessionID {
	if id := strings.TrimSpace(flag); id != "" {
		return domain.InventorySessionID(id)
	}
	return profile.ActiveSession
}
