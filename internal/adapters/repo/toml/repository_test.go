package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/invscan/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(ProfilesPathKey, path)
	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "profiles.toml"))

	updated := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	first := domain.Profile{
		Name:          "lager",
		BaseURL:       "https://inventory.example.org",
		Borrower:      "mara",
		ActiveSession: "s-12",
		TokenRef:      "invscan/lager/token",
		UpdatedAt:     updated,
	}
	second := domain.Profile{Name: "dev", BaseURL: "http://127.0.0.1:8085"}

	require.NoError(t, repo.Save(context.Background(), first))
	require.NoError(t, repo.Save(context.Background(), second))

	got, err := repo.GetByName(context.Background(), "lager")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Profile{second, first}, profiles)
}

func TestRepositoryEmptyNameReturnsCurrentProfile(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "profiles.toml"))
	require.NoError(t, repo.Save(context.Background(), domain.Profile{Name: "a", BaseURL: "http://a.local"}))
	require.NoError(t, repo.Save(context.Background(), domain.Profile{Name: "b", BaseURL: "http://b.local"}))

	got, err := repo.GetByName(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	require.NoError(t, repo.Use(context.Background(), "b"))
	got, err = repo.GetByName(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)

	err = repo.Use(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepositorySaveRejectsInvalidProfile(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "profiles.toml"))

	err := repo.Save(context.Background(), domain.Profile{Name: "bad", BaseURL: "ftp://files.local"})
	require.Error(t, err)

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Profile{Name: "default", BaseURL: "http://127.0.0.1:8085"}))

	profilesPath := filepath.Join(homeDir, ".invscan", "profiles.toml")
	assert.Equal(t, profilesPath, repo.Path())
	info, err := os.Stat(profilesPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "profiles.toml"))

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)

	_, err = repo.GetByName(context.Background(), "default")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	require.NoError(t, os.WriteFile(profilesPath, []byte("profiles = ["), 0o600))

	_, err := newTestRepository(t, profilesPath).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode profiles file")
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	require.NoError(t, os.WriteFile(profilesPath, []byte(strings.Join([]string{
		"version = 1",
		"current = \"lager\"",
		"",
		"[[profiles]]",
		"name = \"lager\"",
		"",
		"[profiles.server]",
		"base_url = \"https://inventory.example.org\"",
		"",
	}, "\n")), 0o600))

	got, err := newTestRepository(t, profilesPath).GetByName(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://inventory.example.org", got.BaseURL)
	assert.Equal(t, "invscan/lager/token", got.TokenKey())
	assert.True(t, got.UpdatedAt.IsZero())
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "profiles.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Profile{Name: "default", BaseURL: "http://127.0.0.1:8085"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesPreserveBothProfiles(t *testing.T) {
	t.Parallel()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	repoA := newTestRepository(t, profilesPath)
	repoB := newTestRepository(t, profilesPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.Profile{Name: prefix + strconv.Itoa(i), BaseURL: "http://127.0.0.1:8085"})
		}
	}
	go write(repoA, "a-")
	go write(repoB, "b-")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	profiles, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, perRepoWrites*2)
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	require.NoError(t, os.WriteFile(profilesPath, []byte("version = 999\nprofiles = []\n"), 0o600))

	_, err := newTestRepository(t, profilesPath).List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported profiles schema version")
}
