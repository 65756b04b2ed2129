package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// requiredConfig returns the minimal set of values that passes validation
// once defaults are applied.
func requiredConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AccessTokenSecret:  "access-secret",
			RefreshTokenSecret: "refresh-secret",
		},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/onboard"}},
		Adapter: Adapter{ObjectStore: ObjectStore{Bucket: "uploads"}},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs fails
// validation because required secrets are missing.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_AppliesDefaults verifies that fields left empty by every source
// receive their defaults.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, requiredConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultAppName, cfg.App.Name)
	assert.Equal(t, DefaultBcryptCost, cfg.App.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.App.AccessTokenDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.App.RefreshTokenDuration)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadSize)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, 2, cfg.Adapter.ObjectStore.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Adapter.ObjectStore.CallTimeout)
	assert.Equal(t, "https://uploads.s3.us-east-1.amazonaws.com", cfg.Adapter.ObjectStore.PublicBaseURL)
	assert.Equal(t, DefaultQueueSize, cfg.Workers.QueueSize)
}

// TestBuild_PublicBaseURLFromEndpoint verifies that a custom endpoint yields
// a path-style public URL.
func TestBuild_PublicBaseURLFromEndpoint(t *testing.T) {
	base := requiredConfig()
	base.Adapter.ObjectStore.Endpoint = "http://127.0.0.1:9000/"

	b := newConfigBuilder()
	b.configs = append(b.configs, base)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Adapter.ObjectStore.Endpoint)
	assert.Equal(t, "http://127.0.0.1:9000/uploads", cfg.Adapter.ObjectStore.PublicBaseURL)
}

// TestBuild_LaterSourceWins verifies that non-zero fields from later configs
// override earlier ones while zero fields do not erase them.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	first := requiredConfig()
	first.App.Version = "1.0.0"
	first.App.TokenIssuer = "env-issuer"

	b.configs = append(b.configs,
		first,
		&StructuredConfig{App: App{TokenIssuer: "flag-issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "access-secret", cfg.App.AccessTokenSecret)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

// TestWithEnv_SetsErrorOnBadValue verifies that an unparsable variable is
// recorded on the builder.
func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("APP_BCRYPT_COST", "ten")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_AppendsParsedFlags verifies that parsed flags are appended.
func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-bucket", "flag-bucket"}))

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-bucket", b.configs[0].Adapter.ObjectStore.Bucket)
}

// TestWithFlags_SetsErrorOnUnknownFlag verifies flag errors reach the builder.
func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder()
	b.withFlags([]string{"-nope"})

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.App.TokenIssuer = "json-issuer"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// TestBuilder_FullChain verifies env → flags → json precedence end to end.
func TestBuilder_FullChain(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.SupportEmail = "json-support@example.com"
	payload.Adapter.ObjectStore.Bucket = "json-bucket"
	path := writeTempJSONConfig(t, payload)

	t.Setenv("APP_ACCESS_TOKEN_SECRET", "env-access")
	t.Setenv("APP_REFRESH_TOKEN_SECRET", "env-refresh")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env/db")
	t.Setenv("ADAPTER_OBJECT_STORE_BUCKET", "env-bucket")

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags([]string{"-d", "postgres://flag/db", "-c", path}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, "env-access", cfg.App.AccessTokenSecret)
	assert.Equal(t, "postgres://flag/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "json-bucket", cfg.Adapter.ObjectStore.Bucket)
	assert.Equal(t, "json-support@example.com", cfg.App.SupportEmail)
}
