package cli

import (
	"os"
	"strings"

	"github.com/aretw0/gambit/pkg/adapters/file"
)

// Environment variables read when the matching flag is not set.
const (
	EnvRedisAddr = "GAMBIT_REDIS_ADDR"
	EnvAddr      = "GAMBIT_ADDR"
	EnvChart     = "GAMBIT_CHART"
	EnvStoreDir  = "GAMBIT_STORE_DIR"
	// EnvStoreKey enables encryption at rest. It has no flag.
	EnvStoreKey = "GAMBIT_STORE_KEY"
)

// DefaultAddr is the listen address of gambit serve.
const DefaultAddr = ":8080"

// Config carries the settings shared by every command.
type Config struct {
	// ChartPath is a YAML chart to run instead of the built-in chess chart.
	ChartPath string
	// RedisAddr selects the Redis store. Empty means in-memory.
	RedisAddr string
	// Addr is the HTTP listen address.
	Addr string
	// StoreDir selects the file store when no Redis address is set.
	StoreDir string
	// StoreKey encrypts stored snapshots (hex or base64, 32 bytes).
	StoreKey string
	// SessionID persists the game under this ID.
	SessionID string
	Debug     bool
	JSONLogs  bool
}

// Resolve fills empty fields from the environment and applies defaults.
// A session without Redis is kept in the default file store directory.
func (c Config) Resolve() Config {
	return c.resolve(os.Getenv)
}

func (c Config) resolve(getenv func(string) string) Config {
	fallback := func(v *string, env, def string) {
		if strings.TrimSpace(*v) != "" {
			return
		}
		if e := strings.TrimSpace(getenv(env)); e != "" {
			*v = e
			return
		}
		*v = def
	}
	fallback(&c.ChartPath, EnvChart, "")
	fallback(&c.RedisAddr, EnvRedisAddr, "")
	fallback(&c.Addr, EnvAddr, DefaultAddr)
	fallback(&c.StoreKey, EnvStoreKey, "")
	storeDir := ""
	if c.SessionID != "" && c.RedisAddr == "" {
		storeDir = file.DefaultDir
	}
	fallback(&c.StoreDir, EnvStoreDir, storeDir)
	return c
}
