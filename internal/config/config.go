package config // package config loads application configuration from environment variables

import (
	"os"            // os provides access to environment variables and the home directory
	"path/filepath" // filepath joins the default session file path
	"strings"       // strings trims trailing slashes off the base URL

	_ "github.com/joho/godotenv/autoload" // load a local .env file when present
)

// DefaultBaseURL is where the shop API is expected to listen when no
// override is configured. Documented in the README and matched by the
// stub server's default port.
const DefaultBaseURL = "http://localhost:8081/api"

// Config holds all runtime configuration for the client. Every value has
// a usable default so the binary runs with an empty environment.
type Config struct {
	BaseURL     string // shop API base URL (SWEETSHOP_API_URL)
	SessionFile string // path of the persisted session file (SWEETSHOP_SESSION_FILE)
}

// Load reads the client configuration from environment variables,
// falling back to the documented defaults.
func Load() Config {
	return Config{
		BaseURL:     getEnv("SWEETSHOP_API_URL", DefaultBaseURL),
		SessionFile: getEnv("SWEETSHOP_SESSION_FILE", defaultSessionFile()),
	}
}

// getEnv returns the value of key or def when the variable is unset or
// empty. Trailing slashes are trimmed so path joining stays predictable.
func getEnv(key, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	return strings.TrimRight(v, "/")
}

// defaultSessionFile places the session under the user's home directory,
// the terminal-client analog of browser local storage. Falls back to the
// working directory when the home directory cannot be resolved.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sweetshop-session.json"
	}
	return filepath.Join(home, ".sweetshop", "session.json")
}
