package internal

import (
	"os"
	"strings"
)

// Config carries the two Supabase credentials. Their presence toggles the
// remote backend; when either is missing the application deterministically
// runs against the local fallback store instead of crashing.
type Config struct {
	SupabaseURL     string
	SupabaseAnonKey string
}

// ConfigFromEnv reads SUPABASE_URL and SUPABASE_ANON_KEY. Values are
// whitespace-trimmed (a common copy/paste issue with anon keys).
func ConfigFromEnv() Config {
	return Config{
		SupabaseURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		SupabaseAnonKey: strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
	}
}

// Configured reports whether remote-backend mode is enabled.
func (c Config) Configured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}
