package config

// DefaultEnvAliases maps config keys to extra environment variable names
// accepted in addition to the LAUNCHPAD_ prefixed form.
func DefaultEnvAliases() map[string][]string {
	aliases := map[string][]string{
		"backend.api_key":       {"OPENAI_API_KEY"},
		"backend.base_url":      {"OPENAI_BASE_URL"},
		"backend.model":         {"OPENAI_MODEL"},
		"hero.postgres_dsn":     {"DATABASE_URL"},
		"server.addr":           {"LAUNCHPAD_ADDR"},
		"tracing.otlp_endpoint": {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	}

	copy := make(map[string][]string, len(aliases))
	for key, list := range aliases {
		copy[key] = append([]string(nil), list...)
	}
	return copy
}
