package config

import (
	"os"
	"regexp"
	"strings"
)

// EnvLookup resolves environment variables. os.LookupEnv in production, a map in tests.
type EnvLookup func(key string) (string, bool)

// MapEnv returns an EnvLookup backed by a map
func MapEnv(env map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Convention: uppercase, dashes/dots to underscores, append _RPC_URL.
// Examples: base-sepolia -> BASE_SEPOLIA_RPC_URL, op.mainnet -> OP_MAINNET_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// expandEnv expands ${VAR} and $VAR references using lookup; unset variables expand to ""
func expandEnv(value string, lookup EnvLookup) string {
	return os.Expand(value, func(key string) string {
		v, _ := lookup(key)
		return v
	})
}

// lookupNonEmpty returns the value of key when it is set to a non-empty string
func lookupNonEmpty(lookup EnvLookup, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	v, ok := lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
