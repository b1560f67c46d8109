package extension

import "time"

// Config holds the Palisade extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.palisade" or "palisade" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// MembershipTTL is the staleness window for cached membership snapshots
	// (default: 60s).
	MembershipTTL time.Duration `json:"membership_ttl" mapstructure:"membership_ttl" yaml:"membership_ttl"`

	// MaxHierarchyDepth bounds organizational hierarchy expansion.
	// Zero means unbounded.
	MaxHierarchyDepth int `json:"max_hierarchy_depth" mapstructure:"max_hierarchy_depth" yaml:"max_hierarchy_depth"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MembershipTTL: 60 * time.Second,
	}
}
