package palisade

import "time"

// Config holds configuration for the Palisade engine.
type Config struct {
	// MembershipTTL is the time-to-live for cached membership snapshots.
	// The engine does not construct a cache itself; the value is read by
	// wiring that does, such as the Forge extension. Callers passing their
	// own cache through WithCache set its TTL on the cache directly.
	// Defaults to 60 seconds.
	MembershipTTL time.Duration `json:"membership_ttl,omitempty"`

	// MaxHierarchyDepth bounds organizational hierarchy expansion. Zero
	// means unbounded; the cycle guard still terminates traversal.
	MaxHierarchyDepth int `json:"max_hierarchy_depth,omitempty"`

	// EnablePolicies enables access policy evaluation. Defaults to true.
	EnablePolicies *bool `json:"enable_policies,omitempty"`

	// EnableAudit enables audit event emission for blocked cross-tenant
	// access and policy denials. Defaults to true.
	EnableAudit *bool `json:"enable_audit,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	t := true
	return Config{
		MembershipTTL:  60 * time.Second,
		EnablePolicies: &t,
		EnableAudit:    &t,
	}
}

func (c Config) policiesEnabled() bool { return c.EnablePolicies == nil || *c.EnablePolicies }
func (c Config) auditEnabled() bool    { return c.EnableAudit == nil || *c.EnableAudit }
