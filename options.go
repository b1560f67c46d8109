package palisade

import (
	"log/slog"

	"github.com/elevatehq/palisade/plugin"
	"github.com/elevatehq/palisade/store"
)

// Option is a functional option for the Engine.
type Option func(*Engine)

// WithStore sets the composite store.
func WithStore(s store.Store) Option { return func(e *Engine) { e.store = s } }

// WithCache sets the membership snapshot cache.
func WithCache(c MembershipCache) Option { return func(e *Engine) { e.cache = c } }

// WithAliases sets the role alias resolver.
func WithAliases(r *AliasResolver) Option { return func(e *Engine) { e.aliases = r } }

// WithEvaluator sets the access policy evaluator.
func WithEvaluator(ev PolicyEvaluator) Option { return func(e *Engine) { e.evaluator = ev } }

// WithAuditSink sets the audit sink for security events. The default is a
// store-backed sink when auditing is enabled, a no-op sink otherwise.
func WithAuditSink(s AuditSink) Option { return func(e *Engine) { e.audit = s } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithConfig sets the engine configuration.
func WithConfig(c Config) Option { return func(e *Engine) { e.config = c } }

// WithPlugin registers a plugin with the engine.
func WithPlugin(x plugin.Plugin) Option {
	return func(e *Engine) {
		if e.plugins == nil {
			e.plugins = plugin.NewRegistry(e.logger)
		}
		e.plugins.Register(x)
	}
}
