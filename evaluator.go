package palisade

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/store"
	"github.com/elevatehq/palisade/union"
)

// PolicyEvaluator evaluates tenant-authored access policies against a
// principal and an attempted action.
type PolicyEvaluator interface {
	// EvaluatePolicy runs the principal's tenant policies in descending
	// priority order with first-match-wins semantics. When no policy
	// matches, the result is allow: policies restrict additively on top of
	// the scope engine, they never replace it.
	EvaluatePolicy(ctx context.Context, user *Principal, action, resourceType string) (*PolicyResult, error)

	// CheckUnionRestrictions inspects the principal's active union-contract
	// memberships and reports whether the action's category is restricted
	// by any contract rule.
	CheckUnionRestrictions(ctx context.Context, user *Principal, action string) (*UnionRestriction, error)
}

// priorityEvaluator is the default PolicyEvaluator, backed by the composite
// store.
type priorityEvaluator struct {
	store   store.Store
	aliases *AliasResolver
	logger  *slog.Logger
	now     func() time.Time
}

var _ PolicyEvaluator = (*priorityEvaluator)(nil)

// NewPolicyEvaluator creates the default store-backed evaluator.
func NewPolicyEvaluator(s store.Store, aliases *AliasResolver, logger *slog.Logger) PolicyEvaluator {
	if aliases == nil {
		aliases = NewAliasResolver(DefaultAliases())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &priorityEvaluator{
		store:   s,
		aliases: aliases,
		logger:  logger,
		now:     time.Now,
	}
}

func (e *priorityEvaluator) EvaluatePolicy(ctx context.Context, user *Principal, action, resourceType string) (*PolicyResult, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	policies, err := e.store.ListActivePolicies(ctx, user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("palisade: list policies: %w", err)
	}

	// Evaluation order is strictly descending priority. The store contract
	// already orders results; the stable re-sort holds the invariant even
	// for a backend that does not.
	sort.SliceStable(policies, func(i, j int) bool {
		return policies[i].Priority > policies[j].Priority
	})

	now := e.now()

	// Union memberships are only fetched when some policy targets a union
	// code or contract type.
	var memberships []*union.Membership
	membershipsLoaded := false

	for _, p := range policies {
		if !p.InEffectAt(now) {
			continue
		}
		if len(p.TargetRoles) > 0 && !e.aliases.HasAnyRole(user.Roles, p.TargetRoles...) {
			continue
		}
		if len(p.TargetDepartments) > 0 && !containsString(p.TargetDepartments, user.DepartmentID) {
			continue
		}
		if len(p.TargetLevels) > 0 && !containsInt(p.TargetLevels, user.Level) {
			continue
		}
		if p.UnionCode != "" || p.ContractType != "" {
			if !membershipsLoaded {
				memberships, err = e.store.ListActiveUnionMemberships(ctx, user.TenantID, user.ID)
				if err != nil {
					return nil, fmt.Errorf("palisade: list union memberships: %w", err)
				}
				membershipsLoaded = true
			}
			if !matchesUnionTarget(memberships, p.UnionCode, p.ContractType) {
				continue
			}
		}
		if len(p.Actions.Resources) > 0 && !matchAny(p.Actions.Resources, resourceType) {
			continue
		}
		if len(p.Actions.Actions) > 0 && !matchAny(p.Actions.Actions, action) {
			continue
		}

		// First match wins.
		if p.Effect == policy.EffectDeny {
			return &PolicyResult{
				Allowed:    false,
				Reason:     "Denied by policy: " + p.Name,
				PolicyName: p.Name,
			}, nil
		}
		return &PolicyResult{Allowed: true, PolicyName: p.Name}, nil
	}

	return &PolicyResult{Allowed: true}, nil
}

func (e *priorityEvaluator) CheckUnionRestrictions(ctx context.Context, user *Principal, action string) (*UnionRestriction, error) {
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	category := actionCategory(action)
	if category == "" {
		return &UnionRestriction{}, nil
	}

	memberships, err := e.store.ListActiveUnionMemberships(ctx, user.TenantID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("palisade: list union memberships: %w", err)
	}

	for _, m := range memberships {
		rule, ok := m.Rules[category]
		if !ok || !rule.Restricted {
			continue
		}
		return &UnionRestriction{
			Restricted: true,
			UnionCode:  m.UnionCode,
			Category:   category,
			Reason:     rule.Reason,
		}, nil
	}
	return &UnionRestriction{}, nil
}

// matchesUnionTarget reports whether any active membership matches the
// policy's union code and contract type filters.
func matchesUnionTarget(memberships []*union.Membership, unionCode, contractType string) bool {
	for _, m := range memberships {
		if unionCode != "" && m.UnionCode != unionCode {
			continue
		}
		if contractType != "" && m.ContractType != contractType {
			continue
		}
		return true
	}
	return false
}

// actionCategory maps an action name to a contract rule category by prefix.
// Actions outside the review/feedback/calibration families are never
// union-restricted.
func actionCategory(action string) string {
	switch {
	case strings.HasPrefix(action, union.CategoryReview):
		return union.CategoryReview
	case strings.HasPrefix(action, union.CategoryFeedback):
		return union.CategoryFeedback
	case strings.HasPrefix(action, union.CategoryCalibration):
		return union.CategoryCalibration
	default:
		return ""
	}
}
