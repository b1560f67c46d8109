// Package middleware provides HTTP authorization middleware for palisade.
package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade"
)

// Authorize enforces a permission gate. The request is allowed when the
// principal holds any super-admin alias role, or when ANY requirement entry
// is satisfied: a roles entry through the alias resolver, a resource+action
// entry through the permission evaluator. An entry with neither roles nor
// resource+action is never satisfied.
func Authorize(eng *palisade.Engine, requirements ...palisade.PermissionRequirement) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			user, ok := palisade.PrincipalFromContext(ctx.Context())
			if !ok {
				return unauthenticatedResponse(ctx)
			}
			if eng.Aliases().IsSuperAdmin(user.Roles) {
				return next(ctx)
			}
			for _, req := range requirements {
				if len(req.Roles) > 0 && eng.Aliases().HasAnyRole(user.Roles, req.Roles...) {
					return next(ctx)
				}
				if req.Resource != "" && req.Action != "" &&
					palisade.CheckPermission(user.Permissions, req.Resource, req.Action, req.Scope) {
					return next(ctx)
				}
			}
			return denyResponse(ctx, palisade.NewAuthorizationError(describeRequirements(requirements)))
		}
	}
}

// RequireRoles allows the request when the principal is a super admin or
// holds any of the given roles, aliases expanded.
func RequireRoles(eng *palisade.Engine, roles ...string) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			user, ok := palisade.PrincipalFromContext(ctx.Context())
			if !ok {
				return unauthenticatedResponse(ctx)
			}
			if eng.Aliases().IsSuperAdmin(user.Roles) || eng.Aliases().HasAnyRole(user.Roles, roles...) {
				return next(ctx)
			}
			return denyResponse(ctx, palisade.NewAuthorizationError(palisade.DescribeRoles(roles)))
		}
	}
}

// ResourceResolver derives the resource context for a scope gate from the
// request, typically from route params.
type ResourceResolver func(ctx forge.Context) *palisade.ResourceContext

// RequireScope runs a full scope decision against the resource the resolver
// extracts from the request. Data-layer errors propagate to the framework's
// error handling; a negative decision becomes an authorization error.
func RequireScope(eng *palisade.Engine, requiredScope palisade.ScopeLevel, resolve ResourceResolver) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			user, ok := palisade.PrincipalFromContext(ctx.Context())
			if !ok {
				return unauthenticatedResponse(ctx)
			}
			allowed, err := eng.Decide(ctx.Context(), user, resolve(ctx), requiredScope)
			if err != nil {
				return err
			}
			if !allowed {
				return denyResponse(ctx, palisade.NewAuthorizationError(
					fmt.Sprintf("scope %s on this resource", requiredScope)))
			}
			return next(ctx)
		}
	}
}

// RequireLocalScope is the degraded variant of RequireScope: it gates on
// tenant isolation, super-admin bypass, and direct attribute equality only,
// with no store access. Team membership, reporting lines, delegations, and
// hierarchy expansion are not consulted, so it under-grants relative to
// RequireScope. Reserve it for paths that must stay up when the store is
// unavailable.
func RequireLocalScope(eng *palisade.Engine, requiredScope palisade.ScopeLevel, resolve ResourceResolver) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			user, ok := palisade.PrincipalFromContext(ctx.Context())
			if !ok {
				return unauthenticatedResponse(ctx)
			}
			if !eng.DecideLocal(user, resolve(ctx), requiredScope) {
				return denyResponse(ctx, palisade.NewAuthorizationError(
					fmt.Sprintf("scope %s on this resource", requiredScope)))
			}
			return next(ctx)
		}
	}
}

// RequireUnionClearance blocks actions restricted by the principal's active
// union contracts. This is the hard gate in front of review, feedback, and
// calibration operations; the engine itself only reports the restriction.
func RequireUnionClearance(eng *palisade.Engine, action string) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			user, ok := palisade.PrincipalFromContext(ctx.Context())
			if !ok {
				return unauthenticatedResponse(ctx)
			}
			restriction, err := eng.CheckUnionRestrictions(ctx.Context(), user, action)
			if err != nil {
				return err
			}
			if restriction.Restricted {
				return denyResponse(ctx, palisade.NewAuthorizationError(
					fmt.Sprintf("action %q is restricted by union contract %s", action, restriction.UnionCode)))
			}
			return next(ctx)
		}
	}
}

// RequirePolicy evaluates tenant policy documents for the action and
// resource type and blocks on an explicit DENY.
func RequirePolicy(eng *palisade.Engine, action, resourceType string) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			user, ok := palisade.PrincipalFromContext(ctx.Context())
			if !ok {
				return unauthenticatedResponse(ctx)
			}
			result, err := eng.EvaluatePolicy(ctx.Context(), user, action, resourceType)
			if err != nil {
				if errors.Is(err, palisade.ErrNotAuthenticated) {
					return unauthenticatedResponse(ctx)
				}
				return err
			}
			if !result.Allowed {
				return denyResponse(ctx, palisade.NewAuthorizationError(result.Reason))
			}
			return next(ctx)
		}
	}
}

// describeRequirements renders an OR-ed requirement list for authorization
// error messages.
func describeRequirements(requirements []palisade.PermissionRequirement) string {
	parts := make([]string, 0, len(requirements))
	for _, req := range requirements {
		switch {
		case len(req.Roles) > 0:
			parts = append(parts, palisade.DescribeRoles(req.Roles))
		case req.Resource != "" && req.Action != "":
			s := req.Resource + ":" + req.Action
			if req.Scope != "" {
				s += ":" + string(req.Scope)
			}
			parts = append(parts, "permission "+s)
		}
	}
	if len(parts) == 0 {
		return "no satisfiable requirement"
	}
	return strings.Join(parts, " or ")
}

func unauthenticatedResponse(ctx forge.Context) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(401)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": "not authenticated"})
}

func denyResponse(ctx forge.Context, authErr *palisade.AuthorizationError) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(403)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{
		"error":       "access denied",
		"requirement": authErr.Requirement,
	})
}
