package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade"
)

func (a *API) registerDecisionRoutes(router forge.Router) error {
	g := router.Group("/v1/authz", forge.WithGroupTags("authorization"))

	if err := g.POST("/decide", a.decide,
		forge.WithSummary("Scope decision"),
		forge.WithDescription("Decides whether the principal may act on the resource at the required scope."),
		forge.WithOperationID("authzDecide"),
		forge.WithRequestSchema(DecideRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Decision", DecideResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/batch-decide", a.batchDecide,
		forge.WithSummary("Batch scope decision"),
		forge.WithDescription("Decides multiple resources for one principal at the same scope."),
		forge.WithOperationID("authzBatchDecide"),
		forge.WithRequestSchema(BatchDecideRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Batch decisions", BatchDecideResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/policy-eval", a.evaluatePolicy,
		forge.WithSummary("Policy evaluation"),
		forge.WithDescription("Evaluates tenant policy documents for an action and resource type."),
		forge.WithOperationID("authzEvaluatePolicy"),
		forge.WithRequestSchema(EvaluatePolicyRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Policy result", PolicyEvalResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/union-check", a.unionCheck,
		forge.WithSummary("Union restriction check"),
		forge.WithDescription("Reports whether an active union contract restricts the action for the principal."),
		forge.WithOperationID("authzUnionCheck"),
		forge.WithRequestSchema(UnionCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Restriction result", UnionCheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/cache/clear", a.clearCache,
		forge.WithSummary("Clear membership cache"),
		forge.WithDescription("Drops cached membership snapshots after team, reporting, or delegation changes."),
		forge.WithOperationID("authzClearCache"),
		forge.WithRequestSchema(ClearCacheRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) decide(ctx forge.Context, req *DecideRequest) (*DecideResponse, error) {
	if req.Principal.ID == "" || req.Principal.TenantID == "" {
		return nil, forge.BadRequest("principal.id and principal.tenant_id are required")
	}
	scope, ok := palisade.ParseScope(req.Scope)
	if !ok {
		return nil, mapError(fmt.Errorf("%w %q, want one of own, team, department, businessUnit, all", palisade.ErrUnknownScope, req.Scope))
	}

	allowed, err := a.eng.Decide(ctx.Context(), &req.Principal, &req.Resource, scope)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &DecideResponse{Allowed: allowed}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) batchDecide(ctx forge.Context, req *BatchDecideRequest) (*BatchDecideResponse, error) {
	if req.Principal.ID == "" || req.Principal.TenantID == "" {
		return nil, forge.BadRequest("principal.id and principal.tenant_id are required")
	}
	if len(req.Resources) == 0 {
		return nil, forge.BadRequest("resources cannot be empty")
	}
	scope, ok := palisade.ParseScope(req.Scope)
	if !ok {
		return nil, mapError(fmt.Errorf("%w %q, want one of own, team, department, businessUnit, all", palisade.ErrUnknownScope, req.Scope))
	}

	resources := make([]*palisade.ResourceContext, len(req.Resources))
	for i := range req.Resources {
		resources[i] = &req.Resources[i]
	}
	results, err := a.eng.DecideAll(ctx.Context(), &req.Principal, resources, scope)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &BatchDecideResponse{Results: results}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) evaluatePolicy(ctx forge.Context, req *EvaluatePolicyRequest) (*PolicyEvalResponse, error) {
	if req.Action == "" {
		return nil, forge.BadRequest("action is required")
	}

	result, err := a.eng.EvaluatePolicy(ctx.Context(), &req.Principal, req.Action, req.ResourceType)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &PolicyEvalResponse{
		Allowed:    result.Allowed,
		Reason:     result.Reason,
		PolicyName: result.PolicyName,
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) unionCheck(ctx forge.Context, req *UnionCheckRequest) (*UnionCheckResponse, error) {
	if req.Action == "" {
		return nil, forge.BadRequest("action is required")
	}

	restriction, err := a.eng.CheckUnionRestrictions(ctx.Context(), &req.Principal, req.Action)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &UnionCheckResponse{
		Restricted: restriction.Restricted,
		UnionCode:  restriction.UnionCode,
		Category:   restriction.Category,
		Reason:     restriction.Reason,
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) clearCache(ctx forge.Context, req *ClearCacheRequest) (*struct{}, error) {
	a.eng.ClearMembershipCache(ctx.Context(), req.UserID, req.TenantID)
	return nil, ctx.NoContent(http.StatusNoContent)
}
