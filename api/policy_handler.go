package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/policy"
)

func (a *API) registerPolicyRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("policies"))

	if err := g.POST("/policies", a.createPolicy,
		forge.WithSummary("Create access policy"),
		forge.WithDescription("Registers a tenant-scoped ALLOW or DENY policy evaluated in priority order."),
		forge.WithOperationID("createPolicy"),
		forge.WithRequestSchema(CreatePolicyRequest{}),
		forge.WithCreatedResponse(&policy.AccessPolicy{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/policies/:policyId", a.getPolicy,
		forge.WithSummary("Get access policy"),
		forge.WithOperationID("getPolicy"),
		forge.WithResponseSchema(http.StatusOK, "Policy details", &policy.AccessPolicy{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/policies/:policyId", a.updatePolicy,
		forge.WithSummary("Update access policy"),
		forge.WithOperationID("updatePolicy"),
		forge.WithRequestSchema(UpdatePolicyRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated policy", &policy.AccessPolicy{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/policies/:policyId", a.deletePolicy,
		forge.WithSummary("Delete access policy"),
		forge.WithOperationID("deletePolicy"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/policies", a.listPolicies,
		forge.WithSummary("List access policies"),
		forge.WithOperationID("listPolicies"),
		forge.WithRequestSchema(ListPoliciesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Policy list", ListResponse[*policy.AccessPolicy]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createPolicy(ctx forge.Context, req *CreatePolicyRequest) (*policy.AccessPolicy, error) {
	if req.TenantID == "" || req.Name == "" {
		return nil, forge.BadRequest("tenant_id and name are required")
	}

	effect := policy.Effect(req.Effect)
	if effect != policy.EffectAllow && effect != policy.EffectDeny {
		return nil, forge.BadRequest("effect must be 'ALLOW' or 'DENY'")
	}

	status := policy.StatusActive
	if req.Status != "" {
		status = policy.Status(req.Status)
	}

	p := &policy.AccessPolicy{
		ID:                id.NewPolicyID(),
		TenantID:          req.TenantID,
		Name:              req.Name,
		Description:       req.Description,
		Priority:          req.Priority,
		Status:            status,
		EffectiveFrom:     req.EffectiveFrom,
		EffectiveTo:       req.EffectiveTo,
		TargetRoles:       req.TargetRoles,
		TargetDepartments: req.TargetDepartments,
		TargetLevels:      req.TargetLevels,
		UnionCode:         req.UnionCode,
		ContractType:      req.ContractType,
		Actions:           req.Actions,
		Effect:            effect,
	}
	if err := a.eng.Store().CreatePolicy(ctx.Context(), p); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitPolicyCreated(ctx.Context(), p)
	}

	return p, ctx.JSON(http.StatusCreated, p)
}

func (a *API) getPolicy(ctx forge.Context, _ *GetPolicyRequest) (*policy.AccessPolicy, error) {
	polID, err := id.ParsePolicyID(ctx.Param("policyId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid policy ID: %v", err))
	}

	p, err := a.eng.Store().GetPolicy(ctx.Context(), polID)
	if err != nil {
		return nil, mapError(err)
	}
	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) updatePolicy(ctx forge.Context, req *UpdatePolicyRequest) (*policy.AccessPolicy, error) {
	polID, err := id.ParsePolicyID(ctx.Param("policyId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid policy ID: %v", err))
	}

	p, err := a.eng.Store().GetPolicy(ctx.Context(), polID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Priority != nil {
		p.Priority = *req.Priority
	}
	if req.Status != "" {
		p.Status = policy.Status(req.Status)
	}
	if req.EffectiveFrom != nil {
		p.EffectiveFrom = req.EffectiveFrom
	}
	if req.EffectiveTo != nil {
		p.EffectiveTo = req.EffectiveTo
	}
	if req.TargetRoles != nil {
		p.TargetRoles = req.TargetRoles
	}
	if req.TargetDepartments != nil {
		p.TargetDepartments = req.TargetDepartments
	}
	if req.TargetLevels != nil {
		p.TargetLevels = req.TargetLevels
	}
	if req.Actions != nil {
		p.Actions = *req.Actions
	}
	if req.Effect != "" {
		effect := policy.Effect(req.Effect)
		if effect != policy.EffectAllow && effect != policy.EffectDeny {
			return nil, forge.BadRequest("effect must be 'ALLOW' or 'DENY'")
		}
		p.Effect = effect
	}

	if err := a.eng.Store().UpdatePolicy(ctx.Context(), p); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitPolicyUpdated(ctx.Context(), p)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) deletePolicy(ctx forge.Context, _ *GetPolicyRequest) (*struct{}, error) {
	polID, err := id.ParsePolicyID(ctx.Param("policyId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid policy ID: %v", err))
	}

	if err := a.eng.Store().DeletePolicy(ctx.Context(), polID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitPolicyDeleted(ctx.Context(), polID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listPolicies(ctx forge.Context, req *ListPoliciesRequest) (*ListResponse[*policy.AccessPolicy], error) {
	filter := &policy.ListFilter{
		TenantID: req.TenantID,
		Status:   policy.Status(req.Status),
		Effect:   policy.Effect(req.Effect),
		Search:   req.Search,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}

	policies, err := a.eng.Store().ListPolicies(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	total, err := a.eng.Store().CountPolicies(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*policy.AccessPolicy]{
		Items:  policies,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}
