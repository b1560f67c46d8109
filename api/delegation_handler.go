package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
)

func (a *API) registerDelegationRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("delegations"))

	if err := g.POST("/delegations", a.createDelegation,
		forge.WithSummary("Create delegation"),
		forge.WithDescription("Grants the delegate the delegator's own-scope authority for a bounded period."),
		forge.WithOperationID("createDelegation"),
		forge.WithRequestSchema(CreateDelegationRequest{}),
		forge.WithCreatedResponse(&delegation.Delegation{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/delegations/:delegationId", a.getDelegation,
		forge.WithSummary("Get delegation"),
		forge.WithOperationID("getDelegation"),
		forge.WithResponseSchema(http.StatusOK, "Delegation details", &delegation.Delegation{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/delegations/:delegationId/revoke", a.revokeDelegation,
		forge.WithSummary("Revoke delegation"),
		forge.WithDescription("Withdraws the grant before its end date and invalidates the delegate's snapshot."),
		forge.WithOperationID("revokeDelegation"),
		forge.WithResponseSchema(http.StatusOK, "Revoked delegation", &delegation.Delegation{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/delegations", a.listDelegations,
		forge.WithSummary("List delegations"),
		forge.WithOperationID("listDelegations"),
		forge.WithRequestSchema(ListDelegationsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Delegation list", []*delegation.Delegation{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createDelegation(ctx forge.Context, req *CreateDelegationRequest) (*delegation.Delegation, error) {
	if req.TenantID == "" || req.DelegatorID == "" || req.DelegateID == "" {
		return nil, forge.BadRequest("tenant_id, delegator_id, and delegate_id are required")
	}
	if req.DelegatorID == req.DelegateID {
		return nil, forge.BadRequest("delegator and delegate must differ")
	}

	startsAt := time.Now().UTC()
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}
	if req.EndsAt != nil && !req.EndsAt.After(startsAt) {
		return nil, forge.BadRequest("ends_at must be after starts_at")
	}

	d := &delegation.Delegation{
		ID:          id.NewDelegationID(),
		TenantID:    req.TenantID,
		DelegatorID: req.DelegatorID,
		DelegateID:  req.DelegateID,
		Status:      delegation.StatusActive,
		StartsAt:    startsAt,
		EndsAt:      req.EndsAt,
		Reason:      req.Reason,
	}
	if err := a.eng.Store().CreateDelegation(ctx.Context(), d); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitDelegationCreated(ctx.Context(), d)
	}
	a.eng.ClearMembershipCache(ctx.Context(), d.DelegateID, d.TenantID)

	return d, ctx.JSON(http.StatusCreated, d)
}

func (a *API) getDelegation(ctx forge.Context, _ *GetDelegationRequest) (*delegation.Delegation, error) {
	delegationID, err := id.ParseDelegationID(ctx.Param("delegationId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid delegation ID: %v", err))
	}

	d, err := a.eng.Store().GetDelegation(ctx.Context(), delegationID)
	if err != nil {
		return nil, mapError(err)
	}
	return d, ctx.JSON(http.StatusOK, d)
}

func (a *API) revokeDelegation(ctx forge.Context, _ *GetDelegationRequest) (*delegation.Delegation, error) {
	delegationID, err := id.ParseDelegationID(ctx.Param("delegationId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid delegation ID: %v", err))
	}

	d, err := a.eng.Store().GetDelegation(ctx.Context(), delegationID)
	if err != nil {
		return nil, mapError(err)
	}
	if d.Status != delegation.StatusRevoked {
		d.Status = delegation.StatusRevoked
		if err := a.eng.Store().UpdateDelegation(ctx.Context(), d); err != nil {
			return nil, mapError(err)
		}
		if a.eng.Plugins() != nil {
			a.eng.Plugins().EmitDelegationRevoked(ctx.Context(), d)
		}
		a.eng.ClearMembershipCache(ctx.Context(), d.DelegateID, d.TenantID)
	}
	return d, ctx.JSON(http.StatusOK, d)
}

func (a *API) listDelegations(ctx forge.Context, req *ListDelegationsRequest) ([]*delegation.Delegation, error) {
	filter := &delegation.ListFilter{
		TenantID:    req.TenantID,
		DelegatorID: req.DelegatorID,
		DelegateID:  req.DelegateID,
		Status:      delegation.Status(req.Status),
		Limit:       defaultLimit(req.Limit),
		Offset:      req.Offset,
	}
	delegations, err := a.eng.Store().ListDelegations(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	return delegations, ctx.JSON(http.StatusOK, delegations)
}
