package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/union"
)

func (a *API) registerUnionRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("union-memberships"))

	if err := g.POST("/union-memberships", a.createUnionMembership,
		forge.WithSummary("Create union membership"),
		forge.WithDescription("Records that a user is covered by a union contract and its restriction rules."),
		forge.WithOperationID("createUnionMembership"),
		forge.WithRequestSchema(CreateUnionMembershipRequest{}),
		forge.WithCreatedResponse(&union.Membership{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/union-memberships/:memberId", a.getUnionMembership,
		forge.WithSummary("Get union membership"),
		forge.WithOperationID("getUnionMembership"),
		forge.WithResponseSchema(http.StatusOK, "Membership details", &union.Membership{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/union-memberships/:memberId", a.updateUnionMembership,
		forge.WithSummary("Update union membership"),
		forge.WithOperationID("updateUnionMembership"),
		forge.WithRequestSchema(UpdateUnionMembershipRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated membership", &union.Membership{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/union-memberships", a.listUnionMemberships,
		forge.WithSummary("List union memberships"),
		forge.WithOperationID("listUnionMemberships"),
		forge.WithRequestSchema(ListUnionMembershipsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Membership list", []*union.Membership{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createUnionMembership(ctx forge.Context, req *CreateUnionMembershipRequest) (*union.Membership, error) {
	if req.TenantID == "" || req.UserID == "" || req.UnionCode == "" {
		return nil, forge.BadRequest("tenant_id, user_id, and union_code are required")
	}

	m := &union.Membership{
		ID:           id.NewUnionMemberID(),
		TenantID:     req.TenantID,
		UserID:       req.UserID,
		UnionCode:    req.UnionCode,
		ContractType: req.ContractType,
		Status:       union.StatusActive,
		Rules:        req.Rules,
	}
	if err := a.eng.Store().CreateUnionMembership(ctx.Context(), m); err != nil {
		return nil, mapError(err)
	}
	return m, ctx.JSON(http.StatusCreated, m)
}

func (a *API) getUnionMembership(ctx forge.Context, _ *GetUnionMembershipRequest) (*union.Membership, error) {
	memberID, err := id.ParseUnionMemberID(ctx.Param("memberId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid union membership ID: %v", err))
	}

	m, err := a.eng.Store().GetUnionMembership(ctx.Context(), memberID)
	if err != nil {
		return nil, mapError(err)
	}
	return m, ctx.JSON(http.StatusOK, m)
}

func (a *API) updateUnionMembership(ctx forge.Context, req *UpdateUnionMembershipRequest) (*union.Membership, error) {
	memberID, err := id.ParseUnionMemberID(ctx.Param("memberId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid union membership ID: %v", err))
	}

	m, err := a.eng.Store().GetUnionMembership(ctx.Context(), memberID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Status != "" {
		status := union.Status(req.Status)
		if status != union.StatusActive && status != union.StatusLapsed {
			return nil, forge.BadRequest("status must be 'ACTIVE' or 'LAPSED'")
		}
		m.Status = status
	}
	if req.Rules != nil {
		m.Rules = req.Rules
	}

	if err := a.eng.Store().UpdateUnionMembership(ctx.Context(), m); err != nil {
		return nil, mapError(err)
	}
	return m, ctx.JSON(http.StatusOK, m)
}

func (a *API) listUnionMemberships(ctx forge.Context, req *ListUnionMembershipsRequest) ([]*union.Membership, error) {
	filter := &union.ListFilter{
		TenantID:  req.TenantID,
		UserID:    req.UserID,
		UnionCode: req.UnionCode,
		Limit:     defaultLimit(req.Limit),
		Offset:    req.Offset,
	}
	memberships, err := a.eng.Store().ListUnionMemberships(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	return memberships, ctx.JSON(http.StatusOK, memberships)
}
