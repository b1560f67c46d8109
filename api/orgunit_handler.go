package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
)

func (a *API) registerOrgUnitRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("org-units"))

	if err := g.POST("/org-units", a.createOrgUnit,
		forge.WithSummary("Create org unit"),
		forge.WithDescription("Creates a department or business unit node."),
		forge.WithOperationID("createOrgUnit"),
		forge.WithRequestSchema(CreateOrgUnitRequest{}),
		forge.WithCreatedResponse(&org.OrgUnit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/org-units/:unitId", a.getOrgUnit,
		forge.WithSummary("Get org unit"),
		forge.WithOperationID("getOrgUnit"),
		forge.WithResponseSchema(http.StatusOK, "Org unit details", &org.OrgUnit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/org-units/:unitId", a.updateOrgUnit,
		forge.WithSummary("Update org unit"),
		forge.WithOperationID("updateOrgUnit"),
		forge.WithRequestSchema(UpdateOrgUnitRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated org unit", &org.OrgUnit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/org-units", a.listOrgUnits,
		forge.WithSummary("List org units"),
		forge.WithOperationID("listOrgUnits"),
		forge.WithRequestSchema(ListOrgUnitsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Org unit list", []*org.OrgUnit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/org-units/:unitId/children", a.listChildUnits,
		forge.WithSummary("List child units"),
		forge.WithDescription("Returns the active units directly below the given unit, same kind only."),
		forge.WithOperationID("listChildUnits"),
		forge.WithResponseSchema(http.StatusOK, "Child units", []*org.OrgUnit{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createOrgUnit(ctx forge.Context, req *CreateOrgUnitRequest) (*org.OrgUnit, error) {
	if req.TenantID == "" || req.Name == "" {
		return nil, forge.BadRequest("tenant_id and name are required")
	}
	kind := org.UnitKind(req.Kind)
	if kind != org.UnitDepartment && kind != org.UnitBusinessUnit {
		return nil, forge.BadRequest("kind must be 'department' or 'business_unit'")
	}

	u := &org.OrgUnit{
		ID:         id.NewOrgUnitID(),
		TenantID:   req.TenantID,
		Kind:       kind,
		Name:       req.Name,
		HeadUserID: req.HeadUserID,
		IsActive:   true,
	}
	if req.ParentID != "" {
		parentID, err := id.ParseOrgUnitID(req.ParentID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid parent ID: %v", err))
		}
		u.ParentID = &parentID
	}
	if err := a.eng.Store().CreateOrgUnit(ctx.Context(), u); err != nil {
		return nil, mapError(err)
	}

	return u, ctx.JSON(http.StatusCreated, u)
}

func (a *API) getOrgUnit(ctx forge.Context, _ *GetOrgUnitRequest) (*org.OrgUnit, error) {
	unitID, err := id.ParseOrgUnitID(ctx.Param("unitId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid org unit ID: %v", err))
	}

	u, err := a.eng.Store().GetOrgUnit(ctx.Context(), unitID)
	if err != nil {
		return nil, mapError(err)
	}
	return u, ctx.JSON(http.StatusOK, u)
}

func (a *API) updateOrgUnit(ctx forge.Context, req *UpdateOrgUnitRequest) (*org.OrgUnit, error) {
	unitID, err := id.ParseOrgUnitID(ctx.Param("unitId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid org unit ID: %v", err))
	}

	u, err := a.eng.Store().GetOrgUnit(ctx.Context(), unitID)
	if err != nil {
		return nil, mapError(err)
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.HeadUserID != "" {
		u.HeadUserID = req.HeadUserID
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := a.eng.Store().UpdateOrgUnit(ctx.Context(), u); err != nil {
		return nil, mapError(err)
	}
	return u, ctx.JSON(http.StatusOK, u)
}

func (a *API) listOrgUnits(ctx forge.Context, req *ListOrgUnitsRequest) ([]*org.OrgUnit, error) {
	filter := &org.UnitListFilter{
		TenantID: req.TenantID,
		Kind:     org.UnitKind(req.Kind),
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}
	units, err := a.eng.Store().ListOrgUnits(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	return units, ctx.JSON(http.StatusOK, units)
}

func (a *API) listChildUnits(ctx forge.Context, _ *GetOrgUnitRequest) ([]*org.OrgUnit, error) {
	unitID, err := id.ParseOrgUnitID(ctx.Param("unitId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid org unit ID: %v", err))
	}

	parent, err := a.eng.Store().GetOrgUnit(ctx.Context(), unitID)
	if err != nil {
		return nil, mapError(err)
	}
	children, err := a.eng.Store().ListChildUnits(ctx.Context(), parent.TenantID, unitID, parent.Kind)
	if err != nil {
		return nil, mapError(err)
	}
	return children, ctx.JSON(http.StatusOK, children)
}
