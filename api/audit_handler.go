package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade/auditlog"
	"github.com/elevatehq/palisade/id"
)

func (a *API) registerAuditRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("audit"))

	if err := g.GET("/audit-entries", a.listAuditEntries,
		forge.WithSummary("List audit entries"),
		forge.WithOperationID("listAuditEntries"),
		forge.WithRequestSchema(ListAuditEntriesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Audit entry list", ListResponse[*auditlog.Entry]{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/audit-entries/:entryId", a.getAuditEntry,
		forge.WithSummary("Get audit entry"),
		forge.WithOperationID("getAuditEntry"),
		forge.WithResponseSchema(http.StatusOK, "Audit entry details", &auditlog.Entry{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) listAuditEntries(ctx forge.Context, req *ListAuditEntriesRequest) (*ListResponse[*auditlog.Entry], error) {
	filter := &auditlog.QueryFilter{
		TenantID:     req.TenantID,
		Kind:         req.Kind,
		ActorID:      req.ActorID,
		ResourceType: req.ResourceType,
		After:        req.After,
		Before:       req.Before,
		Limit:        defaultLimit(req.Limit),
		Offset:       req.Offset,
	}

	entries, err := a.eng.Store().ListAuditEntries(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	total, err := a.eng.Store().CountAuditEntries(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*auditlog.Entry]{
		Items:  entries,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) getAuditEntry(ctx forge.Context, _ *GetAuditEntryRequest) (*auditlog.Entry, error) {
	entryID, err := id.ParseAuditEventID(ctx.Param("entryId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid audit entry ID: %v", err))
	}

	e, err := a.eng.Store().GetAuditEntry(ctx.Context(), entryID)
	if err != nil {
		return nil, mapError(err)
	}
	return e, ctx.JSON(http.StatusOK, e)
}
