package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
)

func (a *API) registerTeamRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("teams"))

	if err := g.POST("/teams", a.createTeam,
		forge.WithSummary("Create team"),
		forge.WithOperationID("createTeam"),
		forge.WithRequestSchema(CreateTeamRequest{}),
		forge.WithCreatedResponse(&org.Team{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/teams/:teamId", a.getTeam,
		forge.WithSummary("Get team"),
		forge.WithOperationID("getTeam"),
		forge.WithResponseSchema(http.StatusOK, "Team details", &org.Team{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/teams/:teamId", a.updateTeam,
		forge.WithSummary("Update team"),
		forge.WithOperationID("updateTeam"),
		forge.WithRequestSchema(UpdateTeamRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated team", &org.Team{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/teams", a.listTeams,
		forge.WithSummary("List teams"),
		forge.WithOperationID("listTeams"),
		forge.WithRequestSchema(ListTeamsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Team list", []*org.Team{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/teams/:teamId/members", a.addTeamMember,
		forge.WithSummary("Add team member"),
		forge.WithDescription("Starts a membership and invalidates the user's cached organizational snapshot."),
		forge.WithOperationID("addTeamMember"),
		forge.WithRequestSchema(AddTeamMemberRequest{}),
		forge.WithCreatedResponse(&org.TeamMembership{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/team-memberships/:membershipId/end", a.endTeamMembership,
		forge.WithSummary("End team membership"),
		forge.WithDescription("Closes a membership as of now and invalidates the cached snapshot."),
		forge.WithOperationID("endTeamMembership"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) createTeam(ctx forge.Context, req *CreateTeamRequest) (*org.Team, error) {
	if req.TenantID == "" || req.Name == "" {
		return nil, forge.BadRequest("tenant_id and name are required")
	}

	t := &org.Team{
		ID:          id.NewTeamID(),
		TenantID:    req.TenantID,
		Name:        req.Name,
		Description: req.Description,
		LeadUserID:  req.LeadUserID,
		IsActive:    true,
	}
	if err := a.eng.Store().CreateTeam(ctx.Context(), t); err != nil {
		return nil, mapError(err)
	}

	return t, ctx.JSON(http.StatusCreated, t)
}

func (a *API) getTeam(ctx forge.Context, _ *GetTeamRequest) (*org.Team, error) {
	teamID, err := id.ParseTeamID(ctx.Param("teamId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid team ID: %v", err))
	}

	t, err := a.eng.Store().GetTeam(ctx.Context(), teamID)
	if err != nil {
		return nil, mapError(err)
	}
	return t, ctx.JSON(http.StatusOK, t)
}

func (a *API) updateTeam(ctx forge.Context, req *UpdateTeamRequest) (*org.Team, error) {
	teamID, err := id.ParseTeamID(ctx.Param("teamId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid team ID: %v", err))
	}

	t, err := a.eng.Store().GetTeam(ctx.Context(), teamID)
	if err != nil {
		return nil, mapError(err)
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Description != "" {
		t.Description = req.Description
	}
	if req.LeadUserID != "" {
		t.LeadUserID = req.LeadUserID
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := a.eng.Store().UpdateTeam(ctx.Context(), t); err != nil {
		return nil, mapError(err)
	}
	return t, ctx.JSON(http.StatusOK, t)
}

func (a *API) listTeams(ctx forge.Context, req *ListTeamsRequest) ([]*org.Team, error) {
	filter := &org.TeamListFilter{
		TenantID: req.TenantID,
		Search:   req.Search,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}
	teams, err := a.eng.Store().ListTeams(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}
	return teams, ctx.JSON(http.StatusOK, teams)
}

func (a *API) addTeamMember(ctx forge.Context, req *AddTeamMemberRequest) (*org.TeamMembership, error) {
	teamID, err := id.ParseTeamID(ctx.Param("teamId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid team ID: %v", err))
	}
	if req.TenantID == "" || req.UserID == "" {
		return nil, forge.BadRequest("tenant_id and user_id are required")
	}

	startedAt := time.Now().UTC()
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}
	m := &org.TeamMembership{
		ID:        id.NewTeamMembershipID(),
		TenantID:  req.TenantID,
		TeamID:    teamID,
		UserID:    req.UserID,
		StartedAt: startedAt,
	}
	if err := a.eng.Store().AddTeamMember(ctx.Context(), m); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitTeamMemberAdded(ctx.Context(), m)
	}
	a.eng.ClearMembershipCache(ctx.Context(), m.UserID, m.TenantID)

	return m, ctx.JSON(http.StatusCreated, m)
}

func (a *API) endTeamMembership(ctx forge.Context, _ *EndTeamMembershipRequest) (*struct{}, error) {
	membershipID, err := id.ParseTeamMembershipID(ctx.Param("membershipId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid membership ID: %v", err))
	}

	if err := a.eng.Store().EndTeamMembership(ctx.Context(), membershipID, time.Now().UTC()); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitTeamMemberRemoved(ctx.Context(), membershipID)
	}
	// The ended membership's user is not known here without a re-read, so
	// drop the whole cache rather than leave a stale snapshot behind.
	a.eng.ClearMembershipCache(ctx.Context(), "", "")

	return nil, ctx.NoContent(http.StatusNoContent)
}
