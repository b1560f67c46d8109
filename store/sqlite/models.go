package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/elevatehq/palisade/auditlog"
	"github.com/elevatehq/palisade/delegation"
	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/policy"
	"github.com/elevatehq/palisade/union"
)

// ──────────────────────────────────────────────────
// Team models
// ──────────────────────────────────────────────────

type teamModel struct {
	grove.BaseModel `grove:"table:palisade_teams"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Name            string    `grove:"name,notnull"`
	Description     string    `grove:"description"`
	LeadUserID      string    `grove:"lead_user_id"`
	IsActive        bool      `grove:"is_active,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func teamToModel(t *org.Team) *teamModel {
	return &teamModel{
		ID:          t.ID.String(),
		TenantID:    t.TenantID,
		Name:        t.Name,
		Description: t.Description,
		LeadUserID:  t.LeadUserID,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func teamFromModel(m *teamModel) *org.Team {
	tid, _ := id.ParseTeamID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &org.Team{
		ID:          tid,
		TenantID:    m.TenantID,
		Name:        m.Name,
		Description: m.Description,
		LeadUserID:  m.LeadUserID,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type teamMembershipModel struct {
	grove.BaseModel `grove:"table:palisade_team_memberships"`
	ID              string     `grove:"id,pk"`
	TenantID        string     `grove:"tenant_id,notnull"`
	TeamID          string     `grove:"team_id,notnull"`
	UserID          string     `grove:"user_id,notnull"`
	StartedAt       time.Time  `grove:"started_at,notnull"`
	EndedAt         *time.Time `grove:"ended_at"`
	CreatedAt       time.Time  `grove:"created_at,notnull"`
}

func teamMembershipToModel(m *org.TeamMembership) *teamMembershipModel {
	return &teamMembershipModel{
		ID:        m.ID.String(),
		TenantID:  m.TenantID,
		TeamID:    m.TeamID.String(),
		UserID:    m.UserID,
		StartedAt: m.StartedAt,
		EndedAt:   m.EndedAt,
		CreatedAt: m.CreatedAt,
	}
}

// ──────────────────────────────────────────────────
// Report link model
// ──────────────────────────────────────────────────

type reportLinkModel struct {
	grove.BaseModel `grove:"table:palisade_report_links"`
	ID              string     `grove:"id,pk"`
	TenantID        string     `grove:"tenant_id,notnull"`
	ManagerID       string     `grove:"manager_id,notnull"`
	ReportID        string     `grove:"report_id,notnull"`
	Kind            string     `grove:"kind,notnull"`
	StartedAt       time.Time  `grove:"started_at,notnull"`
	EndedAt         *time.Time `grove:"ended_at"`
	CreatedAt       time.Time  `grove:"created_at,notnull"`
}

func reportLinkToModel(l *org.ReportLink) *reportLinkModel {
	return &reportLinkModel{
		ID:        l.ID.String(),
		TenantID:  l.TenantID,
		ManagerID: l.ManagerID,
		ReportID:  l.ReportID,
		Kind:      string(l.Kind),
		StartedAt: l.StartedAt,
		EndedAt:   l.EndedAt,
		CreatedAt: l.CreatedAt,
	}
}

// ──────────────────────────────────────────────────
// Org unit model
// ──────────────────────────────────────────────────

type orgUnitModel struct {
	grove.BaseModel `grove:"table:palisade_org_units"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Kind            string    `grove:"kind,notnull"`
	Name            string    `grove:"name,notnull"`
	ParentID        *string   `grove:"parent_id"`
	HeadUserID      string    `grove:"head_user_id"`
	IsActive        bool      `grove:"is_active,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func orgUnitToModel(u *org.OrgUnit) *orgUnitModel {
	m := &orgUnitModel{
		ID:         u.ID.String(),
		TenantID:   u.TenantID,
		Kind:       string(u.Kind),
		Name:       u.Name,
		HeadUserID: u.HeadUserID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.ParentID != nil {
		s := u.ParentID.String()
		m.ParentID = &s
	}
	return m
}

func orgUnitFromModel(m *orgUnitModel) *org.OrgUnit {
	uid, _ := id.ParseOrgUnitID(m.ID) //nolint:errcheck // stored IDs are always valid
	u := &org.OrgUnit{
		ID:         uid,
		TenantID:   m.TenantID,
		Kind:       org.UnitKind(m.Kind),
		Name:       m.Name,
		HeadUserID: m.HeadUserID,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.ParentID != nil {
		pid, err := id.ParseOrgUnitID(*m.ParentID)
		if err == nil {
			u.ParentID = &pid
		}
	}
	return u
}

// ──────────────────────────────────────────────────
// Delegation model
// ──────────────────────────────────────────────────

type delegationModel struct {
	grove.BaseModel `grove:"table:palisade_delegations"`
	ID              string     `grove:"id,pk"`
	TenantID        string     `grove:"tenant_id,notnull"`
	DelegatorID     string     `grove:"delegator_id,notnull"`
	DelegateID      string     `grove:"delegate_id,notnull"`
	Status          string     `grove:"status,notnull"`
	StartsAt        time.Time  `grove:"starts_at,notnull"`
	EndsAt          *time.Time `grove:"ends_at"`
	Reason          string     `grove:"reason"`
	CreatedAt       time.Time  `grove:"created_at,notnull"`
	UpdatedAt       time.Time  `grove:"updated_at,notnull"`
}

func delegationToModel(d *delegation.Delegation) *delegationModel {
	return &delegationModel{
		ID:          d.ID.String(),
		TenantID:    d.TenantID,
		DelegatorID: d.DelegatorID,
		DelegateID:  d.DelegateID,
		Status:      string(d.Status),
		StartsAt:    d.StartsAt,
		EndsAt:      d.EndsAt,
		Reason:      d.Reason,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func delegationFromModel(m *delegationModel) *delegation.Delegation {
	did, _ := id.ParseDelegationID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &delegation.Delegation{
		ID:          did,
		TenantID:    m.TenantID,
		DelegatorID: m.DelegatorID,
		DelegateID:  m.DelegateID,
		Status:      delegation.Status(m.Status),
		StartsAt:    m.StartsAt,
		EndsAt:      m.EndsAt,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ──────────────────────────────────────────────────
// Policy model
// ──────────────────────────────────────────────────

type policyModel struct {
	grove.BaseModel   `grove:"table:palisade_policies"`
	ID                string     `grove:"id,pk"`
	TenantID          string     `grove:"tenant_id,notnull"`
	Name              string     `grove:"name,notnull"`
	Description       string     `grove:"description"`
	Priority          int        `grove:"priority,notnull"`
	Status            string     `grove:"status,notnull"`
	EffectiveFrom     *time.Time `grove:"effective_from"`
	EffectiveTo       *time.Time `grove:"effective_to"`
	TargetRoles       string     `grove:"target_roles"`       // JSON text
	TargetDepartments string     `grove:"target_departments"` // JSON text
	TargetLevels      string     `grove:"target_levels"`      // JSON text
	UnionCode         string     `grove:"union_code"`
	ContractType      string     `grove:"contract_type"`
	ActionResources   string     `grove:"action_resources"` // JSON text
	ActionActions     string     `grove:"action_actions"`   // JSON text
	Effect            string     `grove:"effect,notnull"`
	CreatedAt         time.Time  `grove:"created_at,notnull"`
	UpdatedAt         time.Time  `grove:"updated_at,notnull"`
}

func policyToModel(p *policy.AccessPolicy) (*policyModel, error) {
	roles, err := json.Marshal(p.TargetRoles)
	if err != nil {
		return nil, fmt.Errorf("marshal policy target roles: %w", err)
	}
	departments, err := json.Marshal(p.TargetDepartments)
	if err != nil {
		return nil, fmt.Errorf("marshal policy target departments: %w", err)
	}
	levels, err := json.Marshal(p.TargetLevels)
	if err != nil {
		return nil, fmt.Errorf("marshal policy target levels: %w", err)
	}
	resources, err := json.Marshal(p.Actions.Resources)
	if err != nil {
		return nil, fmt.Errorf("marshal policy action resources: %w", err)
	}
	actions, err := json.Marshal(p.Actions.Actions)
	if err != nil {
		return nil, fmt.Errorf("marshal policy action patterns: %w", err)
	}
	return &policyModel{
		ID:                p.ID.String(),
		TenantID:          p.TenantID,
		Name:              p.Name,
		Description:       p.Description,
		Priority:          p.Priority,
		Status:            string(p.Status),
		EffectiveFrom:     p.EffectiveFrom,
		EffectiveTo:       p.EffectiveTo,
		TargetRoles:       string(roles),
		TargetDepartments: string(departments),
		TargetLevels:      string(levels),
		UnionCode:         p.UnionCode,
		ContractType:      p.ContractType,
		ActionResources:   string(resources),
		ActionActions:     string(actions),
		Effect:            string(p.Effect),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}, nil
}

func policyFromModel(m *policyModel) (*policy.AccessPolicy, error) {
	pid, _ := id.ParsePolicyID(m.ID) //nolint:errcheck // stored IDs are always valid
	p := &policy.AccessPolicy{
		ID:            pid,
		TenantID:      m.TenantID,
		Name:          m.Name,
		Description:   m.Description,
		Priority:      m.Priority,
		Status:        policy.Status(m.Status),
		EffectiveFrom: m.EffectiveFrom,
		EffectiveTo:   m.EffectiveTo,
		UnionCode:     m.UnionCode,
		ContractType:  m.ContractType,
		Effect:        policy.Effect(m.Effect),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.TargetRoles != "" {
		if err := json.Unmarshal([]byte(m.TargetRoles), &p.TargetRoles); err != nil {
			return nil, fmt.Errorf("unmarshal policy target roles: %w", err)
		}
	}
	if m.TargetDepartments != "" {
		if err := json.Unmarshal([]byte(m.TargetDepartments), &p.TargetDepartments); err != nil {
			return nil, fmt.Errorf("unmarshal policy target departments: %w", err)
		}
	}
	if m.TargetLevels != "" {
		if err := json.Unmarshal([]byte(m.TargetLevels), &p.TargetLevels); err != nil {
			return nil, fmt.Errorf("unmarshal policy target levels: %w", err)
		}
	}
	if m.ActionResources != "" {
		if err := json.Unmarshal([]byte(m.ActionResources), &p.Actions.Resources); err != nil {
			return nil, fmt.Errorf("unmarshal policy action resources: %w", err)
		}
	}
	if m.ActionActions != "" {
		if err := json.Unmarshal([]byte(m.ActionActions), &p.Actions.Actions); err != nil {
			return nil, fmt.Errorf("unmarshal policy action patterns: %w", err)
		}
	}
	return p, nil
}

// ──────────────────────────────────────────────────
// Union membership model
// ──────────────────────────────────────────────────

type unionMembershipModel struct {
	grove.BaseModel `grove:"table:palisade_union_memberships"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	UserID          string    `grove:"user_id,notnull"`
	UnionCode       string    `grove:"union_code,notnull"`
	ContractType    string    `grove:"contract_type"`
	Status          string    `grove:"status,notnull"`
	Rules           string    `grove:"rules"` // JSON text
	CreatedAt       time.Time `grove:"created_at,notnull"`
	UpdatedAt       time.Time `grove:"updated_at,notnull"`
}

func unionMembershipToModel(m *union.Membership) (*unionMembershipModel, error) {
	rules, err := json.Marshal(m.Rules)
	if err != nil {
		return nil, fmt.Errorf("marshal union rules: %w", err)
	}
	return &unionMembershipModel{
		ID:           m.ID.String(),
		TenantID:     m.TenantID,
		UserID:       m.UserID,
		UnionCode:    m.UnionCode,
		ContractType: m.ContractType,
		Status:       string(m.Status),
		Rules:        string(rules),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func unionMembershipFromModel(m *unionMembershipModel) (*union.Membership, error) {
	mid, _ := id.ParseUnionMemberID(m.ID) //nolint:errcheck // stored IDs are always valid
	var rules map[string]union.Rule
	if m.Rules != "" {
		if err := json.Unmarshal([]byte(m.Rules), &rules); err != nil {
			return nil, fmt.Errorf("unmarshal union rules: %w", err)
		}
	}
	return &union.Membership{
		ID:           mid,
		TenantID:     m.TenantID,
		UserID:       m.UserID,
		UnionCode:    m.UnionCode,
		ContractType: m.ContractType,
		Status:       union.Status(m.Status),
		Rules:        rules,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// ──────────────────────────────────────────────────
// Audit entry model
// ──────────────────────────────────────────────────

type auditEntryModel struct {
	grove.BaseModel `grove:"table:palisade_audit_entries"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Kind            string    `grove:"kind,notnull"`
	ActorID         string    `grove:"actor_id,notnull"`
	ResourceType    string    `grove:"resource_type"`
	ResourceID      string    `grove:"resource_id"`
	Detail          string    `grove:"detail"` // JSON text
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func auditEntryToModel(e *auditlog.Entry) (*auditEntryModel, error) {
	detail, err := json.Marshal(e.Detail)
	if err != nil {
		return nil, fmt.Errorf("marshal audit detail: %w", err)
	}
	return &auditEntryModel{
		ID:           e.ID.String(),
		TenantID:     e.TenantID,
		Kind:         e.Kind,
		ActorID:      e.ActorID,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Detail:       string(detail),
		CreatedAt:    e.CreatedAt,
	}, nil
}

func auditEntryFromModel(m *auditEntryModel) (*auditlog.Entry, error) {
	eid, _ := id.ParseAuditEventID(m.ID) //nolint:errcheck // stored IDs are always valid
	var detail map[string]any
	if m.Detail != "" {
		if err := json.Unmarshal([]byte(m.Detail), &detail); err != nil {
			return nil, fmt.Errorf("unmarshal audit detail: %w", err)
		}
	}
	return &auditlog.Entry{
		ID:           eid,
		TenantID:     m.TenantID,
		Kind:         m.Kind,
		ActorID:      m.ActorID,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Detail:       detail,
		CreatedAt:    m.CreatedAt,
	}, nil
}
