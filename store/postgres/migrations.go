package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the palisade store (PostgreSQL).
var Migrations = migrate.NewGroup("palisade")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_teams",
			Version: "20250601000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_teams (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    lead_user_id    TEXT NOT NULL DEFAULT '',
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_palisade_teams_tenant ON palisade_teams (tenant_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_teams`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_team_memberships",
			Version: "20250601000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_team_memberships (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    team_id         TEXT NOT NULL REFERENCES palisade_teams(id) ON DELETE CASCADE,
    user_id         TEXT NOT NULL,
    started_at      TIMESTAMPTZ NOT NULL,
    ended_at        TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_palisade_team_memberships_user ON palisade_team_memberships (tenant_id, user_id, ended_at);
CREATE INDEX IF NOT EXISTS idx_palisade_team_memberships_team ON palisade_team_memberships (tenant_id, team_id, ended_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_team_memberships`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_report_links",
			Version: "20250601000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_report_links (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    manager_id      TEXT NOT NULL,
    report_id       TEXT NOT NULL,
    kind            TEXT NOT NULL,
    started_at      TIMESTAMPTZ NOT NULL,
    ended_at        TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_palisade_report_links_manager ON palisade_report_links (tenant_id, manager_id, kind, ended_at);
CREATE INDEX IF NOT EXISTS idx_palisade_report_links_report ON palisade_report_links (tenant_id, report_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_report_links`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_org_units",
			Version: "20250601000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_org_units (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    kind            TEXT NOT NULL,
    name            TEXT NOT NULL,
    parent_id       TEXT,
    head_user_id    TEXT NOT NULL DEFAULT '',
    is_active       BOOLEAN NOT NULL DEFAULT TRUE,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_palisade_org_units_tenant ON palisade_org_units (tenant_id, kind);
CREATE INDEX IF NOT EXISTS idx_palisade_org_units_parent ON palisade_org_units (tenant_id, parent_id, kind);
CREATE INDEX IF NOT EXISTS idx_palisade_org_units_head ON palisade_org_units (tenant_id, head_user_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_org_units`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_delegations",
			Version: "20250601000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_delegations (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    delegator_id    TEXT NOT NULL,
    delegate_id     TEXT NOT NULL,
    status          TEXT NOT NULL,
    starts_at       TIMESTAMPTZ NOT NULL,
    ends_at         TIMESTAMPTZ,
    reason          TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_palisade_delegations_delegate ON palisade_delegations (tenant_id, delegate_id, status);
CREATE INDEX IF NOT EXISTS idx_palisade_delegations_delegator ON palisade_delegations (tenant_id, delegator_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_delegations`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_policies",
			Version: "20250601000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_policies (
    id                  TEXT PRIMARY KEY,
    tenant_id           TEXT NOT NULL,
    name                TEXT NOT NULL,
    description         TEXT NOT NULL DEFAULT '',
    priority            INTEGER NOT NULL DEFAULT 0,
    status              TEXT NOT NULL,
    effective_from      TIMESTAMPTZ,
    effective_to        TIMESTAMPTZ,
    target_roles        JSONB NOT NULL DEFAULT '[]',
    target_departments  JSONB NOT NULL DEFAULT '[]',
    target_levels       JSONB NOT NULL DEFAULT '[]',
    union_code          TEXT NOT NULL DEFAULT '',
    contract_type       TEXT NOT NULL DEFAULT '',
    action_resources    JSONB NOT NULL DEFAULT '[]',
    action_actions      JSONB NOT NULL DEFAULT '[]',
    effect              TEXT NOT NULL,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE(tenant_id, name)
);

CREATE INDEX IF NOT EXISTS idx_palisade_policies_tenant ON palisade_policies (tenant_id, status, priority DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_policies`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_union_memberships",
			Version: "20250601000007",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_union_memberships (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    user_id         TEXT NOT NULL,
    union_code      TEXT NOT NULL,
    contract_type   TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL,
    rules           JSONB NOT NULL DEFAULT '{}',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_palisade_union_memberships_user ON palisade_union_memberships (tenant_id, user_id, status);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_union_memberships`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_audit_entries",
			Version: "20250601000008",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS palisade_audit_entries (
    id              TEXT PRIMARY KEY,
    tenant_id       TEXT NOT NULL,
    kind            TEXT NOT NULL,
    actor_id        TEXT NOT NULL,
    resource_type   TEXT NOT NULL DEFAULT '',
    resource_id     TEXT NOT NULL DEFAULT '',
    detail          JSONB NOT NULL DEFAULT '{}',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_palisade_audit_entries_tenant ON palisade_audit_entries (tenant_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_palisade_audit_entries_actor ON palisade_audit_entries (tenant_id, actor_id);
CREATE INDEX IF NOT EXISTS idx_palisade_audit_entries_kind ON palisade_audit_entries (tenant_id, kind);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS palisade_audit_entries`)
				return err
			},
		},
	)
}
