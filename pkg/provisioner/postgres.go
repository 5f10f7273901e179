package provisioner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Postgres provisions one dedicated database and login role per tenant on a
// shared PostgreSQL server, through a control connection pool with CREATEDB
// and CREATEROLE privileges. Isolation is at the database level: a tenant's
// credentials open exactly one database and nothing else.
type Postgres struct {
	control *pgxpool.Pool
	cfg     Config
	tracker *stateTracker
	probe   Probe
	logger  *slog.Logger
}

// PostgresOption configures a Postgres provisioner.
type PostgresOption func(*Postgres)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) PostgresOption {
	return func(p *Postgres) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProbe overrides the readiness probe. The default opens a connection
// with the tenant's own credentials and pings it.
func WithProbe(probe Probe) PostgresOption {
	return func(p *Postgres) {
		if probe != nil {
			p.probe = probe
		}
	}
}

// NewPostgres creates a provisioner using control as its control connection.
func NewPostgres(control *pgxpool.Pool, cfg Config, opts ...PostgresOption) *Postgres {
	p := &Postgres{
		control: control,
		cfg:     cfg.withDefaults(),
		tracker: newStateTracker(),
		probe:   defaultProbe,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State reports the provisioning state for a tenant. StateNone means no
// attempt is known.
func (p *Postgres) State(id tenant.ID) State {
	return p.tracker.get(id)
}

// Provision walks the state machine for one tenant: launch the database,
// poll it to readiness, apply migrations, Ready. Any failure transitions to
// Failed after tearing down whatever was allocated, so a subsequent call
// retries from scratch. Provisioning tenant A never touches state shared
// with tenant B beyond the control pool.
func (p *Postgres) Provision(ctx context.Context, id tenant.ID) (Descriptor, error) {
	p.tracker.set(id, StateRequested)

	desc, err := p.start(ctx, id)
	if err != nil {
		return Descriptor{}, p.fail(ctx, id, err)
	}

	p.tracker.set(id, StateReadinessPolling)
	if err := awaitReady(ctx, p.cfg, desc, p.probe); err != nil {
		return Descriptor{}, p.fail(ctx, id, err)
	}

	if p.cfg.MigrationsPath != "" {
		if err := p.migrate(ctx, desc); err != nil {
			return Descriptor{}, p.fail(ctx, id, err)
		}
	}

	p.tracker.set(id, StateReady)
	p.logger.InfoContext(ctx, "tenant database provisioned",
		slog.String("tenant_id", id.String()), slog.String("database", desc.Database))
	return desc, nil
}

// start launches the tenant database with bounded retries. Each retry tears
// down leftovers from the previous attempt first, so a partial create never
// blocks a later one.
func (p *Postgres) start(ctx context.Context, id tenant.ID) (Descriptor, error) {
	p.tracker.set(id, StateStarting)

	ctrl := p.control.Config().ConnConfig
	desc := Descriptor{
		Host:     ctrl.Host,
		Port:     ctrl.Port,
		User:     p.roleName(id),
		Password: uuid.NewString(),
		Database: p.databaseName(id),
	}

	var lastErr error
	for attempt := range p.cfg.StartAttempts {
		if attempt > 0 {
			if err := p.teardown(ctx, id); err != nil {
				lastErr = err
				continue
			}
			select {
			case <-ctx.Done():
				return Descriptor{}, errors.Join(lastErr, ctx.Err())
			case <-time.After(time.Duration(attempt) * p.cfg.StartInterval):
			}
		}

		if err := p.createInstance(ctx, desc); err != nil {
			lastErr = err
			p.logger.WarnContext(ctx, "tenant database launch attempt failed",
				slog.String("tenant_id", id.String()), slog.Int("attempt", attempt+1), slog.Any("error", err))
			continue
		}
		return desc, nil
	}

	return Descriptor{}, fmt.Errorf("start tenant database: %w", lastErr)
}

func (p *Postgres) createInstance(ctx context.Context, desc Descriptor) error {
	role := pgx.Identifier{desc.User}.Sanitize()
	db := pgx.Identifier{desc.Database}.Sanitize()

	if _, err := p.control.Exec(ctx,
		fmt.Sprintf("CREATE ROLE %s LOGIN PASSWORD '%s'", role, desc.Password)); err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	if _, err := p.control.Exec(ctx,
		fmt.Sprintf("CREATE DATABASE %s OWNER %s", db, role)); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}

// migrate applies goose migrations to a freshly provisioned tenant database.
func (p *Postgres) migrate(ctx context.Context, desc Descriptor) error {
	db, err := sql.Open("pgx", desc.DSN())
	if err != nil {
		return fmt.Errorf("open tenant database for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, p.cfg.MigrationsPath); err != nil {
		return fmt.Errorf("apply tenant migrations: %w", err)
	}
	return nil
}

// fail transitions to Failed after releasing whatever the attempt allocated.
func (p *Postgres) fail(ctx context.Context, id tenant.ID, cause error) error {
	if err := p.teardown(context.WithoutCancel(ctx), id); err != nil {
		p.logger.ErrorContext(ctx, "failed to release tenant database after provisioning failure",
			slog.String("tenant_id", id.String()), slog.Any("error", err))
	}
	p.tracker.set(id, StateFailed)
	return errors.Join(ErrProvisioningFailed, cause)
}

// Destroy tears down the tenant's database and role. Idempotent: destroying
// an already-destroyed or never-provisioned tenant is a no-op.
func (p *Postgres) Destroy(ctx context.Context, id tenant.ID) error {
	if err := p.teardown(ctx, id); err != nil {
		return err
	}
	p.tracker.clear(id)
	return nil
}

func (p *Postgres) teardown(ctx context.Context, id tenant.ID) error {
	role := pgx.Identifier{p.roleName(id)}.Sanitize()
	db := pgx.Identifier{p.databaseName(id)}.Sanitize()

	// Open sessions block DROP DATABASE; kill them first.
	if _, err := p.control.Exec(ctx,
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = $1 AND pid <> pg_backend_pid()",
		p.databaseName(id)); err != nil {
		return fmt.Errorf("terminate tenant sessions: %w", err)
	}
	if _, err := p.control.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", db)); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	if _, err := p.control.Exec(ctx, fmt.Sprintf("DROP ROLE IF EXISTS %s", role)); err != nil {
		return fmt.Errorf("drop role: %w", err)
	}
	return nil
}

func (p *Postgres) roleName(id tenant.ID) string {
	return p.cfg.DatabasePrefix + sanitizeName(id)
}

func (p *Postgres) databaseName(id tenant.ID) string {
	return p.cfg.DatabasePrefix + sanitizeName(id)
}

// sanitizeName maps a tenant ID to a PostgreSQL-friendly identifier chunk.
// Tenant IDs are DNS labels, so only hyphens need translating.
func sanitizeName(id tenant.ID) string {
	return strings.ReplaceAll(id.String(), "-", "_")
}

// defaultProbe opens a connection with the tenant's own credentials and
// pings it, proving both reachability and credential validity.
func defaultProbe(ctx context.Context, desc Descriptor) error {
	conn, err := pgx.Connect(ctx, desc.DSN())
	if err != nil {
		return errors.Join(ErrNotReady, err)
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return errors.Join(ErrNotReady, err)
	}
	return nil
}
