package provisioner

import "time"

type Config struct {
	ControlConnURL string `env:"PROVISIONER_CONTROL_URL,required"`           // ControlConnURL is the connection string of the control database used to create tenant databases.
	DatabasePrefix string `env:"PROVISIONER_DB_PREFIX" envDefault:"tenant_"` // DatabasePrefix prefixes every tenant database and role name.

	StartAttempts int           `env:"PROVISIONER_START_ATTEMPTS" envDefault:"3"`  // StartAttempts is the number of attempts to launch a tenant database before failing.
	StartInterval time.Duration `env:"PROVISIONER_START_INTERVAL" envDefault:"2s"` // StartInterval is the base delay between launch attempts.

	ReadinessTimeout      time.Duration `env:"PROVISIONER_READINESS_TIMEOUT" envDefault:"30s"`       // ReadinessTimeout is the total budget for the instance to become reachable.
	ReadinessBaseInterval time.Duration `env:"PROVISIONER_READINESS_BASE_INTERVAL" envDefault:"100ms"` // ReadinessBaseInterval is the first probe backoff step.
	ReadinessMaxInterval  time.Duration `env:"PROVISIONER_READINESS_MAX_INTERVAL" envDefault:"2s"`   // ReadinessMaxInterval caps the exponential probe backoff.

	MigrationsPath string `env:"PROVISIONER_MIGRATIONS_PATH"` // MigrationsPath points at goose migrations applied to each fresh tenant database. Empty skips migrations.
}

// withDefaults fills unset fields for configs built in code rather than from
// the environment.
func (c Config) withDefaults() Config {
	if c.DatabasePrefix == "" {
		c.DatabasePrefix = "tenant_"
	}
	if c.StartAttempts <= 0 {
		c.StartAttempts = 3
	}
	if c.StartInterval <= 0 {
		c.StartInterval = 2 * time.Second
	}
	if c.ReadinessTimeout <= 0 {
		c.ReadinessTimeout = 30 * time.Second
	}
	if c.ReadinessBaseInterval <= 0 {
		c.ReadinessBaseInterval = 100 * time.Millisecond
	}
	if c.ReadinessMaxInterval <= 0 {
		c.ReadinessMaxInterval = 2 * time.Second
	}
	return c
}
