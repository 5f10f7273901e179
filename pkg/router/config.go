package router

import "time"

type Config struct {
	ProvisionTimeout time.Duration `env:"ROUTER_PROVISION_TIMEOUT" envDefault:"2m"` // ProvisionTimeout bounds one detached provisioning attempt end to end.
	EvictionGrace    time.Duration `env:"ROUTER_EVICTION_GRACE" envDefault:"30s"`   // EvictionGrace is how long eviction waits for outstanding leases to drain.
	IdleTTL          time.Duration `env:"ROUTER_IDLE_TTL" envDefault:"0"`           // IdleTTL is the age after which an unused handle is eligible for EvictIdle. Zero disables idle eviction.
}

func (c Config) withDefaults() Config {
	if c.ProvisionTimeout <= 0 {
		c.ProvisionTimeout = 2 * time.Minute
	}
	if c.EvictionGrace <= 0 {
		c.EvictionGrace = 30 * time.Second
	}
	return c
}
