package provisioner

import (
	"fmt"
	"net/url"
)

// Descriptor carries everything needed to open a connection to a tenant's
// database instance: address, port, and credentials. Opaque to callers
// beyond that.
type Descriptor struct {
	Host     string
	Port     uint16
	User     string
	Password string
	Database string
}

// DSN renders the descriptor as a PostgreSQL connection URL.
func (d Descriptor) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Database,
	}
	return u.String()
}

// String renders the descriptor with the password redacted, safe for logs.
func (d Descriptor) String() string {
	return fmt.Sprintf("postgres://%s:***@%s:%d/%s", d.User, d.Host, d.Port, d.Database)
}

// IsZero reports whether the descriptor is empty.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}
