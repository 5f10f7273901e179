package provisioner

import "errors"

var (
	// ErrProvisioningFailed is returned when a tenant database could not be
	// started or did not become ready within the timeout budget. The attempt's
	// resources are torn down before this is returned, so callers may retry.
	ErrProvisioningFailed = errors.New("provisioning failed")

	// ErrNotReady is returned by readiness probes while the instance is still
	// coming up.
	ErrNotReady = errors.New("database not ready")
)
