package keystore

import "errors"

var (
	// ErrKeyMaterialUnavailable is returned when the signing keypair cannot be
	// loaded for any reason. Startup-fatal: a process without usable key
	// material must not begin serving traffic.
	ErrKeyMaterialUnavailable = errors.New("key material unavailable")

	// ErrUnsupportedKeyType is returned when the keystore entry holds a key
	// that is not an RSA private key.
	ErrUnsupportedKeyType = errors.New("unsupported key type, RSA private key required")
)
