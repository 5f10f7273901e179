// Package keystore loads the asymmetric signing keypair used for access-token
// issuance and validation.
//
// Key material lives in a JKS-format keystore file referenced by four pieces
// of external configuration: the file location, the store password, the key
// alias, and the key password. None of them are ever embedded in source.
//
// Loading happens once at process startup and is deliberately all-or-nothing:
// a missing file, a wrong password, or an absent alias each wrap
// ErrKeyMaterialUnavailable, and the process must refuse to serve traffic
// rather than degrade to unsigned tokens. The loaded KeyMaterial is immutable
// and safe for unbounded concurrent reads.
//
// # Usage
//
//	var cfg keystore.Config
//	config.MustLoad(&cfg)
//
//	km := keystore.MustLoad(cfg)
//
//	issuer := token.NewIssuer(km)
//	validator := token.NewValidator(km)
package keystore
