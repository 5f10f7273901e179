// Package token issues and validates the signed access tokens that carry
// tenant identity as a first-class claim.
//
// Tokens are compact JWS structures (RFC 7519) signed with RS256 using the
// process keypair from pkg/keystore. The claim set binds every token to the
// tenant that was active when it was issued:
//
//   - iss: the issuing tenant ID
//   - sub: the authenticated subject
//   - scope: space-separated granted scopes
//   - iat / exp: issuance and expiry timestamps
//   - jti: unique token ID
//
// The issuer claim is the tenant binding. Issuance reads the active tenant
// from pkg/tenant context and refuses to mint a token outside a tenant scope;
// validation checks the issuer claim against the tenant the current request
// resolved to, so a token minted under one tenant can never authenticate a
// request belonging to another.
//
// Validation is a pure function of the public key, the token string, and the
// clock. It performs no I/O and is safe to run with unbounded concurrency.
//
// # Usage
//
//	issuer := token.NewIssuer(km)
//	validator := token.NewValidator(km)
//
//	// inside a request scope established by tenant.Middleware:
//	tok, err := issuer.Issue(ctx, "user-1", []string{"read"}, time.Hour)
//
//	claims, err := validator.Validate(tok, tenant.MustFromContext(ctx))
//
// # Error Handling
//
// Validation errors are terminal and never retried:
//
//   - ErrExpired: the token is past its exp claim
//   - ErrTenantMismatch: the issuer claim does not match the expected tenant
//   - ErrInvalidSignature: signature verification failed
//   - ErrInvalidToken: the token is malformed or fails any other check
//
// Issuance outside a tenant scope fails with ErrNoActiveTenant.
package token
