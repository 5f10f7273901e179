package keystore

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	jks "github.com/pavlo-v-chernykh/keystore-go/v4"
)

// KeyMaterial is the process-wide signing keypair: the private half signs
// access tokens, the public half verifies them. Loaded exactly once and
// never mutated afterward; all signing and verification operations are pure
// functions of it.
type KeyMaterial struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	keyID      string
}

// PrivateKey returns the signing half of the keypair.
func (km *KeyMaterial) PrivateKey() *rsa.PrivateKey { return km.privateKey }

// PublicKey returns the verification half of the keypair.
func (km *KeyMaterial) PublicKey() *rsa.PublicKey { return km.publicKey }

// KeyID returns a stable identifier for the keypair, suitable for the "kid"
// header of issued tokens. Derived from the public key, so issuer and
// validator processes loading the same store agree on it.
func (km *KeyMaterial) KeyID() string { return km.keyID }

// Load reads the private key entry named by cfg.Alias from the JKS keystore
// at cfg.Path. Every failure mode (unreadable file, wrong store password,
// missing alias, wrong key password, non-RSA key) wraps
// ErrKeyMaterialUnavailable so callers can treat them uniformly as fatal.
func Load(cfg Config) (*KeyMaterial, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, errors.Join(ErrKeyMaterialUnavailable, err)
	}
	defer f.Close()

	ks := jks.New()
	if err := ks.Load(f, []byte(cfg.StorePassword)); err != nil {
		return nil, errors.Join(ErrKeyMaterialUnavailable, fmt.Errorf("load keystore %s: %w", cfg.Path, err))
	}

	entry, err := ks.GetPrivateKeyEntry(cfg.Alias, []byte(cfg.KeyPassword))
	if err != nil {
		return nil, errors.Join(ErrKeyMaterialUnavailable, fmt.Errorf("key entry %q: %w", cfg.Alias, err))
	}

	key, err := x509.ParsePKCS8PrivateKey(entry.PrivateKey)
	if err != nil {
		return nil, errors.Join(ErrKeyMaterialUnavailable, err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Join(ErrKeyMaterialUnavailable, ErrUnsupportedKeyType)
	}

	km, err := New(rsaKey)
	if err != nil {
		return nil, errors.Join(ErrKeyMaterialUnavailable, err)
	}
	return km, nil
}

// New wraps an already-materialized RSA private key as KeyMaterial.
// Load uses it internally; it is also the entry point for deployments that
// source the keypair from somewhere other than a JKS file (a secret manager,
// a test fixture).
func New(key *rsa.PrivateKey) (*KeyMaterial, error) {
	if key == nil {
		return nil, ErrKeyMaterialUnavailable
	}

	keyID, err := fingerprint(&key.PublicKey)
	if err != nil {
		return nil, err
	}

	return &KeyMaterial{
		privateKey: key,
		publicKey:  &key.PublicKey,
		keyID:      keyID,
	}, nil
}

// MustLoad works like Load but panics on failure. Intended for process
// startup where unusable key material must abort before serving traffic.
func MustLoad(cfg Config) *KeyMaterial {
	km, err := Load(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to load key material: %v", err))
	}
	return km
}

// fingerprint derives the key ID as a truncated SHA-256 digest of the
// DER-encoded public key.
func fingerprint(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:8]), nil
}
