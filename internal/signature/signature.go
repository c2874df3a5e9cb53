// Package signature verifies upload payload signatures: SHA-1 digest of
// the raw bytes, RSA PKCS1v15 signature, PEM public key loaded once from
// PUBLIC_KEY_PATH.
package signature

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"sync"
)

// DefaultPublicKeyPath is used when PUBLIC_KEY_PATH is unset.
const DefaultPublicKeyPath = "./certs/staging.pub"

var (
	ErrNoPEMBlock  = errors.New("signature: no PEM block found in public key file")
	ErrNotRSAKey   = errors.New("signature: public key is not an RSA key")
)

// Verifier holds the parsed public key, loaded once at startup.
type Verifier struct {
	key *rsa.PublicKey
}

var (
	loadOnce sync.Once
	shared   *Verifier
	loadErr  error
)

// path resolves PUBLIC_KEY_PATH, defaulting to DefaultPublicKeyPath.
func path() string {
	if v := os.Getenv("PUBLIC_KEY_PATH"); v != "" {
		return v
	}
	return DefaultPublicKeyPath
}

// Load reads and parses the PEM public key at PUBLIC_KEY_PATH once, caching
// the result for the process lifetime.
func Load() (*Verifier, error) {
	loadOnce.Do(func() {
		shared, loadErr = loadFrom(path())
	})
	return shared, loadErr
}

func loadFrom(p string) (*Verifier, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrNoPEMBlock
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, ErrNotRSAKey
	}

	return &Verifier{key: rsaKey}, nil
}

// Verify checks sig against the SHA-1 digest of data, per spec.md §4.5
// step 4. The hash choice is historical (§9 Open Question) and preserved
// for wire compatibility.
func (v *Verifier) Verify(data, sig []byte) bool {
	digest := sha1.Sum(data)
	return rsa.VerifyPKCS1v15(v.key, crypto.SHA1, digest[:], sig) == nil
}
