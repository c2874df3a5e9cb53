package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func generateTestKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubBytes, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})

	path := filepath.Join(t.TempDir(), "test.pub")
	require.NoError(t, os.WriteFile(path, pemBytes, 0o644))

	return priv, path
}

func TestLoadFromAndVerify(t *testing.T) {
	priv, path := generateTestKeyPair(t)

	v, err := loadFrom(path)
	require.NoError(t, err)

	data := []byte("upload bytes")
	digest := sha1.Sum(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA1, digest[:])
	require.NoError(t, err)

	if !v.Verify(data, sig) {
		t.Error("Verify() = false, want true for a valid signature")
	}
	if v.Verify([]byte("tampered bytes"), sig) {
		t.Error("Verify() = true, want false for tampered data")
	}
}

func TestLoadFromRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pub")
	require.NoError(t, os.WriteFile(path, []byte("not pem"), 0o644))

	_, err := loadFrom(path)
	require.ErrorIs(t, err, ErrNoPEMBlock)
}
