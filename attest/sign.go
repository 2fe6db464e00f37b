package attest

import (
	"crypto/ed25519"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

// SignEd25519 returns a detached signature over the raw payload bytes
// (the v1 wire rule).
func SignEd25519(payload []byte, priv ed25519.PrivateKey) []byte {
	return ed25519.Sign(priv, payload)
}

// SignEd25519Prehash returns a detached signature over hashAlg(payload).
// hashAlg must be one of: sha256, sha512, sha3-256.
func SignEd25519Prehash(payload []byte, hashAlg string, priv ed25519.PrivateKey) ([]byte, error) {
	digest, err := digestFor(hashAlg, payload)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(priv, digest), nil
}

// SignDilithium3 returns a detached dilithium3 signature over
// hashAlg(payload). hashAlg must be one of: sha256, sha512, sha3-256.
func SignDilithium3(payload []byte, hashAlg string, priv *mode3.PrivateKey) ([]byte, error) {
	if priv == nil {
		return nil, fmt.Errorf("attest: missing private key")
	}
	digest, err := digestFor(hashAlg, payload)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(priv, digest, sig)
	return sig, nil
}

// GenerateDilithium3Keypair returns a new Dilithium3 keypair.
func GenerateDilithium3Keypair(rand io.Reader) (*mode3.PublicKey, *mode3.PrivateKey, error) {
	return mode3.GenerateKey(rand)
}
