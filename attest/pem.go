package attest

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

// Public keys travel as PEM SubjectPublicKeyInfo, the interchange format the
// delivery directory publishes (ed25519_public.pem). Private keys load from
// PEM PKCS#8. Key generation and custody stay outside this package.

// ParsePublicKeyPEM decodes a PEM SubjectPublicKeyInfo block holding an
// Ed25519 public key.
func ParsePublicKeyPEM(data []byte) (ed25519.PublicKey, error) {
	block, rest := pem.Decode(data)
	if block == nil {
		return nil, errors.New("attest: no PEM block in public key material")
	}
	if block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("attest: unexpected PEM block type %q", block.Type)
	}
	if len(rest) > 0 && len(pemTrim(rest)) > 0 {
		return nil, errors.New("attest: trailing data after public key PEM block")
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("attest: invalid SubjectPublicKeyInfo: %w", err)
	}
	ed, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("attest: public key is %T, want ed25519", pub)
	}
	return ed, nil
}

// EncodePublicKeyPEM renders an Ed25519 public key as PEM
// SubjectPublicKeyInfo.
func EncodePublicKeyPEM(pub ed25519.PublicKey) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("attest: ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// ParsePrivateKeyPEM decodes a PEM PKCS#8 block holding an Ed25519 private
// key.
func ParsePrivateKeyPEM(data []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("attest: no PEM block in private key material")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("attest: unexpected PEM block type %q", block.Type)
	}
	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("attest: invalid PKCS#8 private key: %w", err)
	}
	ed, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("attest: private key is %T, want ed25519", priv)
	}
	return ed, nil
}

// EncodePrivateKeyPEM renders an Ed25519 private key as PEM PKCS#8.
func EncodePrivateKeyPEM(priv ed25519.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

func pemTrim(b []byte) []byte {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\r' || b[i] == '\n') {
		i++
	}
	return b[i:]
}
