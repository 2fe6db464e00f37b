// Package attest signs and verifies detached signatures over delivery
// payloads: manifest bytes, or a merkle root's canonical text.
//
// The v1 wire rule is Ed25519 over the raw payload bytes with no prehash.
// Prehashed Ed25519 and Dilithium3 variants are additive, selected by an
// explicit algorithm tag; nothing here guesses an algorithm from key or
// signature shape.
//
// Every verification is stateless and atomic: one call, two outcomes. A
// cryptographically well-formed but wrong signature yields
// ErrSignatureInvalid; anything else (bad key length, unknown algorithm,
// truncated signature) is a distinct malformed-input error.
package attest

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"
)

// ErrSignatureInvalid is the verification-failure outcome: the inputs were
// well-formed and the signature simply does not verify. Callers must treat
// it as a definitive "invalid", distinct from every malformed-input error.
var ErrSignatureInvalid = errors.New("attest: signature invalid")

// SignatureScheme verifies detached signatures for one fixed algorithm.
type SignatureScheme interface {
	// Name is the stable algorithm tag, e.g. "ed25519".
	Name() string
	// Verify returns nil for a valid signature, ErrSignatureInvalid for a
	// well-formed mismatch, and any other error for malformed input.
	Verify(payload, sig, pub []byte) error
}

// Scheme returns the scheme for an algorithm tag.
//
// Supported: "ed25519" (raw payload, the v1 default), "ed25519-sha256",
// "ed25519-sha512", "ed25519-sha3-256", "dilithium3-sha256",
// "dilithium3-sha512", "dilithium3-sha3-256".
func Scheme(name string) (SignatureScheme, error) {
	switch name {
	case "ed25519":
		return ed25519Scheme{hashAlg: ""}, nil
	case "ed25519-sha256", "ed25519-sha512", "ed25519-sha3-256":
		return ed25519Scheme{hashAlg: name[len("ed25519-"):]}, nil
	case "dilithium3-sha256", "dilithium3-sha512", "dilithium3-sha3-256":
		return dilithium3Scheme{hashAlg: name[len("dilithium3-"):]}, nil
	default:
		return nil, fmt.Errorf("attest: unsupported signature algorithm %q", name)
	}
}

// Verify dispatches to the named scheme. Convenience for callers that carry
// the algorithm tag as data.
func Verify(alg string, payload, sig, pub []byte) error {
	s, err := Scheme(alg)
	if err != nil {
		return err
	}
	return s.Verify(payload, sig, pub)
}

type ed25519Scheme struct {
	// hashAlg selects an optional prehash; empty means the raw payload is
	// signed (v1 rule).
	hashAlg string
}

func (s ed25519Scheme) Name() string {
	if s.hashAlg == "" {
		return "ed25519"
	}
	return "ed25519-" + s.hashAlg
}

func (s ed25519Scheme) Verify(payload, sig, pub []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return fmt.Errorf("attest: ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("attest: ed25519 signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	msg := payload
	if s.hashAlg != "" {
		d, err := digestFor(s.hashAlg, payload)
		if err != nil {
			return err
		}
		msg = d
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), msg, sig) {
		return ErrSignatureInvalid
	}
	return nil
}

type dilithium3Scheme struct {
	hashAlg string
}

func (s dilithium3Scheme) Name() string { return "dilithium3-" + s.hashAlg }

func (s dilithium3Scheme) Verify(payload, sig, pub []byte) error {
	var pk mode3.PublicKey
	if err := pk.UnmarshalBinary(pub); err != nil {
		return fmt.Errorf("attest: invalid dilithium3 public key: %w", err)
	}
	if len(sig) != mode3.SignatureSize {
		return fmt.Errorf("attest: dilithium3 signature must be %d bytes, got %d", mode3.SignatureSize, len(sig))
	}
	digest, err := digestFor(s.hashAlg, payload)
	if err != nil {
		return err
	}
	if !mode3.Verify(&pk, digest, sig) {
		return ErrSignatureInvalid
	}
	return nil
}

func digestFor(hashAlg string, message []byte) ([]byte, error) {
	switch hashAlg {
	case "sha256":
		d := sha256.Sum256(message)
		return d[:], nil
	case "sha512":
		d := sha512.Sum512(message)
		return d[:], nil
	case "sha3-256":
		d := sha3.Sum256(message)
		return d[:], nil
	default:
		return nil, fmt.Errorf("attest: unsupported hash algorithm %q", hashAlg)
	}
}
