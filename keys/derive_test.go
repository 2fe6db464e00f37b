package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"
	"testing"
)

func TestDerivePurposeSeedDeterministic(t *testing.T) {
	root := make([]byte, ed25519.SeedSize)
	for i := range root {
		root[i] = byte(i)
	}

	a, err := DerivePurposeSeed(root, "manifest")
	if err != nil {
		t.Fatalf("DerivePurposeSeed: %v", err)
	}
	b, err := DerivePurposeSeed(root, "manifest")
	if err != nil {
		t.Fatalf("DerivePurposeSeed: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("expected deterministic derivation")
	}

	c, err := DerivePurposeSeed(root, "merkle-root")
	if err != nil {
		t.Fatalf("DerivePurposeSeed: %v", err)
	}
	if string(a) == string(c) {
		t.Fatalf("expected different purposes to derive different seeds")
	}
}

func TestSignerKeyFromSeedFormat(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = 0x42
	}
	signerKey := SignerKeyFromSeed(seed)
	if !strings.HasPrefix(signerKey, "ed25519:") {
		t.Fatalf("expected ed25519 prefix, got %q", signerKey)
	}
	b64 := strings.TrimPrefix(signerKey, "ed25519:")
	pubBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("expected valid base64: %v", err)
	}
	if len(pubBytes) != ed25519.PublicKeySize {
		t.Fatalf("expected %d pubkey bytes, got %d", ed25519.PublicKeySize, len(pubBytes))
	}
}

func TestDerivePurposeSeedRejectsBadInput(t *testing.T) {
	if _, err := DerivePurposeSeed([]byte("short"), "manifest"); err == nil {
		t.Fatalf("expected rejection for short root seed")
	}
	root := make([]byte, ed25519.SeedSize)
	if _, err := DerivePurposeSeed(root, "bad purpose!"); err == nil {
		t.Fatalf("expected rejection for invalid purpose")
	}
}
