package attest

import (
	"errors"
	"io"
	"testing"
)

type deterministicReader struct{}

func (deterministicReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0x42
	}
	return len(p), nil
}

func TestVerify_Dilithium3(t *testing.T) {
	pk, sk, err := GenerateDilithium3Keypair(io.Reader(deterministicReader{}))
	if err != nil {
		t.Fatalf("GenerateDilithium3Keypair: %v", err)
	}
	payload := []byte("dataset-v1")

	for _, hashAlg := range []string{"sha256", "sha512", "sha3-256"} {
		sig, err := SignDilithium3(payload, hashAlg, sk)
		if err != nil {
			t.Fatalf("SignDilithium3(%s): %v", hashAlg, err)
		}
		if err := Verify("dilithium3-"+hashAlg, payload, sig, pk.Bytes()); err != nil {
			t.Fatalf("verify dilithium3-%s: %v", hashAlg, err)
		}
		if err := Verify("dilithium3-"+hashAlg, []byte("dataset-v2"), sig, pk.Bytes()); !errors.Is(err, ErrSignatureInvalid) {
			t.Fatalf("tampered payload: want ErrSignatureInvalid, got %v", err)
		}
	}
}

func TestVerify_Dilithium3_MalformedKey(t *testing.T) {
	_, sk, err := GenerateDilithium3Keypair(io.Reader(deterministicReader{}))
	if err != nil {
		t.Fatalf("GenerateDilithium3Keypair: %v", err)
	}
	sig, err := SignDilithium3([]byte("x"), "sha256", sk)
	if err != nil {
		t.Fatalf("SignDilithium3: %v", err)
	}
	err = Verify("dilithium3-sha256", []byte("x"), sig, []byte("short key"))
	if err == nil || errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("malformed key must not report ErrSignatureInvalid, got %v", err)
	}
}
