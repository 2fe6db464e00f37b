package keys

import (
	"crypto/ed25519"
	"testing"
)

func testSeed(b byte) []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return seed
}

func TestKeyStore_InitDeriveExport(t *testing.T) {
	ks, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	rootKey, _, err := ks.InitializeRootKey("producer", testSeed(0x11), false)
	if err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}
	if rootKey != SignerKeyFromSeed(testSeed(0x11)) {
		t.Fatalf("root signer key mismatch")
	}

	// Re-init without force must fail; the seed file is O_EXCL.
	if _, _, err := ks.InitializeRootKey("producer", testSeed(0x22), false); err == nil {
		t.Fatalf("expected re-init without --force to fail")
	}

	derived, _, err := ks.DeriveKeyForPurpose("producer", "manifest", false)
	if err != nil {
		t.Fatalf("DeriveKeyForPurpose: %v", err)
	}
	wantSeed, err := DerivePurposeSeed(testSeed(0x11), "manifest")
	if err != nil {
		t.Fatalf("DerivePurposeSeed: %v", err)
	}
	if derived != SignerKeyFromSeed(wantSeed) {
		t.Fatalf("derived signer key mismatch")
	}

	exported, err := ks.ExportKey("producer", "manifest")
	if err != nil {
		t.Fatalf("ExportKey: %v", err)
	}
	if exported != derived {
		t.Fatalf("export mismatch: %q vs %q", exported, derived)
	}

	entries, err := ks.ListKeys()
	if err != nil {
		t.Fatalf("ListKeys: %v", err)
	}
	if len(entries) != 1 || entries[0].Identifier != "producer" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if len(entries[0].Purposes) != 1 || entries[0].Purposes[0] != "manifest" {
		t.Fatalf("unexpected purposes: %+v", entries[0].Purposes)
	}
}

func TestKeyStore_LoadSeedSources(t *testing.T) {
	ks, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, _, err := ks.InitializeRootKey("producer", testSeed(0x33), false); err != nil {
		t.Fatalf("InitializeRootKey: %v", err)
	}

	inline, err := ks.LoadSeed("3333333333333333333333333333333333333333333333333333333333333333", "", "", "")
	if err != nil {
		t.Fatalf("LoadSeed inline: %v", err)
	}
	named, err := ks.LoadSeed("", "producer", "", "")
	if err != nil {
		t.Fatalf("LoadSeed named: %v", err)
	}
	if string(inline) != string(named) {
		t.Fatalf("inline and stored seeds disagree")
	}

	if _, err := ks.LoadSeed("", "", "", ""); err == nil {
		t.Fatalf("expected error when no signer is provided")
	}
}

func TestCheckKeyNameAndPurpose(t *testing.T) {
	for _, ok := range []string{"producer", "team-a", "K_2"} {
		if err := CheckKeyName(ok); err != nil {
			t.Errorf("CheckKeyName(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "a b", "x/y", "né"} {
		if err := CheckKeyName(bad); err == nil {
			t.Errorf("CheckKeyName(%q): expected error", bad)
		}
		if err := CheckPurpose(bad); err == nil {
			t.Errorf("CheckPurpose(%q): expected error", bad)
		}
	}
}
