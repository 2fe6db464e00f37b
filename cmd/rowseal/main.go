// Command rowseal builds and verifies tamper-evident tabular deliveries.
//
// Exit codes are part of the contract: 0 means verified/ok, 1 means a
// verification failure (the artifact is tampered or signed by another key),
// and 2 means malformed input or bad invocation. Automation relies on 1 and
// 2 staying distinct.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rowseal/rowseal/attest"
	"github.com/rowseal/rowseal/delivery"
	"github.com/rowseal/rowseal/keys"
	"github.com/rowseal/rowseal/merkle"
)

const (
	exitOK        = 0
	exitInvalid   = 1
	exitMalformed = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return exitMalformed
	}

	switch args[0] {
	case "verify-manifest":
		return cmdVerifyManifest(args[1:], out, errOut)
	case "verify-merkle":
		return cmdVerifyMerkle(args[1:], out, errOut)
	case "verify-proof":
		return cmdVerifyProof(args[1:], out, errOut)
	case "verify-bundle":
		return cmdVerifyBundle(args[1:], out, errOut)
	case "build":
		return cmdBuild(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "archive":
		return cmdArchive(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return exitOK
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return exitMalformed
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "rowseal: tabular dataset integrity tooling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  rowseal verify-manifest --manifest <file> --sig <file> --pub <pem>")
	fmt.Fprintln(w, "  rowseal verify-merkle --root <file> --sig <file> --pub <pem>")
	fmt.Fprintln(w, "  rowseal verify-proof --proof <json> --root <file>")
	fmt.Fprintln(w, "  rowseal verify-bundle --dir <delivery-dir> [--pub <pem>]")
	fmt.Fprintln(w, "  rowseal build --input <csv> --out <dir> [--samples 0,1,2] [--no-header] (--seed-hex <64hex> | --signer <name> [--signer-purpose <p>] | --key-file <path>)")
	fmt.Fprintln(w, "  rowseal key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  rowseal key derive --from <name> --purpose <purpose> [--force]")
	fmt.Fprintln(w, "  rowseal key list")
	fmt.Fprintln(w, "  rowseal key export --name <name> [--purpose <purpose>]")
	fmt.Fprintln(w, "  rowseal archive put|get|has --backend <name> [backend flags] <arg>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 verified/ok, 1 verification failed, 2 malformed input or usage.")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - keys are stored under ~/.rowseal/keys/<name> (0600 seed files)")
	fmt.Fprintln(w, "  - build never writes private key material into the delivery directory")
}

func readAll(path string, errOut io.Writer) ([]byte, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", path, err)
		return nil, false
	}
	return b, true
}

func loadPub(path string, errOut io.Writer) ([]byte, bool) {
	pemBytes, ok := readAll(path, errOut)
	if !ok {
		return nil, false
	}
	pub, err := attest.ParsePublicKeyPEM(pemBytes)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return nil, false
	}
	return pub, true
}

func cmdVerifyManifest(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify-manifest", flag.ContinueOnError)
	fs.SetOutput(errOut)
	manifestPath := fs.String("manifest", "", "manifest file")
	sigPath := fs.String("sig", "", "detached signature file")
	pubPath := fs.String("pub", "", "public key PEM")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}
	if *manifestPath == "" || *sigPath == "" || *pubPath == "" {
		fmt.Fprintln(errOut, "usage: rowseal verify-manifest --manifest <file> --sig <file> --pub <pem>")
		return exitMalformed
	}
	payload, ok := readAll(*manifestPath, errOut)
	if !ok {
		return exitMalformed
	}
	sig, ok := readAll(*sigPath, errOut)
	if !ok {
		return exitMalformed
	}
	pub, ok := loadPub(*pubPath, errOut)
	if !ok {
		return exitMalformed
	}
	return reportSignature(attest.Verify("ed25519", payload, sig, pub), out, errOut)
}

func cmdVerifyMerkle(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify-merkle", flag.ContinueOnError)
	fs.SetOutput(errOut)
	rootPath := fs.String("root", "", "merkle root text file")
	sigPath := fs.String("sig", "", "detached signature file")
	pubPath := fs.String("pub", "", "public key PEM")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}
	if *rootPath == "" || *sigPath == "" || *pubPath == "" {
		fmt.Fprintln(errOut, "usage: rowseal verify-merkle --root <file> --sig <file> --pub <pem>")
		return exitMalformed
	}
	rootText, ok := readAll(*rootPath, errOut)
	if !ok {
		return exitMalformed
	}
	root, err := merkle.ParseRootText(rootText)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	sig, ok := readAll(*sigPath, errOut)
	if !ok {
		return exitMalformed
	}
	pub, ok := loadPub(*pubPath, errOut)
	if !ok {
		return exitMalformed
	}
	// The signature covers the canonical hex text, exactly as published.
	return reportSignature(attest.Verify("ed25519", []byte(merkle.FormatRootHex(root)), sig, pub), out, errOut)
}

func reportSignature(err error, out io.Writer, errOut io.Writer) int {
	switch {
	case err == nil:
		fmt.Fprintln(out, "signature: valid")
		return exitOK
	case errors.Is(err, attest.ErrSignatureInvalid):
		fmt.Fprintln(out, "signature: invalid")
		return exitInvalid
	default:
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
}

func cmdVerifyProof(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify-proof", flag.ContinueOnError)
	fs.SetOutput(errOut)
	proofPath := fs.String("proof", "", "inclusion proof JSON")
	rootPath := fs.String("root", "", "merkle root text file")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}
	if *proofPath == "" || *rootPath == "" {
		fmt.Fprintln(errOut, "usage: rowseal verify-proof --proof <json> --root <file>")
		return exitMalformed
	}
	proofBytes, ok := readAll(*proofPath, errOut)
	if !ok {
		return exitMalformed
	}
	art, err := merkle.ParseArtifact(proofBytes)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	rootText, ok := readAll(*rootPath, errOut)
	if !ok {
		return exitMalformed
	}
	root, err := merkle.ParseRootText(rootText)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	rep, err := merkle.VerifyArtifact(art, root)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	// Both digests print on every outcome for audit.
	fmt.Fprintf(out, "computed_root: %s\n", rep.ComputedHex)
	fmt.Fprintf(out, "expected_root: %s\n", rep.ExpectedHex)
	fmt.Fprintf(out, "match: %v\n", rep.Match)
	if !rep.Match {
		return exitInvalid
	}
	return exitOK
}

func cmdVerifyBundle(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify-bundle", flag.ContinueOnError)
	fs.SetOutput(errOut)
	dir := fs.String("dir", "", "delivery directory")
	pubPath := fs.String("pub", "", "public key PEM (defaults to the bundle's published key)")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}
	if *dir == "" {
		fmt.Fprintln(errOut, "usage: rowseal verify-bundle --dir <delivery-dir> [--pub <pem>]")
		return exitMalformed
	}
	keyPath := *pubPath
	if keyPath == "" {
		keyPath = filepath.Join(*dir, delivery.PublicKeyName)
		fmt.Fprintln(errOut, "warning: trusting the bundle's own published key; pass --pub for an independent key")
	}
	pemBytes, ok := readAll(keyPath, errOut)
	if !ok {
		return exitMalformed
	}
	rep, err := delivery.VerifyBundle(*dir, pemBytes)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	fmt.Fprintf(out, "manifest_signature: %v\n", rep.ManifestSignatureOK)
	if rep.RootSigned {
		fmt.Fprintf(out, "root_signature: %v\n", rep.RootSignatureOK)
	}
	fmt.Fprintf(out, "root: %s\n", rep.RootHex)
	for _, p := range rep.Proofs {
		fmt.Fprintf(out, "proof %s: match=%v computed=%s\n", p.File, p.Report.Match, p.Report.ComputedHex)
	}
	if !rep.Valid() {
		return exitInvalid
	}
	return exitOK
}

func cmdBuild(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(errOut)
	input := fs.String("input", "", "input CSV file")
	outDir := fs.String("out", "", "delivery output directory")
	samples := fs.String("samples", "0,1,2,3,4,5,6,7,8,9", "comma-separated row indices to publish proofs for")
	noHeader := fs.Bool("no-header", false, "treat the first CSV line as data, not a header")
	seedHex := fs.String("seed-hex", "", "inline ed25519 seed (64 hex chars)")
	signer := fs.String("signer", "", "key store signer name")
	signerPurpose := fs.String("signer-purpose", "", "key store signer purpose")
	keyFile := fs.String("key-file", "", "path to a seed file")
	if err := fs.Parse(args); err != nil {
		return exitMalformed
	}
	if *input == "" || *outDir == "" {
		fmt.Fprintln(errOut, "usage: rowseal build --input <csv> --out <dir> ...")
		return exitMalformed
	}

	rows, err := readCSVRows(*input, !*noHeader)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}

	var indices []int
	for _, part := range strings.Split(*samples, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			fmt.Fprintf(errOut, "invalid sample index %q\n", part)
			return exitMalformed
		}
		indices = append(indices, n)
	}

	ks, err := keys.Open("")
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	seed, err := ks.LoadSeed(*seedHex, *signer, *signerPurpose, *keyFile)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	priv, err := keys.PrivateKeyFromSeed(seed)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}

	rootHex, err := delivery.Write(delivery.WriteParams{
		Rows:          rows,
		DatasetPath:   *input,
		OutDir:        *outDir,
		SampleIndices: indices,
		Signer:        priv,
	})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	fmt.Fprintf(out, "merkle_root: %s\n", rootHex)
	fmt.Fprintf(out, "delivery: %s\n", *outDir)
	return exitOK
}

func readCSVRows(path string, skipHeader bool) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	// Rows keep their raw field widths; the tree is order- and
	// width-sensitive on purpose.
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if skipHeader && len(records) > 0 {
		records = records[1:]
	}
	return records, nil
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: rowseal key <init|derive|list|export> ...")
		return exitMalformed
	}
	ks, err := keys.Open("")
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("key init", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "key name")
		seedHex := fs.String("seed-hex", "", "ed25519 seed (64 hex chars); generated if omitted")
		force := fs.Bool("force", false, "overwrite an existing key")
		if err := fs.Parse(args[1:]); err != nil {
			return exitMalformed
		}
		if *name == "" {
			fmt.Fprintln(errOut, "usage: rowseal key init --name <name> [--seed-hex <64hex>] [--force]")
			return exitMalformed
		}
		var seed []byte
		if *seedHex != "" {
			seed, err = keys.ParseSeedHex(*seedHex)
			if err != nil {
				fmt.Fprintln(errOut, err)
				return exitMalformed
			}
		} else {
			seed = make([]byte, 32)
			if _, err := rand.Read(seed); err != nil {
				fmt.Fprintln(errOut, err)
				return exitMalformed
			}
		}
		signerKey, path, err := ks.InitializeRootKey(*name, seed, *force)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		fmt.Fprintf(out, "%s\t%s\n", signerKey, path)
		return exitOK

	case "derive":
		fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
		fs.SetOutput(errOut)
		from := fs.String("from", "", "root key name")
		purpose := fs.String("purpose", "", "derivation purpose (e.g. manifest, merkle-root)")
		force := fs.Bool("force", false, "overwrite an existing derived key")
		if err := fs.Parse(args[1:]); err != nil {
			return exitMalformed
		}
		if *from == "" || *purpose == "" {
			fmt.Fprintln(errOut, "usage: rowseal key derive --from <name> --purpose <purpose> [--force]")
			return exitMalformed
		}
		signerKey, path, err := ks.DeriveKeyForPurpose(*from, *purpose, *force)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		fmt.Fprintf(out, "%s\t%s\n", signerKey, path)
		return exitOK

	case "list":
		entries, err := ks.ListKeys()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		for _, e := range entries {
			if len(e.Purposes) == 0 {
				fmt.Fprintln(out, e.Identifier)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", e.Identifier, strings.Join(e.Purposes, ","))
		}
		return exitOK

	case "export":
		fs := flag.NewFlagSet("key export", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "key name")
		purpose := fs.String("purpose", "", "derivation purpose")
		asPEM := fs.Bool("pem", false, "export the public key as PEM instead of the signer-key string")
		if err := fs.Parse(args[1:]); err != nil {
			return exitMalformed
		}
		if *name == "" {
			fmt.Fprintln(errOut, "usage: rowseal key export --name <name> [--purpose <purpose>] [--pem]")
			return exitMalformed
		}
		signerKey, err := ks.ExportKey(*name, *purpose)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		if !*asPEM {
			fmt.Fprintln(out, signerKey)
			return exitOK
		}
		seed, err := ks.LoadSeed("", *name, *purpose, "")
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		priv, err := keys.PrivateKeyFromSeed(seed)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		pemBytes, err := attest.EncodePublicKeyPEM(priv.Public().(ed25519.PublicKey))
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		_, _ = out.Write(pemBytes)
		return exitOK

	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n", args[0])
		return exitMalformed
	}
}
