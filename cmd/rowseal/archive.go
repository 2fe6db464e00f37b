package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ipfs/go-cid"

	"github.com/rowseal/rowseal/storage"
	"github.com/rowseal/rowseal/storage/registry"

	// Build-time store backends.
	_ "github.com/rowseal/rowseal/storage/grpcarchive"
	_ "github.com/rowseal/rowseal/storage/localfs"
)

func cmdArchive(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: rowseal archive <put|get|has> --backend <name> [backend flags] <arg>")
		fmt.Fprintln(errOut, "backends:")
		for _, b := range registry.List(registry.UsageCLI) {
			fmt.Fprintf(errOut, "  %s\t%s\n", b.Name, b.Description)
		}
		return exitMalformed
	}
	verb := args[0]
	switch verb {
	case "put", "get", "has":
	default:
		fmt.Fprintf(errOut, "unknown archive subcommand: %s\n", verb)
		return exitMalformed
	}

	fs := flag.NewFlagSet("archive "+verb, flag.ContinueOnError)
	fs.SetOutput(errOut)
	backend := fs.String("backend", "localfs", "artifact store backend")
	registry.RegisterFlags(fs, registry.UsageCLI)
	if err := fs.Parse(args[1:]); err != nil {
		return exitMalformed
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(errOut, "usage: rowseal archive %s --backend <name> [backend flags] <arg>\n", verb)
		return exitMalformed
	}

	st, closeFn, err := registry.Open(*backend, registry.UsageCLI)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return exitMalformed
	}
	if closeFn != nil {
		defer closeFn()
	}

	switch verb {
	case "put":
		b, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
			return exitMalformed
		}
		id, err := st.Put(b)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return exitMalformed
		}
		fmt.Fprintln(out, id.String())
		return exitOK

	case "get":
		id, err := cid.Decode(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(errOut, storage.ErrInvalidCID)
			return exitMalformed
		}
		b, err := st.Get(id)
		if err != nil {
			fmt.Fprintln(errOut, err)
			if storage.IsNotFound(err) {
				return exitInvalid
			}
			return exitMalformed
		}
		_, _ = out.Write(b)
		return exitOK

	default: // has
		id, err := cid.Decode(fs.Arg(0))
		if err != nil {
			fmt.Fprintln(errOut, storage.ErrInvalidCID)
			return exitMalformed
		}
		if !st.Has(id) {
			fmt.Fprintln(out, "absent")
			return exitInvalid
		}
		fmt.Fprintln(out, "present")
		return exitOK
	}
}
