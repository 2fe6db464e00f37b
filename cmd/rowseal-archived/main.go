// Command rowseal-archived serves a delivery-artifact store over gRPC.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/rowseal/rowseal/storage/grpcarchive"
	"github.com/rowseal/rowseal/storage/registry"

	_ "github.com/rowseal/rowseal/storage/localfs"
)

func main() {
	fs := flag.NewFlagSet("rowseal-archived", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7944", "listen address")
	backend := fs.String("backend", "localfs", "artifact store backend")
	listBackends := fs.Bool("list-backends", false, "list supported backends and exit")

	registry.RegisterFlags(fs, registry.UsageDaemon)

	_ = fs.Parse(os.Args[1:])
	if *listBackends {
		for _, b := range registry.List(registry.UsageDaemon) {
			if b.Description == "" {
				fmt.Fprintf(os.Stdout, "%s\n", b.Name)
				continue
			}
			fmt.Fprintf(os.Stdout, "%s\t%s\n", b.Name, b.Description)
		}
		return
	}

	st, closeFn, err := registry.Open(*backend, registry.UsageDaemon)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcarchive.RegisterArchiveServer(s, &grpcarchive.Server{Store: st})

	fmt.Fprintf(os.Stderr, "rowseal-archived listening on %s (backend=%s)\n", lis.Addr().String(), *backend)
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
