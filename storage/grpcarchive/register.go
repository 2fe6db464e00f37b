package grpcarchive

import (
	"flag"
	"fmt"
	"time"

	"github.com/rowseal/rowseal/storage"
	"github.com/rowseal/rowseal/storage/registry"
)

var (
	flagTarget  string
	flagTimeout time.Duration
)

func init() {
	registry.MustRegister(registry.Backend{
		Name:        "grpc",
		Description: "Remote artifact store over gRPC",
		Usage:       registry.UsageCLI,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagTarget, "grpc-target", "", "archive daemon address (for --backend=grpc)")
			fs.DurationVar(&flagTimeout, "grpc-timeout", 10*time.Second, "per-RPC timeout (for --backend=grpc)")
		},
		Open: func() (storage.Store, func() error, error) {
			if flagTarget == "" {
				return nil, nil, fmt.Errorf("missing --grpc-target")
			}
			c, err := Dial(flagTarget, DialOptions{Timeout: flagTimeout})
			if err != nil {
				return nil, nil, err
			}
			c.Timeout = flagTimeout
			return c, c.Close, nil
		},
	})
}
