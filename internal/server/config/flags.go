package config

import (
	"flag"
	"os"
	"time"

	"github.com/BreegBenjamin/MinimalAPIsMovies/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-w int      shutdown timeout, seconds
//	-r string   vault region
//	-v string   vault base endpoint
//	-u string   vault access key
//	-p string   vault secret key
//	-b string   S3 container for movie assets
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Signing keys
// have no flag form; they are configured through the JSON file only.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-w", "-r", "-v", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	shutdownTimeout := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	fs.StringVar(&config.VaultRegion, "r", config.VaultRegion, "secret vault region")
	fs.StringVar(&config.VaultBaseEndpoint, "v", config.VaultBaseEndpoint, "secret vault base endpoint")
	fs.StringVar(&config.VaultAccessKey, "u", config.VaultAccessKey, "secret vault access key")
	fs.StringVar(&config.VaultSecretKey, "p", config.VaultSecretKey, "secret vault secret key")
	fs.StringVar(&config.S3Container, "b", config.S3Container, "S3 container for movie assets")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
