// Package config defines the flag-parsed startup configuration shared by
// the sequencer and verifier daemons.
package config

import (
	"flag"

	"github.com/sanctum-labs/sanctum/internal/storage"
)

// SequencerConfig holds cmd/sequencerd's startup flags.
type SequencerConfig struct {
	DB storage.Config

	ListenAddr    string
	VerifierAddr  string
	KeyDir        string
	TreeDepth     int
	CommitmentVar string // "sha256" or "pedersen"

	LogLevel string
}

// ParseSequencerFlags parses os.Args into a SequencerConfig.
func ParseSequencerFlags() *SequencerConfig {
	cfg := &SequencerConfig{}

	flag.StringVar(&cfg.DB.Host, "db-host", "localhost", "PostgreSQL host")
	flag.IntVar(&cfg.DB.Port, "db-port", 5432, "PostgreSQL port")
	flag.StringVar(&cfg.DB.User, "db-user", "sanctum", "PostgreSQL user")
	flag.StringVar(&cfg.DB.Password, "db-password", "", "PostgreSQL password")
	flag.StringVar(&cfg.DB.Database, "db-name", "sanctum", "PostgreSQL database name")

	flag.StringVar(&cfg.ListenAddr, "listen", "127.0.0.1:8080", "sequencer HTTP listen address")
	flag.StringVar(&cfg.VerifierAddr, "verifier-addr", "http://127.0.0.1:8081", "verifier base URL")
	flag.StringVar(&cfg.KeyDir, "key-dir", "./keys", "directory holding proving/verifying keys")
	flag.IntVar(&cfg.TreeDepth, "tree-depth", 8, "Merkle tree depth")
	flag.StringVar(&cfg.CommitmentVar, "commitment", "sha256", "note commitment scheme: sha256 or pedersen")

	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	flag.Parse()
	cfg.DB.SSLMode = "disable"
	cfg.DB.MaxConns = 20

	return cfg
}

// VerifierConfig holds cmd/verifierd's startup flags.
type VerifierConfig struct {
	ListenAddr    string
	KeyDir        string
	TreeDepth     int
	CommitmentVar string

	LogLevel string
}

// ParseVerifierFlags parses os.Args into a VerifierConfig.
func ParseVerifierFlags() *VerifierConfig {
	cfg := &VerifierConfig{}

	flag.StringVar(&cfg.ListenAddr, "listen", "127.0.0.1:8081", "verifier HTTP listen address")
	flag.StringVar(&cfg.KeyDir, "key-dir", "./keys", "directory holding verifying keys")
	flag.IntVar(&cfg.TreeDepth, "tree-depth", 8, "Merkle tree depth")
	flag.StringVar(&cfg.CommitmentVar, "commitment", "sha256", "note commitment scheme: sha256 or pedersen")

	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	flag.Parse()
	return cfg
}
