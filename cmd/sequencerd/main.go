// Command sequencerd runs the sequencer: the stateful service that accepts
// on-ramp and payment proofs, appends note commitments to its Merkle tree,
// and forwards proof bundles to the verifier.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/sanctum-labs/sanctum/internal/config"
	"github.com/sanctum-labs/sanctum/internal/logging"
	"github.com/sanctum-labs/sanctum/internal/sequencer"
	"github.com/sanctum-labs/sanctum/internal/storage"
	"github.com/sanctum-labs/sanctum/internal/zkp"
)

const banner = `
  ___              _
 / __| __ _ _ _  __| |_ _  _ _ __
 \__ \/ _' | ' \/ _|  _| || | '  \
 |___/\__,_|_||_\__|\__|\_,_|_|_|_|

  sequencer daemon
`

func main() {
	cfg := config.ParseSequencerFlags()
	fmt.Print(banner)

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("sequencer exited")
	}
}

func run(ctx context.Context, cfg *config.SequencerConfig, log *logrus.Logger) error {
	log.Info("connecting to database")
	store, err := storage.NewPostgresStore(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	tree := zkp.NewFullTree(store, cfg.TreeDepth)
	if err := tree.Load(ctx); err != nil {
		return fmt.Errorf("load merkle tree: %w", err)
	}

	commitment, err := newCommitmentScheme(cfg.CommitmentVar)
	if err != nil {
		return err
	}

	log.Info("compiling circuits")
	driver := zkp.NewCircuitDriver()
	if err := driver.Compile(zkp.StatementOnRamp, &zkp.OnRampCircuit{Variant: commitment.Variant()}); err != nil {
		return fmt.Errorf("compile onramp circuit: %w", err)
	}
	if err := driver.Compile(zkp.StatementPayment, &zkp.PaymentCircuit{}); err != nil {
		return fmt.Errorf("compile payment circuit: %w", err)
	}
	if err := driver.Compile(zkp.StatementMerkleUpdate, &zkp.MerkleUpdateCircuit{}); err != nil {
		return fmt.Errorf("compile merkle-update circuit: %w", err)
	}

	state := &sequencer.State{
		Tree:       tree,
		Nullifiers: store,
		Circuits:   driver,
		Commitment: commitment,
		Log:        log,
	}

	server := sequencer.NewServer(state, cfg.VerifierAddr)
	mux := http.NewServeMux()
	server.Routes(mux)

	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	log.WithField("addr", cfg.ListenAddr).Info("sequencer listening")

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return httpServer.Close()
	case err := <-errCh:
		return err
	}
}

func newCommitmentScheme(variant string) (zkp.CommitmentScheme, error) {
	switch variant {
	case "pedersen":
		return zkp.NewPedersenCommitmentScheme(zkp.TrustedSetupPedersenGenerators()), nil
	case "sha256", "":
		return zkp.NewSha256CommitmentScheme(), nil
	default:
		return nil, fmt.Errorf("unknown commitment variant %q", variant)
	}
}
