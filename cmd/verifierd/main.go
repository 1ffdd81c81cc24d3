// Command verifierd runs the verifier: the service that double-checks every
// proof bundle the sequencer forwards and advances its own root history on
// success.
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
	"github.com/sanctum-labs/sanctum/internal/verifier"
	"github.com/sanctum-labs/sanctum/internal/zkp"
)

const banner = `
  ___              _
 / __| __ _ _ _  __| |_ _  _ _ __
 \__ \/ _' | ' \/ _|  _| || | '  \
 |___/\__,_|_||_\__|\__|\_,_|_|_|_|

  verifier daemon
`

func main() {
	cfg := config.ParseVerifierFlags()
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
		log.WithError(err).Fatal("verifier exited")
	}
}

func run(ctx context.Context, cfg *config.VerifierConfig, log *logrus.Logger) error {
	variant, err := zkp.ParseCommitmentVariant(cfg.CommitmentVar)
	if err != nil {
		return err
	}

	log.Info("compiling circuits")
	driver := zkp.NewCircuitDriver()
	if err := driver.Compile(zkp.StatementOnRamp, &zkp.OnRampCircuit{Variant: variant}); err != nil {
		return fmt.Errorf("compile onramp circuit: %w", err)
	}
	if err := driver.Compile(zkp.StatementPayment, &zkp.PaymentCircuit{}); err != nil {
		return fmt.Errorf("compile payment circuit: %w", err)
	}
	if err := driver.Compile(zkp.StatementMerkleUpdate, &zkp.MerkleUpdateCircuit{}); err != nil {
		return fmt.Errorf("compile merkle-update circuit: %w", err)
	}

	state := verifier.NewState(driver, cfg.TreeDepth, log)
	server := verifier.NewServer(state)

	mux := http.NewServeMux()
	server.Routes(mux)

	httpServer := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	log.WithField("addr", cfg.ListenAddr).Info("verifier listening")

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return httpServer.Close()
	case err := <-errCh:
		return err
	}
}
