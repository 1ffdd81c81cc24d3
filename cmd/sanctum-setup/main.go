// Command sanctum-setup runs a local (non-ceremony) Groth16 setup for the
// three circuit statements and writes their proving/verifying keys to disk,
// base58-encoded, for the sequencer and verifier daemons to load (§4.7).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/gnark/frontend"
	"github.com/mr-tron/base58"

	"github.com/sanctum-labs/sanctum/internal/zkp"
)

func main() {
	outDir := flag.String("out", "./keys", "output directory for proving/verifying keys")
	commitmentVar := flag.String("commitment", "sha256", "note commitment scheme: sha256 or pedersen")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fail(fmt.Errorf("create output directory: %w", err))
	}

	variant, err := zkp.ParseCommitmentVariant(*commitmentVar)
	if err != nil {
		fail(err)
	}

	driver := zkp.NewCircuitDriver()

	if err := setupStatement(driver, *outDir, "onramp", zkp.StatementOnRamp, &zkp.OnRampCircuit{Variant: variant}); err != nil {
		fail(err)
	}
	if err := setupStatement(driver, *outDir, "payment", zkp.StatementPayment, &zkp.PaymentCircuit{}); err != nil {
		fail(err)
	}
	if err := setupStatement(driver, *outDir, "merkle_update", zkp.StatementMerkleUpdate, &zkp.MerkleUpdateCircuit{}); err != nil {
		fail(err)
	}

	fmt.Println("setup complete")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
	os.Exit(1)
}

// setupStatement compiles circuit, runs Groth16 setup, and writes the
// resulting proving and verifying keys to <outDir>/<name>.pk.b58 and
// <outDir>/<name>.vk.b58.
func setupStatement(driver *zkp.CircuitDriver, outDir, name string, kind zkp.StatementKind, circuit frontend.Circuit) error {
	fmt.Printf("compiling %s circuit...\n", name)
	if err := driver.Compile(kind, circuit); err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}

	pkBytes, vkBytes, err := driver.ExportKeys(kind)
	if err != nil {
		return fmt.Errorf("export %s keys: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(outDir, name+".pk.b58"), []byte(base58.Encode(pkBytes)), 0o644); err != nil {
		return fmt.Errorf("write %s proving key: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, name+".vk.b58"), []byte(base58.Encode(vkBytes)), 0o644); err != nil {
		return fmt.Errorf("write %s verifying key: %w", name, err)
	}

	fmt.Printf("wrote %s keys\n", name)
	return nil
}
