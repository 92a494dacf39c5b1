package main_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ladzaretti/vaultengine/cli"
	"github.com/ladzaretti/vaultengine/genericclioptions"
)

// run executes the root command against a mock, non-terminal stdin. Commands
// that read the vault password go through term.ReadPassword against a real
// file descriptor and so cannot be driven this way; only password-free
// commands (config, generate-recovery-codes) are exercised here.
func run(args ...string) (string, string, error) {
	in := genericclioptions.NewTestFdReader(
		&bytes.Buffer{},
		0,
		genericclioptions.NewMockFileInfo("stdin", 0, 0, false, time.Time{}),
	)

	iostream, _, out, errOut := genericclioptions.NewTestIOStreams(in)

	cmd := cli.NewDefaultCommand(iostream, args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestGenerateRecoveryCodes(t *testing.T) {
	stdout, _, err := run("generate-recovery-codes")
	if err != nil {
		t.Fatalf("generate-recovery-codes: %v", err)
	}

	if len(strings.Fields(stdout)) == 0 {
		t.Errorf("expected non-empty output, got: %q", stdout)
	}
}

func TestConfig(t *testing.T) {
	stdout, _, err := run("config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	if !strings.Contains(stdout, "vault_path") {
		t.Errorf("expected resolved config output, got: %q", stdout)
	}
}
