// Package clierror renders errors returned by command options into
// user-facing messages and drives the process exit code.
package clierror

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ladzaretti/vaultengine/vaulterrors"
)

const (
	DefaultErrorExitCode = 1
)

var (
	// errHandler is the function used to handle cli errors.
	errHandler = FatalErrHandler

	// errWriter is used to output cli error messages.
	errWriter io.Writer = os.Stderr

	// fprintf is the function used to format and print errors.
	fprintf = fmt.Fprintf

	// debugMode enables always printing raw error values.
	debugMode bool
)

// SetErrorHandler overrides the default [FatalErrHandler] error handler.
func SetErrorHandler(f func(string, int)) {
	errHandler = f
}

// ResetErrorHandler restores the default error handler.
func ResetErrorHandler() {
	errHandler = FatalErrHandler
}

// SetErrWriter overrides the default error output writer [os.Stderr].
func SetErrWriter(w io.Writer) {
	errWriter = w
}

// ResetErrWriter restores the default error output writer to [os.Stderr].
func ResetErrWriter() {
	errWriter = os.Stderr
}

// DebugMode sets whether debug logging is enabled.
//
// When enabled, raw error values are printed to stderr.
func DebugMode(enabled bool) {
	debugMode = enabled
}

// FatalErrHandler prints the message provided and then exits with the given code.
func FatalErrHandler(msg string, code int) {
	printError(msg)

	//nolint:revive // Intentional exit after fatal error.
	os.Exit(code)
}

func PrintErrHandler(msg string, _ int) {
	printError(msg)
}

func printError(msg string) {
	if len(msg) == 0 {
		return
	}

	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	_, _ = fprintf(errWriter, msg)
}

func debugPrint(err error) {
	if !debugMode {
		return
	}

	_, _ = fprintf(errWriter, "DEBUG %+v\n", err)
}

// ErrExit may be passed to Check to instruct it to output nothing but exit with
// status code 1.
var ErrExit = errors.New("exit")

// Check prints a user-friendly error message and invokes the configured error handler.
//
// When the [FatalErrHandler] is used, the program will exit before this function returns.
func Check(err error) error {
	check(err, errHandler)
	return err
}

//nolint:revive
func check(err error, handleErr func(string, int)) {
	if err == nil {
		return
	}

	debugPrint(err)

	if errors.Is(err, ErrExit) {
		handleErr("", DefaultErrorExitCode)
		return
	}

	switch {
	case vaulterrors.Is(err, vaulterrors.KindAlreadyExists):
		handleErr("vaultengine: vault file already exists\nDelete the file first, or choose a different --file path.", DefaultErrorExitCode)
	case vaulterrors.Is(err, vaulterrors.KindNotFound):
		handleErr("vaultengine: "+err.Error(), DefaultErrorExitCode)
	case vaulterrors.Is(err, vaulterrors.KindAuth):
		handleErr("vaultengine: incorrect password, or the vault file has been tampered with", DefaultErrorExitCode)
	case vaulterrors.Is(err, vaulterrors.KindVaultLocked):
		handleErr("vaultengine: session is locked, reopen the vault to continue", DefaultErrorExitCode)
	case vaulterrors.Is(err, vaulterrors.KindSizeLimit):
		handleErr("vaultengine: "+err.Error(), DefaultErrorExitCode)
	case errors.Is(err, vaulterrors.ErrNonInteractiveUnsupported):
		handleErr("vaultengine: this command supports interactive input only.", DefaultErrorExitCode)
	case errors.Is(err, vaulterrors.ErrSearchNoMatch):
		handleErr("vaultengine: no matching entry found.", DefaultErrorExitCode)
	default:
		msg := err.Error()
		if !strings.HasPrefix(msg, "vaultengine: ") {
			msg = "vaultengine: " + msg
		}

		handleErr(msg, DefaultErrorExitCode)
	}
}
