package cmd

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"go.uber.org/zap"
)

const (
	EnvLedgerFile  = "PAYSCOPE_LEDGER_FILE"
	EnvRosterFile  = "PAYSCOPE_ROSTER_FILE"
	EnvPlayer      = "PAYSCOPE_PLAYER"
	EnvCurrency    = "PAYSCOPE_CURRENCY"
	EnvVerbose     = "PAYSCOPE_VERBOSE"
	EnvLogLevel    = "PAYSCOPE_LOG_LEVEL"
	EnvLogEncoding = "PAYSCOPE_LOG_ENCODING"
)

// ExtensionPrefix prefixes the name of external sub-command executables.
const ExtensionPrefix = "money-"

// RunExtension attempts to find and execute an external money-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := ExtensionPrefix + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		Logger().Debug("external command not found in PATH", zap.String("command", externalCmdName), zap.Error(err))
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = extensionEnv(os.Environ())

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		// If it's not an ExitError or we can't get the status, report a generic error
		Logger().Error("failed to execute external command", zap.String("command", externalCmdName), zap.Error(err))
		return true, 1
	}
	return true, 0
}

// extensionEnv passes global flags to extensions as environment variables.
func extensionEnv(base []string) []string {
	env := append([]string(nil), base...)
	env = append(env, EnvLedgerFile+"="+*ledgerFile)
	env = append(env, EnvRosterFile+"="+*rosterFile)
	env = append(env, EnvPlayer+"="+*caller)
	env = append(env, EnvCurrency+"="+*currency)
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*Verbose))
	return env
}
