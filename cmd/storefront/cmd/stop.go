package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running storefront server",
	Long: `Stop a running storefront server by reading its PID file and sending SIGTERM.

The PID file is located at ~/.storefront/server.pid.

Examples:
  # Stop the running server
  storefront stop`,
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	pidPath := pidFilePath()

	pid := readPIDFile(pidPath)
	if pid == 0 {
		return fmt.Errorf("no server PID file found at %s\nIs the server running?", pidPath)
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		os.Remove(pidPath)
		return fmt.Errorf("invalid PID %d: %w", pid, err)
	}

	if !processIsAlive(proc) {
		os.Remove(pidPath)
		return fmt.Errorf("server process %d is not running (stale PID file removed)", pid)
	}

	// Send graceful stop signal (SIGTERM on Unix, Kill on Windows).
	fmt.Fprintf(os.Stderr, "Stopping storefront server (PID %d)...\n", pid)
	if err := sendGracefulStop(proc); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Wait for the process to exit (poll every 200ms, max 10s).
	for i := 0; i < 50; i++ {
		time.Sleep(200 * time.Millisecond)
		if !processIsAlive(proc) {
			os.Remove(pidPath)
			fmt.Fprintf(os.Stderr, "Server stopped.\n")
			return nil
		}
	}

	// Still alive after 10s — force kill.
	fmt.Fprintf(os.Stderr, "Server did not stop gracefully, sending SIGKILL...\n")
	_ = proc.Kill()
	os.Remove(pidPath)
	fmt.Fprintf(os.Stderr, "Server killed.\n")
	return nil
}

// readPIDFile reads a PID from the given file path. Returns 0 if unreadable.
func readPIDFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}
