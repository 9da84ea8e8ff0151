package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌─┐┌─┐┬ ┬┌─┐
  ╠═╝│ │├─┘│ │├─┘
  ╩  └─┘┴  └─┘┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "popup",
		Short: "Floating popup orchestration for Go",
		Long: `Popup is a server-driven floating overlay controller.

It manages open/close lifecycles with cancellable transitions,
anchored positioning with viewport flipping, and focus transfer.
The bundled playground serves an interactive demo:

  • Open/close orchestration with reveal and hide effects
  • Anchored placement with flip and clamp
  • Live state, events, and animation frames over WebSocket
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
