// Package main is the terminal health watcher. It polls the composite health
// endpoint on a fixed interval and prints one status line per evaluation.
//
// Usage:
//
//	statuswatch --url http://localhost:8080 --interval 5s
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stackpad/backend/internal/config"
	"stackpad/backend/internal/health"
	"stackpad/backend/internal/watch"
)

var rootCmd = &cobra.Command{
	Use:   "statuswatch",
	Short: "Watch the deployment's composite health",
	Long: `statuswatch polls the backend's composite health endpoint and prints
one status line per evaluation: overall state plus each component.

The first evaluation fires immediately; later ones follow a fixed interval
with no backoff. A backend that cannot be reached at all shows as ERROR with
a cannot-connect hint. Stop with Ctrl+C.`,
	RunE:          runWatch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().String("url", "", "base URL of the backend (default $API_BASE_URL or "+config.DefaultWatchBaseURL+")")
	rootCmd.Flags().Duration("interval", 0, "polling interval (default $POLL_INTERVAL or 5s)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseURL, _ := cmd.Flags().GetString("url")
	if baseURL == "" {
		baseURL = cfg.Watch.BaseURL
	}
	interval, _ := cmd.Flags().GetDuration("interval")
	if interval <= 0 {
		interval = cfg.Watch.Interval
	}

	url := strings.TrimRight(baseURL, "/") + "/api/health"
	fmt.Printf("watching %s every %s\n", url, interval)

	watcher := watch.New(url, watch.Options{
		Interval: interval,
		OnUpdate: renderLine,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher.Start(ctx)
	<-ctx.Done()
	watcher.Stop()

	fmt.Println("\nstopped")
	return nil
}

// renderLine prints one evaluation result. Only the state's own diagnostic
// is shown on failure, never a stack trace.
func renderLine(snap watch.Snapshot) {
	state := snap.State
	overall := watch.Presentation(state.Status.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s %s",
		state.Timestamp.Local().Format(time.TimeOnly),
		overall.Colorize(overall.Symbol),
		overall.Colorize(overall.Label),
	)

	for _, name := range []string{"database", "redis"} {
		if status, ok := state.Services[name]; ok {
			v := watch.Presentation(status.String())
			fmt.Fprintf(&b, "  %s=%s", name, v.Colorize(v.Label))
		}
	}

	if state.Status == health.StatusError {
		msg := state.Error
		if msg == "" {
			msg = "unknown failure"
		}
		fmt.Fprintf(&b, "  (%s; is the backend running?)", msg)
	}

	fmt.Println(b.String())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "statuswatch:", err)
		os.Exit(1)
	}
}
