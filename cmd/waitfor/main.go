// Package main is the parallel readiness waiter used by compose and CI to
// block until every named service answers.
//
// Usage:
//
//	waitfor postgres=http://localhost:8080/api/health/db redis=http://localhost:8080/api/health/redis
//	waitfor --max-wait 60s --interval 2s api=http://localhost:8080/health
//
// Exit code 0 when every target reported success within its budget, 1
// otherwise. Each target waits independently; one target timing out never
// cancels the others.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stackpad/backend/internal/config"
	"stackpad/backend/internal/waitfor"
)

var rootCmd = &cobra.Command{
	Use:   "waitfor name=url [name=url ...]",
	Short: "Wait for services to become ready",
	Long: `waitfor polls each named URL until it answers with a 2xx status or the
wait budget runs out. All targets are polled in parallel; the run succeeds
only if every target came up in time.

Targets may also be supplied via $WAIT_TARGETS as a comma-separated list of
name=url pairs. Budget and interval default to $MAX_WAIT (60s) and
$CHECK_INTERVAL (2s); bare integers are read as seconds.`,
	RunE:          runWait,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().Duration("max-wait", 0, "cumulative wait budget per target (default $MAX_WAIT or 60s)")
	rootCmd.Flags().Duration("interval", 0, "delay between attempts (default $CHECK_INTERVAL or 2s)")
	rootCmd.Flags().Duration("timeout", 0, "per-attempt timeout (default $ATTEMPT_TIMEOUT or 2s)")
	rootCmd.Flags().Bool("quiet", false, "suppress progress dots")
}

// errNotReady marks the some-targets-failed outcome so main can exit 1
// without cobra treating it as a usage problem.
var errNotReady = fmt.Errorf("one or more targets did not become ready")

func runWait(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	targets, err := parseTargets(args)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets given; pass name=url arguments or set $WAIT_TARGETS")
	}

	opts := waitfor.Options{
		MaxWait:        cfg.Wait.MaxWait,
		Interval:       cfg.Wait.CheckInterval,
		AttemptTimeout: cfg.Wait.AttemptTimeout,
		Progress:       os.Stdout,
	}
	if d, _ := cmd.Flags().GetDuration("max-wait"); d > 0 {
		opts.MaxWait = d
	}
	if d, _ := cmd.Flags().GetDuration("interval"); d > 0 {
		opts.Interval = d
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		opts.AttemptTimeout = d
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		opts.Progress = nil
	}

	fmt.Printf("waiting for %d target(s), budget %s, interval %s\n",
		len(targets), opts.MaxWait, opts.Interval)

	results := waitfor.Wait(context.Background(), targets, opts)

	fmt.Println()
	for _, r := range results {
		if r.OK {
			fmt.Printf("  ok   %-12s %s (%d attempt(s), %s)\n",
				r.Target.Name, r.Target.URL, r.Attempts, r.Elapsed.Round(10*time.Millisecond))
		} else {
			fmt.Printf("  FAIL %-12s %s (%d attempt(s), %s): %v\n",
				r.Target.Name, r.Target.URL, r.Attempts, r.Elapsed.Round(10*time.Millisecond), r.Err)
		}
	}

	if !waitfor.AllOK(results) {
		return errNotReady
	}
	return nil
}

// parseTargets reads name=url pairs from args, falling back to $WAIT_TARGETS.
func parseTargets(args []string) ([]waitfor.Target, error) {
	if len(args) == 0 {
		if env := os.Getenv("WAIT_TARGETS"); env != "" {
			for _, part := range strings.Split(env, ",") {
				if part = strings.TrimSpace(part); part != "" {
					args = append(args, part)
				}
			}
		}
	}

	targets := make([]waitfor.Target, 0, len(args))
	for _, arg := range args {
		name, url, ok := strings.Cut(arg, "=")
		if !ok || name == "" || url == "" {
			return nil, fmt.Errorf("invalid target %q, want name=url", arg)
		}
		targets = append(targets, waitfor.Target{Name: name, URL: url})
	}
	return targets, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errNotReady {
			fmt.Fprintln(os.Stderr, "waitfor:", err)
		}
		os.Exit(1)
	}
}
