package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/viant/docastest"
	"github.com/viant/docastest/service/artifact"
	"github.com/viant/docastest/service/review"
)

var version = "dev"

type flags struct {
	Config    string
	EnvFile   string
	DocsRoot  string
	Extension string
	Context   int
	All       bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:          "docastest",
		Short:        "Review documents produced by approval tests",
		Long:         "List, inspect, accept or discard received documents written by failing docastest cases.",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&f.Config, "config", "c", "docastest.yaml", "Config file (YAML or JSON); ignored when missing")
	rootCmd.PersistentFlags().StringVar(&f.EnvFile, "env", ".env", "Env file loaded before the config; ignored when missing")
	rootCmd.PersistentFlags().StringVarP(&f.DocsRoot, "root", "r", "", "Documentation root, overrides config")
	rootCmd.PersistentFlags().StringVarP(&f.Extension, "ext", "e", "", "Document extension, overrides config")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List received documents awaiting review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := f.service(cmd.Context())
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cmd.OutOrStdout(), srv)
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff <test-id>",
		Short: "Show how a received document differs from the approved one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := f.service(cmd.Context())
			if err != nil {
				return err
			}
			return runDiff(cmd.Context(), cmd.OutOrStdout(), srv, args[0], f.Context)
		},
	}
	diffCmd.Flags().IntVarP(&f.Context, "context", "u", 3, "Lines of unified diff context")

	acceptCmd := &cobra.Command{
		Use:   "accept [test-id...]",
		Short: "Promote received documents to approved",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := f.service(cmd.Context())
			if err != nil {
				return err
			}
			return runResolve(cmd.Context(), cmd.OutOrStdout(), srv, args, f.All, true)
		},
	}
	acceptCmd.Flags().BoolVarP(&f.All, "all", "a", false, "Accept every received document")

	cleanCmd := &cobra.Command{
		Use:   "clean [test-id...]",
		Short: "Delete received documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := f.service(cmd.Context())
			if err != nil {
				return err
			}
			return runResolve(cmd.Context(), cmd.OutOrStdout(), srv, args, f.All, false)
		},
	}
	cleanCmd.Flags().BoolVarP(&f.All, "all", "a", false, "Delete every received document")

	rootCmd.AddCommand(listCmd, diffCmd, acceptCmd, cleanCmd)
	return rootCmd
}

// service builds the review service from env file, config file and flags,
// in increasing precedence.
func (f *flags) service(ctx context.Context) (*review.Service, error) {
	if f.EnvFile != "" {
		if err := godotenv.Load(f.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f.EnvFile, err)
		}
	}
	cfg := docastest.DefaultConfig()
	if f.Config != "" {
		if _, err := os.Stat(f.Config); err == nil {
			if cfg, err = docastest.LoadConfig(ctx, f.Config); err != nil {
				return nil, err
			}
		}
	}
	if f.DocsRoot != "" {
		cfg.DocsRoot = f.DocsRoot
	}
	if f.Extension != "" {
		cfg.Extension = f.Extension
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return review.New(artifact.New(nil), cfg.Scheme(), logger), nil
}

func runList(ctx context.Context, w io.Writer, srv *review.Service) error {
	pending, err := srv.List(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(w, color.GreenString("✓ No received documents"))
		return nil
	}
	for _, p := range pending {
		status := color.YellowString("changed")
		if !p.HasApproved {
			status = color.CyanString("new")
		}
		fmt.Fprintf(w, "%-8s %s\n         %s\n", status, color.RedString(p.TestID), p.Paths.Received)
	}
	fmt.Fprintf(w, "\n%d received document(s)\n", len(pending))
	return nil
}

func runDiff(ctx context.Context, w io.Writer, srv *review.Service, testID string, contextLines int) error {
	report, err := srv.Diff(ctx, testID, contextLines)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", color.CyanString("Approved: %s", report.Paths.Approved))
	fmt.Fprintf(w, "%s\n", color.CyanString("Received: %s", report.Paths.Received))
	fmt.Fprintf(w, "%s\n\n", color.YellowString("First divergence: %s", report.Diff.Message()))
	for _, line := range strings.SplitAfter(report.Unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(w, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, color.RedString("%s", line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(w, color.CyanString("%s", line))
		default:
			fmt.Fprint(w, line)
		}
	}
	fmt.Fprintf(w, "\n%s\n", report.Stats)
	return nil
}

func runResolve(ctx context.Context, w io.Writer, srv *review.Service, testIDs []string, all, accept bool) error {
	if all {
		pending, err := srv.List(ctx)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Fprintln(w, color.GreenString("✓ No received documents"))
			return nil
		}
		testIDs = testIDs[:0]
		for _, p := range pending {
			testIDs = append(testIDs, p.TestID)
		}
	}
	if len(testIDs) == 0 {
		return fmt.Errorf("no test ids given; use --all to select every received document")
	}
	var errs []error
	for _, testID := range testIDs {
		var err error
		verb := "Discarded"
		if accept {
			verb = "Accepted"
			_, err = srv.Accept(ctx, testID)
		} else {
			err = srv.Discard(ctx, testID)
		}
		if err != nil {
			fmt.Fprintf(w, "%s\n", color.RedString("✗ %s: %v", testID, err))
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(w, "%s\n", color.GreenString("✓ %s %s", verb, testID))
	}
	return errors.Join(errs...)
}
