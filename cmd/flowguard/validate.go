package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/internal/presentation/tui"
	"github.com/aretw0/flowguard/pkg/adapters/file"
	"github.com/aretw0/flowguard/pkg/adapters/loam"
	"github.com/aretw0/flowguard/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file|dir]...",
	Short: "Validate flows and report errors and warnings",
	Long: `Validates every flow found in the given files or directories (default: current directory).
Exits with status 1 when at least one flow has errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		format, _ := cmd.Flags().GetString("format")
		source, _ := cmd.Flags().GetString("source")
		reportDir, _ := cmd.Flags().GetString("report-dir")
		watch, _ := cmd.Flags().GetBool("watch")

		opts := validateOptions{
			Paths:     args,
			Source:    source,
			Format:    format,
			ReportDir: reportDir,
			Out:       cmd.OutOrStdout(),
			Validator: newValidator(cfg, logger),
		}

		if !watch {
			return runValidate(cmd.Context(), opts)
		}

		if source != "loam" || len(args) != 1 {
			return fmt.Errorf("--watch requires --source loam and exactly one directory")
		}
		return runWatch(cmd.Context(), args[0], opts)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("format", "f", "text", "Output format: text, json or markdown")
	validateCmd.Flags().String("report-dir", "", "Also store each report as JSON in this directory")
	validateCmd.Flags().Bool("watch", false, "Re-validate on every change (loam repositories only)")
}

type validateOptions struct {
	Paths     []string
	Source    string
	Format    string
	ReportDir string
	Out       io.Writer
	Validator *flowguard.Validator
}

type jsonEntry struct {
	FlowID  string             `json:"flowId"`
	Result  domain.Result      `json:"result"`
	Markers domain.NodeMarkers `json:"markers"`
}

func runValidate(ctx context.Context, opts validateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	flows, err := collectFlows(ctx, opts.Paths, opts.Source)
	if err != nil {
		return err
	}

	entries := make([]tui.Entry, 0, len(flows))
	valid := true
	for _, flow := range flows {
		res, err := opts.Validator.Validate(flow)
		if err != nil {
			return fmt.Errorf("flow %s: %w", flow.ID, err)
		}
		valid = valid && res.IsValid
		entries = append(entries, tui.Entry{FlowID: flow.ID, Result: res})
	}

	if opts.ReportDir != "" {
		store := file.NewReportStore(opts.ReportDir)
		for _, e := range entries {
			report := domain.Report{ID: uuid.NewString(), FlowID: e.FlowID, Result: e.Result, CheckedAt: time.Now().UTC()}
			if err := store.SaveReport(ctx, report); err != nil {
				return err
			}
		}
	}

	if err := writeEntries(opts.Out, entries, opts.Format); err != nil {
		return err
	}
	if !valid {
		return errInvalid
	}
	return nil
}

func writeEntries(w io.Writer, entries []tui.Entry, format string) error {
	switch format {
	case "json":
		out := make([]jsonEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, jsonEntry{FlowID: e.FlowID, Result: e.Result, Markers: domain.GroupIssuesByNode(e.Result)})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "markdown", "md":
		md := tui.Markdown(entries)
		if w == os.Stdout && tui.IsTerminal(os.Stdout) {
			rendered, err := tui.NewRenderer()(md)
			if err == nil {
				md = rendered
			}
		}
		_, err := io.WriteString(w, md)
		return err
	case "text", "":
		profile := termenv.Ascii
		if w == os.Stdout && tui.IsTerminal(os.Stdout) {
			profile = termenv.ColorProfile()
		}
		tui.WriteText(w, entries, profile)
		return nil
	default:
		return fmt.Errorf("unknown format %q (supported: text, json, markdown)", format)
	}
}

func runWatch(ctx context.Context, dir string, opts validateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, err := loam.Open(dir)
	if err != nil {
		return err
	}
	changes, err := loader.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		if err := runValidate(ctx, opts); err != nil && err != errInvalid {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Fprintln(opts.Out, "\nwatching for changes (Ctrl+C to stop)...")

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
		}
	}
}
