package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/flowguard/pkg/domain"
)

// Entry is one validated flow, as shown by the CLI.
type Entry struct {
	FlowID string
	Result domain.Result
}

// Markdown renders the entries as a markdown document (for glamour or for CI summaries).
func Markdown(entries []Entry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		status := "✅ valid"
		if !e.Result.IsValid {
			status = "❌ invalid"
		}
		fmt.Fprintf(&sb, "# %s\n\n**%s** · %d errors · %d warnings\n\n",
			escapeMarkdown(e.FlowID), status, len(e.Result.Errors), len(e.Result.Warnings))

		writeSection(&sb, "Errors", e.Result.Errors)
		writeSection(&sb, "Warnings", e.Result.Warnings)
		writeSection(&sb, "Notes", e.Result.Infos)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, issues []domain.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n| Block | Type | Message | Suggestion |\n|---|---|---|---|\n", title)
	for _, is := range issues {
		node := "—"
		if is.NodeID != "" {
			node = "`" + is.NodeID + "`"
		}
		fmt.Fprintf(sb, "| %s | %s | %s | %s |\n",
			node, is.Kind, escapeMarkdown(is.Message), escapeMarkdown(is.Suggestion))
	}
	sb.WriteString("\n")
}

func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// WriteText prints a compact, line-oriented report. Colors follow the profile;
// pass termenv.Ascii to disable them.
func WriteText(w io.Writer, entries []Entry, profile termenv.Profile) {
	badge := map[domain.Severity]termenv.Style{
		domain.SeverityError:   profile.String().Foreground(profile.Color("#ef4444")).Bold(),
		domain.SeverityWarning: profile.String().Foreground(profile.Color("#f59e0b")),
		domain.SeverityInfo:    profile.String().Foreground(profile.Color("#3b82f6")),
	}

	for _, e := range entries {
		head := profile.String("✔ " + e.FlowID).Foreground(profile.Color("#22c55e"))
		if !e.Result.IsValid {
			head = profile.String("✘ " + e.FlowID).Foreground(profile.Color("#ef4444"))
		}
		fmt.Fprintf(w, "%s (%d errors, %d warnings)\n", head.Bold(), len(e.Result.Errors), len(e.Result.Warnings))

		for _, bucket := range [][]domain.Issue{e.Result.Errors, e.Result.Warnings, e.Result.Infos} {
			for _, is := range bucket {
				where := ""
				if is.NodeID != "" {
					where = " @" + is.NodeID
				}
				label := badge[is.Severity].Styled(strings.ToUpper(string(is.Severity)))
				fmt.Fprintf(w, "  %s [%s]%s: %s\n", label, is.Kind, where, is.Message)
				if is.Suggestion != "" {
					fmt.Fprintf(w, "      ↳ %s\n", is.Suggestion)
				}
			}
		}
	}
}
