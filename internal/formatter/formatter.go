// package formatter renders organize results and classification tables (table, CSV, JSON, plain summary)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/tidyx/internal/models"
	"github.com/desertthunder/tidyx/internal/shared"
	"github.com/desertthunder/tidyx/internal/tasks"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format selects how a run is written to the terminal.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want table, csv or json)", shared.ErrInvalidFlag, s)
	}
}

// Render writes result in the given format. styled selects rounded, coloured tables for terminals.
func Render(result *tasks.RunResult, format Format, styled bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(result, true)
	case FormatCSV:
		return ToCSV(result)
	default:
		return []byte(RenderTable(result, styled) + "\n" + SummaryLine(result) + "\n"), nil
	}
}

// RenderTable renders one row per file with its outcome.
func RenderTable(result *tasks.RunResult, styled bool) string {
	tw := newWriter(styled)
	tw.AppendHeader(table.Row{"File", "Outcome", "Category", "Destination / Reason", "Size"})

	for _, res := range result.Results {
		if res.Outcome.Kind == models.Empty {
			continue
		}
		tw.AppendRow(table.Row{
			res.File.Name,
			outcomeLabel(res.Outcome.Kind, styled),
			res.Outcome.Category,
			detail(res.Outcome),
			humanize.Bytes(uint64(max(res.File.Size, 0))),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// RenderCategories renders the classification table in match order.
func RenderCategories(t models.Table, styled bool) string {
	tw := newWriter(styled)
	tw.AppendHeader(table.Row{"#", "Category", "Extensions"})
	for i, c := range t {
		tw.AppendRow(table.Row{i + 1, c.Name, strings.Join(c.Extensions, " ")})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60},
	})
	return tw.Render()
}

// DuplicateWarnings lists extensions claimed by several categories, sorted by extension.
func DuplicateWarnings(t models.Table) []string {
	dups := t.Duplicates()
	exts := make([]string, 0, len(dups))
	for ext := range dups {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	lines := make([]string, 0, len(exts))
	for _, ext := range exts {
		owners := dups[ext]
		lines = append(lines, fmt.Sprintf("%s is listed by %s; %s wins", ext, strings.Join(owners, ", "), owners[0]))
	}
	return lines
}

// SummaryLine is the one-line terminal notification for a finished run.
func SummaryLine(result *tasks.RunResult) string {
	switch {
	case result.Empty:
		return "Folder is already empty!"
	case result.DryRun:
		return fmt.Sprintf("Dry run: %d of %d files would be organized (%d skipped, %d failed).",
			result.Planned, result.Total, result.Skipped, result.Failed)
	case result.Canceled:
		return fmt.Sprintf("Canceled: organized %d of %d files (%s).",
			result.Moved, result.Total, humanize.Bytes(uint64(result.Bytes)))
	default:
		return fmt.Sprintf("Organized %d of %d files (%s, %d skipped, %d failed).",
			result.Moved, result.Total, humanize.Bytes(uint64(result.Bytes)), result.Skipped, result.Failed)
	}
}

// ToJSON marshals the full run result.
func ToJSON(result *tasks.RunResult, pretty bool) ([]byte, error) {
	data, err := shared.MarshalJSON(result, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ToCSV converts a run to CSV with columns: File, Outcome, Category, FinalName, Reason, Size
func ToCSV(result *tasks.RunResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"File", "Outcome", "Category", "FinalName", "Reason", "Size"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, res := range result.Results {
		record := []string{
			res.File.Name,
			res.Outcome.Kind.String(),
			res.Outcome.Category,
			res.Outcome.FinalName,
			res.Outcome.Reason,
			strconv.FormatInt(res.File.Size, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func newWriter(styled bool) table.Writer {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	return tw
}

func detail(o models.Outcome) string {
	switch o.Kind {
	case models.Moved, models.Planned:
		return o.FinalName
	default:
		return o.Reason
	}
}

func outcomeLabel(k models.OutcomeKind, styled bool) string {
	if !styled {
		return k.String()
	}
	switch k {
	case models.Moved:
		return text.FgGreen.Sprint(k.String())
	case models.Failed:
		return text.FgRed.Sprint(k.String())
	case models.Planned:
		return text.FgCyan.Sprint(k.String())
	default:
		return text.FgHiBlack.Sprint(k.String())
	}
}
