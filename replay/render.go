package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"go.viam.com/mountsim/trajectory"
)

// A Format selects how logs and summaries are written.
type Format string

// The supported formats.
const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatCSV, FormatMarkdown, FormatJSON}

// FormatFromString parses a format name, ignoring case.
func FormatFromString(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown format %q", s)
}

// WriteLog writes every row of l to w.
func WriteLog(w io.Writer, l *Log, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, l)
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"T", "Axis", "Kind", "Cmd Position", "Cmd Velocity", "Position", "Velocity", "Acceleration"})
	for _, row := range l.Rows {
		t.AppendRow(table.Row{
			fmt.Sprintf("%.3f", row.T),
			row.Name,
			row.Kind.String(),
			fmt.Sprintf("%.4f", row.CmdPosition),
			fmt.Sprintf("%.4f", row.CmdVelocity),
			fmt.Sprintf("%.4f", row.Position),
			fmt.Sprintf("%.4f", row.Velocity),
			fmt.Sprintf("%.4f", row.Acceleration),
		})
	}
	return render(w, t, format)
}

// WriteSummaries writes one line per axis summary to w.
func WriteSummaries(w io.Writer, summaries []AxisSummary, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, summaries)
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{
		"Axis", "Samples", "Max Speed", "Max Accel", "Max Track Err", "RMS Track Err",
		"Slewing", "Tracking", "Transitions", "Final",
	})
	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.Name,
			s.Samples,
			fmt.Sprintf("%.4f", s.MaxSpeed),
			fmt.Sprintf("%.4f", s.MaxAccel),
			fmt.Sprintf("%.3g", s.MaxTrackingError),
			fmt.Sprintf("%.3g", s.RMSTrackingError),
			fmt.Sprintf("%.2fs", s.TimeIn[trajectory.Slewing]),
			fmt.Sprintf("%.2fs", s.TimeIn[trajectory.Tracking]),
			s.Transitions,
			fmt.Sprintf("%v at %.4f", s.FinalKind, s.FinalPosition),
		})
	}
	return render(w, t, format)
}

func render(w io.Writer, t table.Writer, format Format) error {
	var out string
	switch format {
	case FormatTable:
		t.SetStyle(table.StyleLight)
		out = t.Render()
	case FormatCSV:
		out = t.RenderCSV()
	case FormatMarkdown:
		out = t.RenderMarkdown()
	case FormatJSON:
		return errors.New("json is not a table format")
	default:
		return errors.Errorf("unknown format %q", format)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
