package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Formatter writes command results as JSON or leaves text rendering to the caller.
type Formatter struct {
	format Format
	writer io.Writer
}

func New(format Format) *Formatter {
	return &Formatter{
		format: format,
		writer: os.Stdout,
	}
}

// SetWriter sets a custom writer for output (useful for testing)
func (f *Formatter) SetWriter(w io.Writer) {
	f.writer = w
}

func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// Output writes the data in the configured format
func (f *Formatter) Output(data interface{}) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatText:
		_, err := fmt.Fprintf(f.writer, "%v\n", data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

func (f *Formatter) IsJSON() bool {
	return f.format == FormatJSON
}

// AddFormatFlag adds a --output flag to a cobra command
func AddFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "text", "Output format (text|json)")
}

// FromCmd builds a Formatter from the command's --output flag.
func FromCmd(cmd *cobra.Command) (*Formatter, error) {
	formatStr, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	format := Format(formatStr)
	switch format {
	case FormatText, FormatJSON:
		f := New(format)
		f.SetWriter(cmd.OutOrStdout())
		return f, nil
	default:
		return nil, fmt.Errorf("invalid output format: %s (must be 'text' or 'json')", formatStr)
	}
}
