package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/triplefit/internal/analysis"
	"github.com/KaramelBytes/triplefit/internal/dataset"
	"github.com/KaramelBytes/triplefit/internal/utils"
)

// Format names an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts the format names and a few common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt", "table":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text|markdown|json|yaml)", s)
	}
}

// Write renders rep in format f. c is only used by the text format.
func Write(w io.Writer, f Format, rep *analysis.Report, c *dataset.Collection, opt Options) error {
	switch f {
	case FormatText:
		return Text(w, rep, c, opt)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(rep, opt.Precision))
		return err
	case FormatJSON:
		b, err := utils.PrettyJSON(rep)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}
