package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/goccy/go-yaml"
	"github.com/gookit/color"

	"github.com/acmload/clustertime/pkg/common"
)

// Print renders the result to w in the requested format.
func Print(ctx context.Context, w io.Writer, result *ResultV1, format common.OutputFormat) error {
	if format != common.OutputFormatTable {
		return PrintValue(ctx, w, result, format)
	}

	message := buildStepsTable(ctx, result).Render() + "\n"
	if len(result.Phases) > 0 {
		message += "\n" + buildPhasesTable(ctx, result).Render() + "\n"
	}

	if _, err := io.WriteString(w, message); err != nil {
		return fmt.Errorf("write result to output: %w", err)
	}

	return nil
}

// PrintValue renders any value as json or yaml, highlighted when colors are
// enabled.
func PrintValue(ctx context.Context, w io.Writer, value interface{}, format common.OutputFormat) error {
	var message string

	switch format {
	case common.OutputFormatJSON:
		b, err := json.MarshalIndent(value, "", strings.Repeat(" ", 2))
		if err != nil {
			return fmt.Errorf("marshal result to json: %w", err)
		}

		message = string(b) + "\n"
	case common.OutputFormatYAML:
		b, err := yaml.MarshalContext(ctx, value)
		if err != nil {
			return fmt.Errorf("marshal result to yaml: %w", err)
		}

		message = string(b)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	var colorLevel color.Level
	if color.Enable {
		colorLevel = color.TermColorLevel()
	}

	if err := writeWithSyntaxHighlight(w, message, format, colorLevel); err != nil {
		return fmt.Errorf("write result to output: %w", err)
	}

	return nil
}

func writeWithSyntaxHighlight(w io.Writer, message string, format common.OutputFormat, colorLevel color.Level) error {
	if colorLevel == color.LevelNo {
		if _, err := io.WriteString(w, message); err != nil {
			return fmt.Errorf("write message: %w", err)
		}

		return nil
	}

	lexer := lexers.Get(string(format))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	var formatterName string
	switch colorLevel {
	case color.Level16:
		formatterName = "terminal16"
	case color.Level256:
		formatterName = "terminal256"
	default:
		formatterName = "terminal16m"
	}

	iterator, err := lexer.Tokenise(nil, message)
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", format, err)
	}

	if err := formatters.Get(formatterName).Format(w, styles.Get("solarized-dark256"), iterator); err != nil {
		return fmt.Errorf("format %s: %w", format, err)
	}

	return nil
}
