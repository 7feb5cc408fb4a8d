package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer implements the OutputWriter interface
type Writer struct {
	config *entity.Config
}

// NewWriter creates a new output writer
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterWithConfig creates a new output writer with configuration
func NewWriterWithConfig(config *entity.Config) *Writer {
	return &Writer{config: config}
}

// Write renders the view to w in the requested format
func (w *Writer) Write(out io.Writer, view entity.GalleryView, format ports.OutputFormat) error {
	switch format {
	case ports.OutputFormatJSON:
		content, err := w.formatAsJSON(view)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, content)
		return err
	case ports.OutputFormatMarkdown, "":
		_, err := io.WriteString(out, w.formatAsMarkdown(view))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteFile renders the view into filename
func (w *Writer) WriteFile(view entity.GalleryView, format ports.OutputFormat, filename string) error {
	var buf bytes.Buffer
	if err := w.Write(&buf, view, format); err != nil {
		return err
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}
	return nil
}

func (w *Writer) title() string {
	if w.config != nil && w.config.Output.Title != "" {
		return w.config.Output.Title
	}
	return "Projects"
}

func (w *Writer) formatAsJSON(view entity.GalleryView) (string, error) {
	if view.Entries == nil {
		view.Entries = []entity.ClassifiedEntry{}
	}
	if view.Years == nil {
		view.Years = []int{}
	}
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshaling JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (w *Writer) formatAsMarkdown(view entity.GalleryView) string {
	var md strings.Builder

	md.WriteString("# " + w.title() + "\n\n")

	if len(view.Years) > 0 {
		years := make([]string, len(view.Years))
		for i, y := range view.Years {
			years[i] = strconv.Itoa(y)
		}
		md.WriteString("Years: " + strings.Join(years, ", ") + "\n\n")
	}

	switch {
	case view.Loading && len(view.Entries) == 0:
		md.WriteString("_Loading projects..._\n")
		return md.String()
	case view.NoMatches():
		md.WriteString("_No projects match your filters._\n")
		return md.String()
	}

	md.WriteString("| Title | Role | Year | Stars | Difficulty | Tags |\n")
	md.WriteString("|---|---|---|---|---|---|\n")
	for _, e := range view.Entries {
		title := escapeCell(e.Title)
		if e.Link != "" && e.Link != "#" {
			title = fmt.Sprintf("[%s](%s)", title, e.Link)
		}
		fmt.Fprintf(&md, "| %s | %s | %d | %d | %s | %s |\n",
			title, e.Role, e.Year, e.StarCount, e.Difficulty, escapeCell(strings.Join(e.Tags, ", ")))
	}

	if view.Loading {
		md.WriteString("\n_GitHub projects still loading._\n")
	}

	return md.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
