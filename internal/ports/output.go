package ports

import (
	"io"

	"portfolio-gallery/internal/domain/entity"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	OutputFormatMarkdown OutputFormat = "markdown"
	OutputFormatJSON     OutputFormat = "json"
)

// OutputWriter defines the interface for rendering a gallery view
type OutputWriter interface {
	Write(w io.Writer, view entity.GalleryView, format OutputFormat) error
	WriteFile(view entity.GalleryView, format OutputFormat, filename string) error
}
