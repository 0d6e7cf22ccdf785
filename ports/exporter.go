package ports

import (
	"powerplan/domain/design"
)

// SweepExporterPort renders a sweep result into a downloadable document
type SweepExporterPort interface {
	// Export serializes the sweep; the returned bytes are a complete file
	Export(sweep *design.SweepResult) ([]byte, error)

	// ContentType reports the MIME type of the exported document
	ContentType() string

	// Filename suggests a download name for the sweep
	Filename(sweep *design.SweepResult) string
}
