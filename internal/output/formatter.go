package output

import (
	"io"

	"github.com/gestloc/gestloc/internal/datacache"
	"github.com/gestloc/gestloc/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	Notifications(list []model.Notification, w io.Writer) error
	Bills(bills []model.EnrichedBill, w io.Writer) error
	Summary(summary *datacache.Summary, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	default:
		return &TableFormatter{}
	}
}
