package output

import (
	"encoding/json"
	"io"

	"github.com/gestloc/gestloc/internal/datacache"
	"github.com/gestloc/gestloc/internal/model"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// Notifications outputs the notification feed as JSON
func (f *JSONFormatter) Notifications(list []model.Notification, w io.Writer) error {
	return f.encode(list, w)
}

// Bills outputs enriched bills as JSON
func (f *JSONFormatter) Bills(bills []model.EnrichedBill, w io.Writer) error {
	return f.encode(bills, w)
}

// Summary outputs the dashboard aggregate as JSON
func (f *JSONFormatter) Summary(summary *datacache.Summary, w io.Writer) error {
	return f.encode(summary, w)
}
