package cmd

// Options holds the shared command-line options for the gestloc CLI.
type Options struct {
	Format    string
	Verbosity int
	Limit     int

	// Bill filters
	Status string
	Month  string

	// Notification filters
	UnreadOnly bool
	Type       string
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithLimit sets the maximum number of results.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.Limit = limit
	}
}

// WithStatus sets the bill status filter.
func WithStatus(status string) Option {
	return func(o *Options) {
		o.Status = status
	}
}

// WithMonth sets the bill month filter (YYYY-MM).
func WithMonth(month string) Option {
	return func(o *Options) {
		o.Month = month
	}
}
