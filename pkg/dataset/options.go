package dataset

// Option configures a loader.
type Option func(*loadOptions)

type loadOptions struct {
	name      string
	delimiter rune
	infer     bool
	query     string
}

func defaultLoadOptions() *loadOptions {
	return &loadOptions{delimiter: ',', infer: true}
}

func applyOptions(opts []Option) *loadOptions {
	o := defaultLoadOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithName sets the display name of the loaded dataset.
func WithName(name string) Option {
	return func(o *loadOptions) { o.name = name }
}

// WithDelimiter sets the CSV field delimiter.
func WithDelimiter(r rune) Option {
	return func(o *loadOptions) { o.delimiter = r }
}

// WithTypeInference toggles scalar type detection for text sources.
// When disabled every CSV cell is a string and empty cells stay empty.
func WithTypeInference(enabled bool) Option {
	return func(o *loadOptions) { o.infer = enabled }
}

// WithQuery sets the statement Load runs against a sqlite:// source
// that carries no query parameter.
func WithQuery(query string) Option {
	return func(o *loadOptions) { o.query = query }
}
