package summarizer

// Formatter renders a Summary for a particular output (Markdown today).
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a function to Formatter.
type FormatFunc func(summary *Summary) string

// Format calls f.
func (f FormatFunc) Format(summary *Summary) string { return f(summary) }
