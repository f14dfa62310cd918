package summarizer

import (
	"fmt"
	"strconv"
	"strings"
)

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates labels, e.g. with l10n.T.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.translate = fn }
}

// WithVersion adds the generator version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.version = version }
}

// NewMarkdownFormatter creates a Markdown formatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("Tape Configuration"))

	f.section(&b, "Product", [][2]string{
		{"Product Type", fmt.Sprintf("%s (%s)", s.Product.TypeName, s.Product.TypeID)},
		{"Preset", orNone(t, s.Product.Name)},
		{"Price", orNone(t, s.Product.Price)},
		{"Geometry", fmt.Sprintf("r=%g / core=%g / w=%g", s.Product.Geometry.OuterRadius, s.Product.Geometry.CoreRadius, s.Product.Geometry.Thickness)},
	})

	m := s.Material
	f.section(&b, "Material", [][2]string{
		{"Material", m.ID},
		{"Color", m.ColorHex},
		{"Transmission", formatFloat(m.Transmission)},
		{"Roughness", formatFloat(m.Roughness)},
		{"IOR", formatFloat(m.IOR)},
		{"Opacity", formatFloat(m.Opacity)},
	})

	text := s.Selection.CustomText
	if text != "" {
		text = "`" + strings.ReplaceAll(text, "`", "'") + "`"
	}
	f.section(&b, "Selection", [][2]string{
		{"Custom Text", orNone(t, text)},
		{"Uploaded Image", yesNo(t, s.Selection.HasImage)},
		{"Background", s.Selection.Background},
	})

	f.section(&b, "Textures", [][2]string{
		{"Surface Map", f.texture(s.Surface)},
		{"Core", f.texture(s.Core)},
	})

	slots := strings.Join(s.Session.CachedSlots, ", ")
	f.section(&b, "Session", [][2]string{
		{"Transitions", strconv.Itoa(s.Session.Transitions)},
		{"Cached Textures", orNone(t, slots)},
	})

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05"))
	if f.version != "" {
		footer += " · tapestudio " + f.version
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) section(b *strings.Builder, title string, rows [][2]string) {
	t := f.translate
	fmt.Fprintf(b, "## %s\n\n", t(title))
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", t(row[0]), escapeCell(row[1]))
	}
	b.WriteString("\n")
}

func (f *MarkdownFormatter) texture(info TextureInfo) string {
	if info.Width == 0 {
		return f.translate("None")
	}
	out := fmt.Sprintf("%s %dx%d, %s %gx%g", info.Source, info.Width, info.Height, f.translate("repeat"), info.RepeatX, info.RepeatY)
	if info.File != "" {
		out += fmt.Sprintf(", %s (%s)", info.File, formatBytes(info.FileSize))
	}
	return out
}

func orNone(t func(string) string, s string) string {
	if s == "" {
		return t("None")
	}
	return s
}

func yesNo(t func(string) string, v bool) string {
	if v {
		return t("Yes")
	}
	return t("No")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatBytes formats a byte count using binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit && exp < 2; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
