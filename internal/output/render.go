package output

import "io"

// Render handles the common pattern of picking what to write for a
// format: structured formats get the value itself, table formats get its
// table projection.
func Render(w io.Writer, format Format, tables any, structured any) error {
	formatter := NewFormatter(format)
	if format.IsStructured() {
		return formatter.Format(w, structured)
	}
	return formatter.Format(w, tables)
}

// Resolve validates an explicit format and falls back to detection when
// it is empty.
func Resolve(explicit string) (Format, error) {
	format, err := ParseFormat(explicit)
	if err != nil {
		return "", err
	}
	return DetectFormat(string(format)), nil
}
