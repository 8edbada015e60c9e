package diagfmt

import (
	"io"

	"tptpfmt/internal/diag"
)

// Short writes one line per diagnostic, the same layout the golden files use.
func Short(w io.Writer, diags []diag.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	_, err := io.WriteString(w, diag.FormatShort(diags)+"\n")
	return err
}
