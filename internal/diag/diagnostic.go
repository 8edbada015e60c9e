package diag

import (
	"math"

	"fortio.org/safecast"
)

type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	File     string   `json:"file"`
	Line     uint32   `json:"line"`
	ColStart uint32   `json:"column_start"`
	ColEnd   uint32   `json:"column_end"`
	Message  string   `json:"message"`
}

// New builds a diagnostic from int positions. Negative positions clamp to
// zero, oversized ones to math.MaxUint32.
func New(sev Severity, code Code, file string, line, colStart, colEnd int, msg string) Diagnostic {
	if colEnd < colStart {
		colEnd = colStart
	}
	return Diagnostic{
		Severity: sev,
		Code:     code,
		File:     file,
		Line:     toPos(line),
		ColStart: toPos(colStart),
		ColEnd:   toPos(colEnd),
		Message:  msg,
	}
}

func toPos(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}
