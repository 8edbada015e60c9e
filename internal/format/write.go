package format

const (
	// IndentWidth is the number of spaces per indent level.
	IndentWidth = 4
	// BaseIndent is the indent level of the first formula line.
	BaseIndent = 2
)

// Writer accumulates formatted formula output and tracks indentation.
// The pending flag marks that the next token starts a fresh line and must be
// preceded by indentation.
type Writer struct {
	buf         []byte
	indentLevel int
	pending     bool
}

// NewWriter creates a writer at BaseIndent with indentation pending.
func NewWriter(sizeHint int) *Writer {
	return &Writer{
		buf:         make([]byte, 0, sizeHint),
		indentLevel: BaseIndent,
		pending:     true,
	}
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return string(w.buf)
}

// Level returns the current indent level.
func (w *Writer) Level() int {
	return w.indentLevel
}

func (w *Writer) writeIndent() {
	for range w.indentLevel * IndentWidth {
		w.buf = append(w.buf, ' ')
	}
}

// Token writes s, emitting the pending indentation first.
func (w *Writer) Token(s string) {
	if w.pending {
		w.writeIndent()
		w.pending = false
	}
	w.buf = append(w.buf, s...)
}

// Raw writes s without touching the pending flag.
func (w *Writer) Raw(s string) {
	w.buf = append(w.buf, s...)
}

// Break starts a new line at the current indent level and writes op.
func (w *Writer) Break(op string) {
	w.buf = append(w.buf, '\n')
	w.writeIndent()
	w.buf = append(w.buf, op...)
	w.pending = false
}

// LineEnd writes s and marks the next token as starting a new line.
func (w *Writer) LineEnd(s string) {
	w.buf = append(w.buf, s...)
	w.pending = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level, never below BaseIndent.
func (w *Writer) IndentPop() {
	if w.indentLevel > BaseIndent {
		w.indentLevel--
	}
}
