// Package format reformats TPTP annotated-formula documents into a canonical
// layout: one indent step per nesting cause, line breaks at binary connectives
// and after quantifier prefixes, comments preserved verbatim.
//
// The package deliberately does not build a syntax tree. Documents are cut
// into comment and statement spans (SplitSpans), statements into their
// top-level components (SplitTopLevel, Extract), and formulas are re-emitted
// by a left-to-right scanner (FormatFormula). Anything the scanner cannot
// restructure confidently is returned unchanged.
//
// Every function in this package is pure and safe for concurrent use: state
// lives in values created per call and never outlives it.
//
// Назначение: ядро форматирования без IO.
// Не делает: валидацию формул (см. internal/check) и вызов внешних утилит.
package format
