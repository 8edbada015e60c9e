// Package fuzztests houses Go fuzz harnesses for the TPTP formatting pipeline
// (spans -> top-level split -> pretty-printer) and the checker. They guard
// the "never fails" contract: no panics, no hangs, passthrough stays exact.
//
// Seeds come from testdata/*.p and *.ax plus a fixed set of edge cases.
package fuzztests
