// Package tabio provides JSON import and export for notation grids.
//
// # JSON Format
//
// A grid is an object keyed by position. Each value lists the six
// string-lines from the high e (index 0) to the low E (index 5); null marks
// a string with nothing on it:
//
//	{
//	  "1": [null, null, "3", null, null, null],
//	  "2": ["0", "1", "0", "2", "3", null],
//	  "3": [null, null, null, null, null, null]
//	}
//
// An all-null column is kept: it reserves an empty position. Positions
// missing from the object are gaps.
//
// # Validation
//
// [ReadGrid] rejects columns that do not have exactly six entries, negative
// or out-of-range positions, and symbols other than frets 0..36, "x", and
// the technique markers s, b, h and p. [Validate] applies the same checks
// to a grid built in memory.
package tabio
