// Package buffer provides the text buffer the mode engine edits and projects
// selections onto.
//
// The buffer stores LF-normalized text with a line start index and exposes
// the coordinate conversions the selection engine needs:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and byte column (0-indexed)
//   - display columns, measured with go-runewidth and the tab width, used to
//     project block-wise selections onto lines of unequal width
//   - character steps, measured in grapheme clusters with uniseg, used by
//     character-wise counts and motions
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//	buf.Delete(0, 7)             // "Beautiful World!"
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// while write operations acquire an exclusive write lock.
package buffer
