// Package lua embeds a sandboxed gopher-lua runtime that scripts an editor
// session.
//
// A State opens only the base, table, string and math libraries and runs
// every chunk under an execution timeout. The mode module binds a session
// to the global table "mode":
//
//	mode.current()          -- "VISUAL(CHARACTER_WISE)"
//	mode.is("VISUAL")       -- true for any visual selection type
//	mode.display()          -- "VISUAL", "V-LINE", "" for operator-pending
//	mode.cursor()           -- "block", "bar" or "underline"
//	mode.selections()       -- {{caret=1, start=15, finish=16, ...}, ...}
//	mode.type("vedx")       -- feeds keys in Vim notation
//	mode.apply("v", 2)      -- applies a trigger with a count, returns bool
//
// Offsets in selections are zero-based byte offsets.
package lua
