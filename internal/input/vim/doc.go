// Package vim parses Vim-style key sequences into editing commands.
//
// The grammar understood by the parser is:
//
//	[count]["register][operator][count][motion]   (d2e, "ay$)
//	[count][operator][operator]                   (dd, 3yy)
//	[count][motion]                               (2b, gg, fx)
//	[count]v | V | <C-V>                          (visual entry, "1v")
//	[count]gh | gH | g<C-H>                       (select entry)
//	x X D C s S i a I A o O R : <C-G> <Esc>       (simple commands)
//
// Operators are reported as soon as their key arrives, with StatusOperator,
// so the caller can enter operator-pending mode or, in visual mode, apply
// the operator to the selection and Reset the parser.
//
// # Usage
//
//	parser := vim.NewParser()
//	result := parser.Parse(keyEvent)
//	switch result.Status {
//	case vim.StatusComplete:
//	    // execute result.Command
//	case vim.StatusOperator:
//	    // operator waiting for a motion
//	case vim.StatusPending:
//	    // wait for more input
//	case vim.StatusInvalid, vim.StatusPassthrough:
//	    // sequence discarded
//	}
package vim
