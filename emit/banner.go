// Package emit renders the per-namespace artifacts: the declaration stub,
// the runtime binding module and the directory initializers.
package emit

// Banner opens every generated document.
const Banner = "################################################################################\n" +
	"#          This file was automatically generated. Please do not edit.          #\n" +
	"################################################################################\n" +
	"\n"

// indent is one nesting level in generated code.
const indent = "    "
