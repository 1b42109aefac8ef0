package gc

import (
	"fmt"
	"os"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugGC = false

// Runtime debug flag for collector logging - controlled by GCKIT_LOG env var.
var logGC = os.Getenv("GCKIT_LOG") != ""

// debugLogf prints debug messages if collector logging is enabled.
func debugLogf(format string, args ...any) {
	if debugGC || logGC {
		fmt.Fprintf(os.Stderr, "[GC] "+format+"\n", args...)
	}
}

// warnLogf always prints: warnings flag mutator mistakes (such as
// freeing an unknown pointer) that are ignored but worth surfacing.
func warnLogf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[GC] WARN: "+format+"\n", args...)
}
