//go:build debug

package sim

import "fmt"

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("sim: invariant violated: "+format, args...))
	}
}
