package streammd

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent renders so a huge batch cannot hold every
	// document in memory at once.
	MaxWorkers = 32
)

// ResolveWorkers determines how many documents to render concurrently.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containers). Rendering is CPU bound, so one worker per usable CPU.
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}
	return max(MinWorkers, min(runtime.GOMAXPROCS(0), MaxWorkers))
}
