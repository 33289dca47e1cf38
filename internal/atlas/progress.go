package atlas

// Phase is a stage of the scan lifecycle. Phases run in declaration order.
type Phase string

const (
	PhaseEnumerating Phase = "enumerating"
	PhaseAnalyzing   Phase = "analyzing"
	PhaseInferring   Phase = "inferring"
	PhaseGenerating  Phase = "generating"
	PhaseDone        Phase = "done"
)

// ProgressInterval is how many files are analyzed between progress events.
const ProgressInterval = 20

// Progress is one lifecycle event.
type Progress struct {
	Phase   Phase
	Current int
	Total   int
	Message string
}

// ProgressFunc receives progress events on the scanning goroutine.
type ProgressFunc func(Progress)
