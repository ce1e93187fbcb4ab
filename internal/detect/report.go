package detect

// Reporter observes detection progress and diagnostics. Injecting it keeps
// the engine free of console output, so detections stay usable in batch
// and concurrent contexts; a CLI front end can print, a batch runner can
// collect, tests can ignore.
//
// Implementations must not assume calls arrive from a single goroutine
// when the caller runs detections concurrently.
type Reporter interface {
	// Progress announces entry into a pipeline stage.
	Progress(stage string)

	// Warnf reports a non-fatal anomaly, such as an unusual aspect ratio
	// or a detection that fell back to the center crop.
	Warnf(format string, args ...interface{})
}

// nopReporter discards all events. It is the default when no Reporter is
// supplied.
type nopReporter struct{}

func (nopReporter) Progress(string)              {}
func (nopReporter) Warnf(string, ...interface{}) {}
