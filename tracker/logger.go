package tracker

// logf receives the tracker's per frame diagnostics.  It is muted by default.
var logf = func(string, ...interface{}) {}

// SetLogger installs a logger for tracker diagnostics, eg: log.Printf.
// Passing nil mutes it.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		logf = func(string, ...interface{}) {}
		return
	}
	logf = f
}
