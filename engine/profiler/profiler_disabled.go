//go:build !profile

package profiler

func Init(int) {}

func Start(string) func() { return func() {} }

// OpenProfilerGraph reports no capture; build with -tags profile.
func OpenProfilerGraph() (string, error) { return "", nil }
