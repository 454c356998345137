//go:build profile

// Package profiler records nested timing scopes (frame, draw stack, each
// draw-stack entry) into a ring and exports them as a speedscope capture.
// Without the profile build tag every call is a no-op.
package profiler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hubastard/bastion/engine/logging"
)

const captureFile = "bastion.speedscope.json"

// Init sizes the event ring; each scope uses two slots.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	events.init(capacity)
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !events.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	open := time.Now().UnixNano()
	events.push(event{at: open, scope: id, open: true})
	return func() {
		end := max(time.Now().UnixNano(), open)
		events.push(event{at: end, scope: id})
	}
}

// OpenProfilerGraph writes the captured scopes to the temp directory and
// hands the file to speedscope when it is installed.
func OpenProfilerGraph() (string, error) {
	doc, err := speedscope(events.snapshot(), names.snapshot())
	if err != nil {
		return "", err
	}
	path := filepath.Join(os.TempDir(), captureFile)
	if err := writeJSON(path, doc); err != nil {
		return "", err
	}
	if err := exec.Command("speedscope", path).Start(); err != nil {
		logging.Verbose("speedscope not started", slog.Any("err", err))
	}
	return path, nil
}

type event struct {
	at    int64 // ns
	scope int
	open  bool
}

// ring keeps the newest events in write order.
type ring struct {
	ready atomic.Bool
	write atomic.Uint64
	buf   []event
}

func (r *ring) init(capacity int) {
	r.buf = make([]event, capacity)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *ring) push(e event) {
	i := r.write.Add(1) - 1
	r.buf[i%uint64(len(r.buf))] = e
}

func (r *ring) snapshot() []event {
	n := r.write.Load()
	size := uint64(len(r.buf))
	start := uint64(0)
	if n > size {
		start = n - size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.buf[k%size])
	}
	return out
}

var events ring

type interner struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

func (in *interner) intern(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[name]; ok {
		return id
	}
	if in.index == nil {
		in.index = map[string]int{}
	}
	id := len(in.list)
	in.index[name] = id
	in.list = append(in.list, name)
	return id
}

func (in *interner) snapshot() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]string(nil), in.list...)
}

var names interner

// speedscope file format, evented profile.
type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // O or C
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// speedscope converts ring events into a balanced evented profile. Closes
// that do not match the innermost open scope are dropped (their open fell
// off the ring); scopes still open at the end are closed at the last
// timestamp.
func speedscope(evs []event, scopes []string) (ssFile, error) {
	if len(evs) == 0 {
		return ssFile{}, fmt.Errorf("profiler: no events captured")
	}
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs))
	var stack []int
	var last int64

	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.scope)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.scope})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.scope {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.scope})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	frames := make([]ssFrame, len(scopes))
	for i, s := range scopes {
		frames[i] = ssFrame{Name: s}
	}
	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "bastion frames",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "bastion-profiler",
		Name:     "bastion capture",
	}, nil
}

// writeJSON replaces path atomically.
func writeJSON(path string, doc ssFile) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("profiler: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
