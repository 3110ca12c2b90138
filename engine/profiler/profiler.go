//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const Enabled = true

var ErrNoEvents = errors.New("profiler: no events recorded")

// Init must be called once at startup with the ring capacity in events.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

// Start opens a scope and returns the func that closes it:
//
//	defer profiler.Start("fractal.Render")()
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := frames.intern(name)
	open := time.Now().UnixNano()
	ring.push(event{at: open, frame: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < open {
			end = open
		}
		ring.push(event{at: end, frame: id})
	}
}

// Dump writes the recorded scopes as a speedscope document and, when the
// speedscope CLI is on PATH, opens it. It returns the file path.
func Dump() (string, error) {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return "", ErrNoEvents
	}
	path := filepath.Join(os.TempDir(), "mandelbrot.speedscope.json")
	if err := writeSpeedscope(evs, frames.names(), path); err != nil {
		return "", err
	}
	if bin, err := exec.LookPath("speedscope"); err == nil {
		cmd := exec.Command(bin, path)
		cmd.SysProcAttr = hideWindowAttr()
		if err := cmd.Start(); err != nil {
			return path, fmt.Errorf("profiler: launch speedscope: %w", err)
		}
	}
	return path, nil
}

// ---------- event ring ----------

type event struct {
	at    int64 // unix ns
	frame int
	open  bool
}

type eventRing struct {
	ready atomic.Bool
	size  uint64
	write atomic.Uint64
	evs   []event
}

var ring eventRing

func (r *eventRing) init(capacity int) {
	r.size = uint64(capacity)
	r.evs = make([]event, r.size)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.size] = e
}

// snapshot returns the retained events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	start := uint64(0)
	if n > r.size {
		start = n - r.size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.size])
	}
	return out
}

// ---------- frame names ----------

type frameTable struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

var frames = frameTable{index: map[string]int{}}

func (t *frameTable) intern(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[name]; ok {
		return id
	}
	id := len(t.list)
	t.index[name] = id
	t.list = append(t.list, name)
	return id
}

func (t *frameTable) names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.list...)
}

// ---------- speedscope (evented profile) ----------

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
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// balance converts raw events to speedscope events. Closes that do not match
// the innermost open scope are dropped and scopes still open at the end are
// closed at the last timestamp.
func balance(evs []event) ([]ssEvent, int64) {
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	var last int64

	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

func writeSpeedscope(evs []event, names []string, path string) error {
	out, end := balance(evs)
	if len(out) == 0 {
		return ErrNoEvents
	}
	fs := make([]ssFrame, len(names))
	for i, n := range names {
		fs[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "mandelbrot",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "mandelbrot-profiler",
		Name:     "mandelbrot capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: create %q: %w", tmp, err)
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
