package proptest

import (
	"flag"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// rapid reads its settings from the process flag set on every check, so
// checks that change them run one at a time.
var flagMu sync.Mutex

// rapidFlags maps p onto the rapid flags it controls. A zero seed lets
// rapid pick one and print it on failure.
func (p Profile) rapidFlags() map[string]string {
	return map[string]string{
		"rapid.checks": strconv.Itoa(p.MaxExamples),
		"rapid.seed":   strconv.FormatUint(p.Seed, 10),
	}
}

// setFlags sets values on fs and returns a func restoring the previous
// ones. Nothing is changed when a flag is missing.
func setFlags(fs *flag.FlagSet, values map[string]string) (func(), error) {
	prev := make(map[string]string, len(values))
	for name := range values {
		f := fs.Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("flag -%s is not registered", name)
		}
		prev[name] = f.Value.String()
	}

	restore := func() {
		for name, v := range prev {
			_ = fs.Set(name, v)
		}
	}
	for name, v := range values {
		if err := fs.Set(name, v); err != nil {
			restore()
			return nil, fmt.Errorf("set -%s=%s: %w", name, v, err)
		}
	}
	return restore, nil
}

// overDeadline reports an example that ran longer than d. A zero d
// disables the check.
func overDeadline(elapsed, d time.Duration) error {
	if d > 0 && elapsed > d {
		return fmt.Errorf("example exceeded deadline %s (took %s)", d, elapsed)
	}
	return nil
}

// Check runs prop with rapid under p: p.MaxExamples examples, seeded
// from p.Seed. Failures are shrunk and reported by rapid together with
// the seed that replays them.
//
// The deadline is measured after an example returns. An example that
// blocks forever is not interrupted; the go test -timeout covers that.
func Check(t *testing.T, p Profile, prop func(*rapid.T)) {
	t.Helper()

	flagMu.Lock()
	defer flagMu.Unlock()

	restore, err := setFlags(flag.CommandLine, p.rapidFlags())
	if err != nil {
		t.Fatalf("profile %s: %v", p.Name, err)
		return
	}
	defer restore()

	var examples atomic.Int64
	deadline := p.Deadline()
	rapid.Check(t, func(rt *rapid.T) {
		n := examples.Add(1)
		start := time.Now()
		prop(rt)
		elapsed := time.Since(start)
		if err := overDeadline(elapsed, deadline); err != nil {
			rt.Fatalf("%v", err)
		}
		if p.Verbosity == VerbosityVerbose {
			t.Logf("example %d ok (%s)", n, elapsed)
		}
	})

	if !t.Failed() && p.Verbosity != VerbosityQuiet {
		t.Logf("%d examples passed (profile=%s, seed=%d)", examples.Load(), p.Name, p.Seed)
	}
}
