package plugins

import (
	"fmt"
	"io"

	"github.com/kilianp07/simfactory/core/ausgab"
	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
)

// trackCounter counts the ausgab calls it receives. Without a "calls" key it
// listens to every call.
type trackCounter struct {
	object.Base
	needs  [ausgab.UnknownCall + 1]bool
	counts [ausgab.UnknownCall + 1]uint64
}

func newTrackCounter(item *input.Item, f *factory.Factory) (object.Object, error) {
	tc := &trackCounter{Base: object.BaseFromInput(item, "track_counter", f.Counter())}
	if !item.Has("calls") {
		for i := range tc.needs {
			tc.needs[i] = true
		}
		return tc, nil
	}
	calls, err := item.GetFloats("calls")
	if err != nil {
		return nil, err
	}
	for _, c := range calls {
		i := int(c)
		if float64(i) != c || i < 0 || i > int(ausgab.UnknownCall) {
			return nil, fmt.Errorf("%w: ausgab call %g", input.ErrBadValue, c)
		}
		tc.needs[i] = true
	}
	return tc, nil
}

func (tc *trackCounter) NeedsCall(c ausgab.Call) bool {
	return c >= 0 && c <= ausgab.UnknownCall && tc.needs[c]
}

func (tc *trackCounter) ProcessEvent(c ausgab.Call) error {
	if !tc.NeedsCall(c) {
		return fmt.Errorf("%s: unexpected call %d", tc.Name(), c)
	}
	tc.counts[c]++
	return nil
}

// Count returns how many times c was processed.
func (tc *trackCounter) Count(c ausgab.Call) uint64 {
	if c < 0 || c > ausgab.UnknownCall {
		return 0
	}
	return tc.counts[c]
}

func (tc *trackCounter) Report(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s:\n", tc.Name()); err != nil {
		return err
	}
	for c, n := range tc.counts {
		if n == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  call %2d: %d\n", c, n); err != nil {
			return err
		}
	}
	return nil
}
