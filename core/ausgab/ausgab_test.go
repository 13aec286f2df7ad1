package ausgab

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/simfactory/core/dso"
	"github.com/kilianp07/simfactory/core/factory"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/object"
)

type tally struct {
	object.Base
	on     Call
	counts int
	fail   bool
}

func (c *tally) NeedsCall(call Call) bool { return call == c.on }

func (c *tally) ProcessEvent(Call) error {
	if c.fail {
		return errors.New("tally failed")
	}
	c.counts++
	return nil
}

func (c *tally) Report(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d\n", c.Name(), c.counts)
	return err
}

func newTally(item *input.Item, f *factory.Factory) (object.Object, error) {
	on, err := item.GetInt("call")
	if err != nil {
		on = int(AfterTransport)
	}
	return &tally{Base: object.BaseFromInput(item, "tally", f.Counter()), on: Call(on), fail: item.Has("fail")}, nil
}

func newTestFactory(t *testing.T) *Factory {
	t.Helper()
	l := dso.NewStatic()
	require.NoError(t, l.Register("egs_tally", map[string]any{EntryPoint: factory.EntryPoint(newTally)}))
	f, err := NewFactory(t.TempDir(), factory.WithLoader(l), factory.WithCounter(&object.Counter{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func tallyItem(name string, call Call) *input.Item {
	return input.Section(ObjectTag,
		input.New("name", name),
		input.New("library", "egs_tally"),
		input.Value("call", int(call)))
}

func TestCreate_AllObjects(t *testing.T) {
	f := newTestFactory(t)
	def := input.Section(Section,
		tallyItem("before", BeforeTransport),
		tallyItem("after", AfterTransport),
		input.New(SelectKey, "before"))
	objs, err := Create(f, input.Section("input", def))
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "before", objs[0].Name())
	assert.Equal(t, "after", objs[1].Name())

	require.NoError(t, Dispatch(objs, AfterTransport))
	require.NoError(t, Dispatch(objs, AfterTransport))
	require.NoError(t, Dispatch(objs, BeforeTransport))

	var b strings.Builder
	for _, o := range objs {
		require.NoError(t, o.Report(&b))
	}
	assert.Equal(t, "before: 1\nafter: 2\n", b.String())
}

func TestDispatch_StopsOnError(t *testing.T) {
	f := newTestFactory(t)
	broken := tallyItem("broken", AfterTransport)
	broken.Add(input.New("fail", "yes"))
	objs, err := Create(f, input.Section(Section, broken, tallyItem("next", AfterTransport)))
	require.NoError(t, err)
	assert.Error(t, Dispatch(objs, AfterTransport))
	assert.Zero(t, objs[1].(*tally).counts)
}

func TestDefaultFactory(t *testing.T) {
	f := newTestFactory(t)
	prev := SetDefault(f)
	t.Cleanup(func() { SetDefault(prev) })

	_, err := CreateAusgabObjects(input.Section(Section, tallyItem("a", EgsCut)))
	require.NoError(t, err)
	assert.Equal(t, 1, NObjects())
	o, ok := GetObject(0)
	require.True(t, ok)
	assert.Equal(t, "a", o.Name())
	_, ok = GetObject(1)
	assert.False(t, ok)
	_, ok = GetAusgabObject("a")
	assert.True(t, ok)
}
