package factory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kilianp07/simfactory/core/dso"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/core/logger"
	"github.com/kilianp07/simfactory/core/object"
)

// recLogger records warnings so tests can count them.
type recLogger struct {
	logger.Nop
	mu    sync.Mutex
	warns []string
}

func (r *recLogger) Warnf(format string, args ...any) { r.add(fmt.Sprintf(format, args...)) }

func (r *recLogger) Warnw(msg string, _ map[string]any) { r.add(msg) }

func (r *recLogger) add(msg string) {
	r.mu.Lock()
	r.warns = append(r.warns, msg)
	r.mu.Unlock()
}

func (r *recLogger) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warns)
}

// countingLoader serves static modules and counts opens and closes per
// module.
type countingLoader struct {
	static *dso.Static
	opens  map[string]int
	closes map[string]int
}

func newCountingLoader() *countingLoader {
	return &countingLoader{static: dso.NewStatic(), opens: map[string]int{}, closes: map[string]int{}}
}

func (c *countingLoader) add(name string, symbols map[string]any) *countingLoader {
	if err := c.static.Register(name, symbols); err != nil {
		panic(err)
	}
	return c
}

func (c *countingLoader) Open(file string) (dso.Handle, error) {
	h, err := c.static.Open(file)
	if err != nil {
		return nil, err
	}
	name := dso.LogicalName(file)
	c.opens[name]++
	return &countingHandle{Handle: h, name: name, parent: c}, nil
}

type countingHandle struct {
	dso.Handle
	name   string
	parent *countingLoader
}

func (h *countingHandle) Close() error {
	h.parent.closes[h.name]++
	return h.Handle.Close()
}

// tracker counts destroyed objects.
type tracker struct{ destroyed int }

type widget struct {
	object.Base
	t *tracker
}

func (w *widget) OnDestroy() {
	if w.t != nil {
		w.t.destroyed++
	}
}

type gadget struct {
	object.Base
	t *tracker
}

func (g *gadget) OnDestroy() {
	if g.t != nil {
		g.t.destroyed++
	}
}

// widgetProto is a statically known widget.
type widgetProto struct {
	widget
}

func newWidgetProto(t *tracker) *widgetProto {
	return &widgetProto{widget{Base: object.NewBase("widget prototype", "widget", &object.Counter{}), t: t}}
}

func (p *widgetProto) CreateObject(item *input.Item, c *object.Counter) (object.Object, error) {
	if item.Has("broken") {
		return nil, errors.New("broken widget")
	}
	return &widget{Base: object.BaseFromInput(item, "widget", c), t: p.t}, nil
}

func widgetEntry(t *tracker) EntryPoint {
	return func(item *input.Item, f *Factory) (object.Object, error) {
		return &widget{Base: object.BaseFromInput(item, "widget", f.Counter()), t: t}, nil
	}
}

func gadgetEntry(t *tracker) EntryPoint {
	return func(item *input.Item, f *Factory) (object.Object, error) {
		return &gadget{Base: object.BaseFromInput(item, "gadget", f.Counter()), t: t}, nil
	}
}

func objectItem(tag, name, library string) *input.Item {
	it := input.Section(tag)
	if name != "" {
		it.Add(input.New("name", name))
	}
	if library != "" {
		it.Add(input.New("library", library))
	}
	return it
}
