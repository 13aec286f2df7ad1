// Package factory builds objects from input items, loading plugin modules on
// demand.
//
// A Factory owns the objects it creates, the modules it loaded and a set of
// statically known prototypes. An input item either names a known type via
// its "type" key, or a module via its "library" key. In the latter case the
// module is loaded from the factory search path and its entry point is
// invoked with the item:
//
//	f, err := factory.New("dso/egs++", factory.WithLocation(factory.HenHouse))
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	obj, err := f.CreateSingleObject(item, "createObject", true)
//
// Typed wraps a Factory and admits only objects of one Go type.
//
// The package also provides Registry, a small constructor registry used to
// instantiate configured modules such as metric sinks:
//
//	reg := factory.NewRegistry[io.Reader]()
//	reg.Register("file", func(conf map[string]any) (io.Reader, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
//	r, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "foo"}})
package factory
