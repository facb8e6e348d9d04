// Package factory provides a small generic registry that turns a
// discriminator into a freshly built instance. Discriminators are any
// comparable value (a module type, a file path, a world name); producers are
// plain functions supplied by the caller.
//
// Bindings are kept in registration order. Create walks them in that order
// and the first binding that matches the input wins. Exact bindings match by
// equality, pattern bindings (RegisterMatch) by their Matcher, so a broad
// pattern registered early shadows a narrower one registered later.
//
// Registering an already bound key fails with ErrDuplicateDiscriminator
// unless the registry was built WithOverwrite(true), in which case the new
// producer replaces the old one in place and keeps its position.
//
// Example usage:
//
//	reg := factory.NewRegistry[string, map[string]any, io.Reader]()
//	reg.Register("file", func(conf map[string]any) (io.Reader, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
//	r, err := factory.CreateModule(reg, factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "foo"}})
package factory
