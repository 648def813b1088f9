// Package registry provides a generic, concurrency-safe cache of lazily built values.
//
// A Registry is filled on demand: the first GetOrCreate for a key runs the factory
// and stores its result, every later call returns the stored value. Values are never
// replaced or evicted, so a key observed once stays stable for the Registry's lifetime.
//
// # Basic Usage
//
//	templates := registry.New[string, *msgmap.Template]()
//
//	tpl, err := templates.GetOrCreate("HELLO", func() (*msgmap.Template, error) {
//	    return msgmap.New("hello %name").Required("name"), nil
//	})
//
// # Failed Builds
//
// A factory that returns an error stores nothing. The next call for the same key
// runs the factory again, so a transient or caller-correctable failure does not
// poison the key.
//
// # Thread Safety
//
// All methods are safe for concurrent use. GetOrCreate holds the write lock while
// the factory runs, so the factory is called at most once per successfully stored
// key even under concurrent first access.
package registry
