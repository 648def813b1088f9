/*
Package config decodes collection definitions from JSON and YAML documents.

# Document Format

Each top-level key names a template. Its value is either a literal string or
an object:

	WELCOME: "Welcome back"
	HELLO:
	  base: "hello world %one %two"     # also accepted: template, message
	  optional:
	    one: null                         # built-in policy
	  required:
	    two:
	      regex: "^[a-z]+$"               # compiled case-insensitively
	      validator: slug                 # registered with WithValidators
	      default: "friend"
	    three: "fallback text"            # literal: always passes, falls back to the text

Unknown fields are rejected with a *DecodeError naming the offending path.

# Loading

	def, err := config.FromFile("messages.yaml",
	    config.WithValidators(map[string]msgmap.Validator{"slug": isSlug}),
	)
	coll := msgmap.NewCollection(def)

	def, err = config.FromURL(ctx, http.DefaultClient, "https://example.com/messages.json")
	def, err = config.FromStore(sqliteStore, "messages")

# Watching

Watch rebuilds a Collection whenever the file changes:

	var current atomic.Pointer[msgmap.Collection]
	w, err := config.Watch(ctx, "messages.yaml", current.Store,
	    config.WithLogger(logger),
	    config.WithDebounce(200*time.Millisecond),
	)
	defer w.Stop()

Reload failures are logged and leave the previous Collection in place.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
