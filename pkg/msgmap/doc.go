/*
Package msgmap provides validated string templates with named placeholders.

# Overview

A Template holds a base string containing tokens such as %name. Tokens are
registered as required or optional, each guarded by a Validator, and Render
substitutes caller-supplied values after every validator has passed.

A Collection hosts many templates addressed by key. It is built from a
Definition (a Go literal, or a JSON/YAML document decoded by the config
package) and constructs each template the first time its key is requested.

# Templates

Templates are immutable. Each registration returns a new Template:

	greeting := msgmap.New("Hello, %name! You have %count messages.").
	    Required("name").
	    Optional("count")

	s, err := greeting.Render(msgmap.Values{"name": "Nancy", "count": "3"})
	// s: "Hello, Nancy! You have 3 messages."

	s, err = greeting.Render(msgmap.Values{"name": "George"})
	// s: "Hello, George! You have %count messages."

	_, err = greeting.Render(nil)
	// errors.Is(err, msgmap.ErrValidation) == true

Required and optional tokens differ only in their default validator: a
required token rejects a missing or nil value, an optional token accepts
anything. An empty string satisfies a required token but is never
substituted; the token stays in the output unless a validator supplied a
fallback.

Values may be strings, func() string callbacks, fmt.Stringer values, or nil.

# Validators

A Validator returns one of three results:

	msgmap.Pass()                // accept
	msgmap.Fail()                // reject, aborting the render
	msgmap.PassWithFallback("?") // accept, use "?" when the value is missing or empty

Tokens are replaced everywhere they occur. Replacement is a plain substring
match, so %one also matches the start of %oneX.

# Collections

	coll := msgmap.NewCollection(msgmap.Definition{
	    "HELLO": {
	        Base:     "hello world %one %two",
	        Optional: map[string]*msgmap.Substitution{"one": nil},
	        Required: map[string]*msgmap.Substitution{"two": nil},
	    },
	    "CODE": {
	        Base:     "code: %code",
	        Required: map[string]*msgmap.Substitution{"code": {Pattern: "^[a-z]{3}$"}},
	    },
	    "BYE": msgmap.Text("goodbye"),
	})

	s, err := coll.Render(ctx, "HELLO", msgmap.Values{"two": "bar"})
	// s: "hello world %one bar"

A Substitution is either nil (use the token kind's default), Literal(s)
(always pass, fall back to s), or a struct combining a Pattern or Regex, a
custom Validator, and a Default fallback.

# Observability

Collections accept a logger, an OpenTelemetry metrics recorder, and a span
manager:

	coll := msgmap.NewCollection(def,
	    msgmap.WithLogger(logger),
	    msgmap.WithMetrics(observability.NewMetricsRecorder()),
	    msgmap.WithSpanManager(observability.NewSpanManager()),
	)

# Thread Safety

Templates are safe for concurrent use. Collection builds each key at most
once even under concurrent first access.

# Subpackages

  - config: decode definitions from JSON, YAML, files, URLs, and stores; watch files
  - store: persist definition documents in memory or SQLite
  - observability: logging, metrics, and tracing helpers
  - registry: the lazy cache behind Collection
  - token: placeholder scanning and replacement
*/
package msgmap
