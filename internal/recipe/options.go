package recipe

import "maps"

// Name of the build definition requesting a static library build.
const OptionStaticLib = "BUILD_STATIC_LIB"

// Build configuration for one invocation: a mapping from option name to the
// value passed to the build-system driver as a definition.
//
// Options accumulate freely until the configure step runs. At that point the
// set is frozen: the values handed to the driver are exactly the values the
// caller requested, and a later mutation attempt is an explicit error rather
// than a silent override.
type Options struct {
	defs   map[string]string
	keys   []string // Insertion order, for deterministic iteration.
	frozen bool
}

// Creates an empty, unfrozen [Options].
func NewOptions() *Options {
	return &Options{defs: make(map[string]string)}
}

// Sets an option value.
//
// Setting an existing option before the freeze replaces its value in place
// and keeps its original position. After the configure step has run the set
// is frozen and Set fails with [ErrFrozen].
func (o *Options) Set(name, value string) error {
	if o.frozen {
		return ErrFrozen
	}
	if _, ok := o.defs[name]; !ok {
		o.keys = append(o.keys, name)
	}
	o.defs[name] = value
	return nil
}

// Returns an option value and whether it is present.
func (o *Options) Get(name string) (string, bool) {
	v, ok := o.defs[name]
	return v, ok
}

// Returns the number of options set.
func (o *Options) Len() int {
	return len(o.defs)
}

// Returns the option names in insertion order.
func (o *Options) Names() []string {
	names := make([]string, len(o.keys))
	copy(names, o.keys)
	return names
}

// Returns a copy of the option mapping, suitable for handing to the
// build-system driver. The receiver is not aliased.
func (o *Options) Definitions() map[string]string {
	return maps.Clone(o.defs)
}

// Marks the set immutable. Called once the configure step has consumed it.
func (o *Options) freeze() {
	o.frozen = true
}

// Reports whether the set has been frozen by a configure step.
func (o *Options) Frozen() bool {
	return o.frozen
}
