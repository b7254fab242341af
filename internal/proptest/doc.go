// Package proptest runs property-based tests under named profiles.
//
// A profile fixes how many examples are drawn, how long a single example
// may run and how much is logged. Two profiles are built in:
//
//	ci     1000 examples, 1s deadline, normal logging
//	debug    20 examples, 1s deadline, every example logged
//
// The active profile comes from TESTING_PROFILE (default "debug"), read
// from the process environment or a .env file. Extra profiles can be
// declared in a YAML file named by ARITH_PROFILES; every profile is
// validated against the embedded CUE schema.
//
// # Usage
//
// Properties are written against pgregory.net/rapid; the profile sets the
// number of examples and the seed.
//
//	func TestAddCommutes(t *testing.T) {
//	    p := proptest.MustLoad(t)
//	    proptest.Check(t, p, func(rt *rapid.T) {
//	        a := proptest.Numbers().Draw(rt, "a")
//	        b := proptest.Numbers().Draw(rt, "b")
//	        ...
//	    })
//	}
//
// A failing example is shrunk and reported by rapid with the seed that
// produced it; setting ARITH_SEED to that seed replays the same draws.
// The deadline is checked once an example returns, so a slow example
// fails but a blocked one is left to go test -timeout.
package proptest
