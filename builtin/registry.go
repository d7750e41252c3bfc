package builtin

import "github.com/wgoodall01/monch/resolve"

// Builtins returns a fresh registry of the shell's built-in commands,
// keyed by name as looked up by the resolver.
func Builtins() map[string]resolve.Executable {
	return map[string]resolve.Executable{
		"cd": Cd{},
		"to": To{},
	}
}
