package cemit

import (
	"errors"
	"fmt"

	"github.com/simmsb/schemec/runtime"
)

// ErrUnknownBuiltin is wrapped whenever a BuiltinIdent that survived
// every earlier stage names no entry in runtime.Builtins. boundexpr.Bind
// already turns only catalogue names into BuiltinIdent nodes, so through
// the normal pipeline this error is reached only by a lifted tree built
// directly, without going through Bind.
var ErrUnknownBuiltin = errors.New("unknown builtin")

func lookupBuiltin(name string) (runtime.Builtin, error) {
	b, ok := runtime.Lookup(name)
	if !ok {
		return runtime.Builtin{}, fmt.Errorf("%w: %q", ErrUnknownBuiltin, name)
	}
	return b, nil
}
