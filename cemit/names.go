package cemit

import (
	"fmt"
	"strings"

	"github.com/simmsb/schemec/lifted"
	"github.com/simmsb/schemec/names"
)

// sanitize turns a fresh-variable hint into a valid C identifier
// fragment: non-alphanumeric bytes become underscores and a leading
// digit is prefixed with one, since C identifiers may not start with a
// digit.
func sanitize(hint string) string {
	if hint == "" {
		hint = "v"
	}
	var b strings.Builder
	for _, r := range hint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// slotName returns the C identifier used for v both as an env struct
// field and as the local cell variable bound to a lambda parameter:
// v_<hint>_<id>, mirroring §4.6's "named v_<pretty>_<unique>".
func slotName(v *names.FreshVar) string {
	return fmt.Sprintf("v_%s_%d", sanitize(v.Hint), v.ID)
}

func envStructName(id lifted.LambdaID) string  { return fmt.Sprintf("env_%d", id) }
func lambdaFuncName(id lifted.LambdaID) string { return fmt.Sprintf("lambda_%d", id) }
