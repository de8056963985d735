package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a client-correctable business-rule failure. Code is a dotted
// "<field>.<rule>" key translated by the front-end; Params fill its placeholders.
type Error struct {
	Code   string         `json:"code"`
	Params map[string]any `json:"params,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Params) == 0 {
		return "validation failed: " + e.Code
	}
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Params[k]))
	}
	return "validation failed: " + e.Code + " (" + strings.Join(parts, ", ") + ")"
}

// Fail builds an Error from a code and optional key/value parameter pairs.
func Fail(code string, kv ...any) *Error {
	e := &Error{Code: code}
	if len(kv) > 0 {
		e.Params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				continue
			}
			e.Params[key] = kv[i+1]
		}
	}
	return e
}
