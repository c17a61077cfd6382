package js

import (
	"github.com/dop251/goja"
)

// Coercion helpers used at every script-to-native boundary. Missing and
// nullish inputs map to defined defaults instead of failing. An exception
// thrown by a script-defined toString or valueOf is not a coercion failure;
// it propagates to the calling frame like any other script exception.

// IsNullish reports whether v is absent, undefined or null.
func IsNullish(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

// ToBoolean converts a script value using the ECMAScript ToBoolean rules:
// undefined, null, false, "", 0, -0 and NaN are false, everything else is true.
func ToBoolean(v goja.Value) bool {
	if IsNullish(v) {
		return false
	}
	if _, ok := v.(*goja.Object); ok {
		return true
	}
	return v.ToBoolean()
}

// ToString converts a script value using the ECMAScript ToString rules.
// A nil Go value reads as undefined. Symbols read as their descriptive
// form, Symbol(desc).
func ToString(v goja.Value) string {
	if v == nil {
		return "undefined"
	}
	if sym, ok := v.(*goja.Symbol); ok {
		return "Symbol(" + sym.String() + ")"
	}
	return v.String()
}

// ToNullableString returns ("", false) for nullish values and the
// stringified value otherwise.
func ToNullableString(v goja.Value) (string, bool) {
	if IsNullish(v) {
		return "", false
	}
	return ToString(v), true
}

// Argument returns args[i], or undefined when the argument was not passed.
func Argument(args []goja.Value, i int) goja.Value {
	if i < 0 || i >= len(args) || args[i] == nil {
		return goja.Undefined()
	}
	return args[i]
}
