package models

import (
	"sort"
	"strings"
)

// EscapeIdentifier double-quotes an identifier, doubling embedded quotes,
// so case and special characters survive.
func EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// EscapeString single-quotes a SQL string literal, doubling embedded quotes.
func EscapeString(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}

// unquotedParams are parameter names whose values are SQL keywords or enums
// and must not be quoted in a WITH clause.
var unquotedParams = map[string]struct{}{
	"type":                       {},
	"kafka.sasl.hash_function":   {},
	"tls.disabled":               {},
	"tls.verify_server_hostname": {},
}

// WithClause renders statement parameters as WITH ('k' = 'v', ...).
type WithClause struct {
	Parameters map[string]string
}

// Set records a parameter, dropping empty values so optional fields simply
// disappear from the statement.
func (w *WithClause) Set(key, value string) {
	if value == "" {
		return
	}
	if w.Parameters == nil {
		w.Parameters = map[string]string{}
	}
	w.Parameters[key] = value
}

// Merge copies every entry of params into the clause, overriding defaults.
func (w *WithClause) Merge(params map[string]string) {
	for k, v := range params {
		w.Set(k, v)
	}
}

// ToSQL renders the clause with deterministic (sorted) parameter order.
// An empty clause renders as the empty string.
func (w WithClause) ToSQL() string {
	if len(w.Parameters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(w.Parameters))
	for k := range w.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := w.Parameters[k]
		if _, ok := unquotedParams[k]; ok {
			parts = append(parts, EscapeString(k)+" = "+v)
		} else {
			parts = append(parts, EscapeString(k)+" = "+EscapeString(v))
		}
	}
	return "WITH (" + strings.Join(parts, ", ") + ")"
}
