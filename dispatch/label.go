package dispatch

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/taskwell/dispatch/internal/clock"
)

// DefaultNamespace is the root token of generated labels when no namespace
// is configured.
const DefaultNamespace = "dispatch"

// Labeler derives human-readable, collision-resistant queue labels from a
// value's type lineage, its identity, and the current time. Labels give
// traceability, not stable identity: two labels for the same value taken at
// different instants differ in their timestamp suffix and nothing else.
type Labeler struct {
	namespace string
}

// NewLabeler creates a Labeler rooted at namespace; an empty namespace
// falls back to DefaultNamespace.
func NewLabeler(namespace string) *Labeler {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Labeler{namespace: namespace}
}

// Namespace returns the labeler's root token.
func (l *Labeler) Namespace() string { return l.namespace }

// valueOrdinal numbers values that have no stable address, so labels stay
// unique for them too.
var valueOrdinal atomic.Uint64

// Labelize builds a label of the form
//
//	namespace.<lineage>.<identity>.<timestamp>
//
// where lineage is the dot-joined, deduplicated, lowercased type chain of v,
// most general token first and v's own type last. In Go the chain is the
// dynamic type plus the types of its embedded fields, recursively; unnamed
// types contribute their kind. Identity is the value's address for
// pointer-like kinds and a process-unique ordinal otherwise; ordinals are
// drawn per call, so only pointer-like values keep a stable identity
// segment across calls. The timestamp has nanosecond resolution.
//
// Labelize never fails: any value, nil included, produces a valid label.
func (l *Labeler) Labelize(v any) string {
	now := clock.Now()

	segments := make([]string, 0, 8)
	segments = append(segments, l.namespace)
	segments = append(segments, lineage(v)...)
	segments = append(segments, identity(v))
	segments = append(segments, fmt.Sprintf("%d.%09d", now.Unix(), now.Nanosecond()))
	return strings.Join(segments, ".")
}

// lineage returns the type chain most-general-first, duplicates removed
// preserving first occurrence (computed innermost-first, then reversed).
func lineage(v any) []string {
	chain := typeChain(reflect.TypeOf(v), make(map[reflect.Type]struct{}))

	seen := make(map[string]struct{}, len(chain))
	dedup := chain[:0]
	for _, tok := range chain {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		dedup = append(dedup, tok)
	}

	for i, j := 0, len(dedup)-1; i < j; i, j = i+1, j-1 {
		dedup[i], dedup[j] = dedup[j], dedup[i]
	}
	return dedup
}

// typeChain lists t's own token followed by the tokens of its embedded
// fields, depth first. seen guards against self-embedding types, which are
// legal Go and must not recurse forever.
func typeChain(t reflect.Type, seen map[reflect.Type]struct{}) []string {
	if t == nil {
		return []string{"nil"}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if _, ok := seen[t]; ok {
		return nil
	}
	seen[t] = struct{}{}

	tokens := []string{typeToken(t)}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.Anonymous {
				tokens = append(tokens, typeChain(f.Type, seen)...)
			}
		}
	}
	return tokens
}

func typeToken(t reflect.Type) string {
	name := t.Name()
	if name == "" {
		name = t.Kind().String()
	}
	return strings.ToLower(name)
}

func identity(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice:
		return fmt.Sprintf("0x%x", rv.Pointer())
	default:
		return fmt.Sprintf("v%d", valueOrdinal.Add(1))
	}
}
