package models

import "fmt"

// Meta is an open key→value bag for caller-supplied annotations. The engine
// never interprets it. Values are restricted to a small closed variant set
// (string, bool, number, array, nested map) so persistence stays simple and
// deterministic; numbers normalize to float64 at the write boundary so stored
// state round-trips JSON exactly.
type Meta map[string]any

// Kind tags the source variant of an entry, stored under Meta["kind"] by the
// collaborator layers. The engine itself never reads it.
type Kind string

const (
	KindMessage    Kind = "message"
	KindDecision   Kind = "decision"
	KindConvention Kind = "convention"
	KindToolUse    Kind = "tool-use"
	KindArtifact   Kind = "artifact"
)

// MetaKeyKind is the reserved metadata key carrying the Kind discriminant.
const MetaKeyKind = "kind"

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMessage, KindDecision, KindConvention, KindToolUse, KindArtifact:
		return true
	}
	return false
}

// NormalizeMeta validates a metadata bag against the closed variant set and
// returns a normalized copy (all numbers widened to float64). A nil map
// normalizes to nil.
func NormalizeMeta(m Meta) (Meta, error) {
	if m == nil {
		return nil, nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		nv, err := normalizeValue(v)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

func normalizeValue(v any) (any, error) {
	switch t := v.(type) {
	case string, bool:
		return t, nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, fmt.Errorf("nested key %q: %w", k, err)
			}
			out[k] = ne
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
