package hubuum

import (
	"encoding/json"
	"fmt"
	"time"
)

// ApiResource is the capability contract every resource kind implements
// exactly once. The client layer is generic over this contract; it never
// special-cases a kind except for the hand-written relationship navigation
// on handles.
//
// The full record type doubles as the get/post/patch output shape; the
// companion parameter shapes (XxxGet, XxxPost, XxxPatch) are coordinated
// with the record through the kind's Schema and the shared classification
// test.
type ApiResource interface {
	// Endpoint resolves the kind's collection endpoint.
	Endpoint() Endpoint
	// Schema returns the resource description the shapes were generated
	// from. Retained at runtime for validation and tabular rendering.
	Schema() Schema
	// NameField is the field used by name-based selection.
	NameField() string
	// GetID returns the record's numeric identifier.
	GetID() int
	// BuildParams maps builder tuples 1:1 into query filters, with no
	// semantic merging or deduplication.
	BuildParams(tuples []FilterTuple) []QueryFilter
}

// Schemas returns the resource descriptions for every known kind, keyed by
// kind name. Used by the shared validation test and by callers that want to
// introspect the generated shapes.
func Schemas() map[string]Schema {
	return map[string]Schema{
		"User":           userSchema,
		"Group":          groupSchema,
		"Namespace":      namespaceSchema,
		"Class":          classSchema,
		"Object":         objectSchema,
		"ClassRelation":  classRelationSchema,
		"ObjectRelation": objectRelationSchema,
	}
}

// displayValue renders a single cell for tabular output: datetimes in a
// fixed layout, nil optionals as "<null>", large JSON values summarized by
// size.
func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<null>"
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case *time.Time:
		if v == nil {
			return "<null>"
		}

		return v.Format("2006-01-02 15:04:05")
	case json.RawMessage:
		return displayJSON(v)
	case *string:
		if v == nil {
			return "<null>"
		}

		return *v
	case *int:
		if v == nil {
			return "<null>"
		}

		return fmt.Sprintf("%d", *v)
	case *bool:
		if v == nil {
			return "<null>"
		}

		return fmt.Sprintf("%t", *v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func displayJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "<null>"
	}

	var scalar any
	if err := json.Unmarshal(raw, &scalar); err == nil {
		switch s := scalar.(type) {
		case string:
			return s
		case float64, bool:
			return fmt.Sprintf("%v", s)
		case nil:
			return "<null>"
		}
	}

	return fmt.Sprintf("%d bytes", len(raw))
}
