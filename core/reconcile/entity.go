package reconcile

import (
	"encoding/json"
	"fmt"
)

// Kind tags a decoded record.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindParent
	KindChild
)

func (k Kind) String() string {
	switch k {
	case KindParent:
		return "parent"
	case KindChild:
		return "child"
	default:
		return "unrecognized"
	}
}

// Child is a subordinate record attached to a parent.
type Child struct {
	// ID is the global id of the child.
	ID string
	// Kind is the matched child kind (e.g. "Order").
	Kind string
	// ParentID is the resolved parent reference.
	ParentID string
	// Line is the stream position of the child, zero for inline children.
	Line int
	// Raw is the JSON of the child record.
	Raw json.RawMessage
}

// Decode unmarshals the child JSON into v.
func (c Child) Decode(v any) error {
	if err := json.Unmarshal(c.Raw, v); err != nil {
		return fmt.Errorf("failed to decode child %s: %w", c.ID, err)
	}
	return nil
}

// Parent is a fully reconciled top-level record.
type Parent struct {
	// ID is the global id of the parent.
	ID string
	// Line is the stream position of the latest record for this parent.
	Line int
	// Raw is the JSON of the latest record for this parent.
	Raw json.RawMessage
	// Fields holds the top-level members of Raw.
	Fields map[string]any
	// Children are attached in stream order.
	Children []Child

	// number of leading Children that came inline with Raw
	inline int
}

// Decode unmarshals the parent JSON into v.
func (p *Parent) Decode(v any) error {
	if err := json.Unmarshal(p.Raw, v); err != nil {
		return fmt.Errorf("failed to decode parent %s: %w", p.ID, err)
	}
	return nil
}

// ChildrenOf returns the children of the given kind.
func (p *Parent) ChildrenOf(kind string) []Child {
	var out []Child
	for _, c := range p.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}
