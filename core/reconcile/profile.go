package reconcile

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// DefaultParentRefs are the field spellings exporters use for the parent reference.
var DefaultParentRefs = []string{"__parentId", "__parent_id", "__parentID", "parentId", "parent_id", "parent.id"}

// Profile describes the parent/child shape of one dataset.
type Profile struct {
	// ParentKind is the id kind of top-level records (e.g. "Customer").
	ParentKind string
	// ChildKinds are the id kinds of subordinate records (e.g. "Order").
	ChildKinds []string
	// ChildField is the member that may carry inline children on a parent.
	ChildField string
	// ParentRefs are the accepted parent reference fields, as JSONPaths
	// or dotted names. Empty uses DefaultParentRefs.
	ParentRefs []string
}

// Validate checks that the profile can classify records.
func (p Profile) Validate() error {
	if p.ParentKind == "" {
		return fmt.Errorf("profile has no parent kind")
	}
	for _, kind := range p.ChildKinds {
		if kind == "" || kind == p.ParentKind {
			return fmt.Errorf("invalid child kind %q", kind)
		}
	}
	return nil
}

func (p Profile) parentRefs() ([]jp.Expr, error) {
	refs := p.ParentRefs
	if len(refs) == 0 {
		refs = DefaultParentRefs
	}
	exprs := make([]jp.Expr, 0, len(refs))
	for _, ref := range refs {
		path := ref
		if !strings.HasPrefix(path, "$") {
			path = "$." + path
		}
		x, err := jp.ParseString(path)
		if err != nil {
			return nil, fmt.Errorf("invalid parent reference %q: %w", ref, err)
		}
		exprs = append(exprs, x)
	}
	return exprs, nil
}
