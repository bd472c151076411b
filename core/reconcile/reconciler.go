package reconcile

import (
	"encoding/json"
	"errors"

	"bulk-ingest/core/ndjson"

	"github.com/ohler55/ojg/jp"
)

// ErrDrained is returned when a record is added after Drain.
var ErrDrained = errors.New("reconciler already drained")

// Stats are the counters reported at drain.
type Stats struct {
	// Parents is the number of resolved parents.
	Parents int `json:"parents"`
	// Children is the number of children with a parent reference.
	Children int `json:"children"`
	// Orphaned is the number of children whose parent never appeared.
	Orphaned int `json:"orphaned"`
	// Dropped is the number of children without a parent reference.
	Dropped int `json:"dropped"`
	// Replaced counts parent records that replaced an earlier one.
	Replaced int `json:"replaced"`
	// Skipped counts records without an identifier.
	Skipped int `json:"skipped"`
	// Unrecognized counts records of neither kind.
	Unrecognized int `json:"unrecognized"`
	// BadLines is the number of lines that failed to decode.
	BadLines int `json:"bad_lines"`
}

// Result is the drained state of a reconciler.
type Result struct {
	// Parents are in first-seen order.
	Parents []*Parent
	// Orphans maps unresolved parent ids to their pending children.
	Orphans map[string][]Child
	Stats   Stats
}

// Reconciler joins children to parents regardless of arrival order.
// It is fed once, drained once and then discarded.
type Reconciler struct {
	profile Profile
	refs    []jp.Expr

	parents map[string]*Parent
	order   []string
	pending map[string][]Child

	stats   Stats
	drained bool
}

// New creates a Reconciler for the given profile.
func New(profile Profile) (*Reconciler, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	refs, err := profile.parentRefs()
	if err != nil {
		return nil, err
	}
	return &Reconciler{
		profile: profile,
		refs:    refs,
		parents: make(map[string]*Parent),
		pending: make(map[string][]Child),
	}, nil
}

// Classify tags an identifier by its kind segment.
func (r *Reconciler) Classify(id string) Kind {
	if hasKind(id, r.profile.ParentKind) {
		return KindParent
	}
	if r.childKind(id) != "" {
		return KindChild
	}
	return KindUnrecognized
}

// Add folds one decoded record into the reconciler state.
func (r *Reconciler) Add(rec ndjson.Record) (Kind, error) {
	if r.drained {
		return KindUnrecognized, ErrDrained
	}

	id := rec.ID()
	if id == "" {
		r.stats.Skipped++
		return KindUnrecognized, nil
	}

	kind := r.Classify(id)
	switch kind {
	case KindParent:
		r.addParent(id, rec)
	case KindChild:
		r.addChild(id, rec)
	default:
		r.stats.Unrecognized++
	}
	return kind, nil
}

// AddAll folds records in order.
func (r *Reconciler) AddAll(records []ndjson.Record) error {
	for _, rec := range records {
		if _, err := r.Add(rec); err != nil {
			return err
		}
	}
	return nil
}

// Drain ends the fold and returns the reconciled parents with the final counters.
func (r *Reconciler) Drain(badLines int) Result {
	r.drained = true

	parents := make([]*Parent, 0, len(r.order))
	for _, id := range r.order {
		parents = append(parents, r.parents[id])
	}

	orphaned := 0
	for _, children := range r.pending {
		orphaned += len(children)
	}

	stats := r.stats
	stats.Parents = len(parents)
	stats.Orphaned = orphaned
	stats.BadLines = badLines

	return Result{Parents: parents, Orphans: r.pending, Stats: stats}
}

func (r *Reconciler) addParent(id string, rec ndjson.Record) {
	inline, present := r.inlineChildren(id, rec)

	existing, ok := r.parents[id]
	if !ok {
		p := &Parent{ID: id, Line: rec.Line, Raw: rec.Raw, Fields: rec.Fields, inline: len(inline)}
		p.Children = append(p.Children, inline...)
		if buffered, ok := r.pending[id]; ok {
			p.Children = append(p.Children, buffered...)
			delete(r.pending, id)
		}
		r.parents[id] = p
		r.order = append(r.order, id)
		return
	}

	// Last write wins on fields; streamed children stay attached.
	// Inline children are only replaced by a record that carries the child field.
	r.stats.Replaced++
	existing.Line = rec.Line
	existing.Raw = rec.Raw
	existing.Fields = rec.Fields
	if !present {
		return
	}

	streamed := existing.Children[existing.inline:]
	children := make([]Child, 0, len(inline)+len(streamed))
	children = append(children, inline...)
	children = append(children, streamed...)
	existing.Children = children
	existing.inline = len(inline)
}

func (r *Reconciler) addChild(id string, rec ndjson.Record) {
	parentID := r.parentRef(rec)
	if parentID == "" {
		r.stats.Dropped++
		return
	}
	r.stats.Children++

	child := Child{ID: id, Kind: r.childKind(id), ParentID: parentID, Line: rec.Line, Raw: rec.Raw}
	if p, ok := r.parents[parentID]; ok {
		p.Children = append(p.Children, child)
		return
	}
	r.pending[parentID] = append(r.pending[parentID], child)
}

func (r *Reconciler) childKind(id string) string {
	for _, kind := range r.profile.ChildKinds {
		if hasKind(id, kind) {
			return kind
		}
	}
	return ""
}

// inlineKind resolves the kind of an embedded child from its id, then its
// __typename, then the first child kind of the profile.
func (r *Reconciler) inlineKind(id string, item map[string]any) string {
	if kind := r.childKind(id); kind != "" {
		return kind
	}
	if name, ok := item["__typename"].(string); ok {
		for _, kind := range r.profile.ChildKinds {
			if kind == name {
				return kind
			}
		}
	}
	if len(r.profile.ChildKinds) > 0 {
		return r.profile.ChildKinds[0]
	}
	return ""
}

func (r *Reconciler) parentRef(rec ndjson.Record) string {
	if rec.Fields == nil {
		return ""
	}
	for _, x := range r.refs {
		for _, v := range x.Get(rec.Fields) {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// inlineChildren reads children embedded in the parent's child field and
// reports whether the field was present.
// Both a plain array and a GraphQL connection ({"edges":[{"node":...}]} or
// {"nodes":[...]}) are accepted.
func (r *Reconciler) inlineChildren(parentID string, rec ndjson.Record) ([]Child, bool) {
	if r.profile.ChildField == "" || rec.Fields == nil {
		return nil, false
	}
	field, ok := rec.Fields[r.profile.ChildField]
	if !ok {
		return nil, false
	}

	var items []any
	switch v := field.(type) {
	case []any:
		items = v
	case map[string]any:
		if nodes, ok := v["nodes"].([]any); ok {
			items = nodes
		} else if edges, ok := v["edges"].([]any); ok {
			for _, e := range edges {
				if edge, ok := e.(map[string]any); ok && edge["node"] != nil {
					items = append(items, edge["node"])
				}
			}
		}
	}

	children := make([]Child, 0, len(items))
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			continue
		}
		m, _ := item.(map[string]any)
		childID, _ := m["id"].(string)
		children = append(children, Child{
			ID:       childID,
			Kind:     r.inlineKind(childID, m),
			ParentID: parentID,
			Raw:      raw,
		})
	}
	return children, true
}
