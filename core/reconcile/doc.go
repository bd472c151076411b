// Package reconcile joins child records to their parents in a bulk export.
//
// Bulk exports emit every entity on its own line. A child references its
// parent by id and may appear before or after that parent. The Reconciler is a
// single fold over the decoded records:
//
//   - Records without an "id" are skipped.
//   - Ids containing "/<ParentKind>/" are parents. Children buffered for that
//     id are attached on arrival. A later record with the same id replaces
//     the fields and keeps the streamed children. Children embedded in the
//     child field are replaced only when the later record carries that field.
//   - Embedded children take their kind from the id, then "__typename", then
//     the first entry of Profile.ChildKinds.
//   - Ids containing "/<ChildKind>/" are children. The parent reference is read
//     from the first matching field of Profile.ParentRefs. A child without a
//     reference is dropped; otherwise it is attached to its parent or held in
//     the pending buffer until the parent arrives.
//
// Drain returns the parents in first-seen order together with the counters
// (parents, children, orphaned, dropped, bad lines).
//
// # Usage Example
//
//	r, err := reconcile.New(reconcile.Profile{
//	    ParentKind: "Customer",
//	    ChildKinds: []string{"Order"},
//	    ChildField: "orders",
//	})
//	for _, rec := range records {
//	    r.Add(rec)
//	}
//	result := r.Drain(len(decoder.BadLines()))
package reconcile
