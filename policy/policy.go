// Package policy decides, for a resolved caller identity, whether an operation
// is permitted and which fields of a Text it may touch. It is a pure function
// over value types: the caller is resolved once at request entry and passed in
// explicitly, no database or request state is consulted here.
package policy

// Caller kinds.
const (
	KindAnonymous = iota
	KindOperator
	KindAdmin
)

// Caller is the identity the auth middleware resolves for a request.
// Operators carry the set of dataset IDs granted to them; admins carry none
// because they are never scoped.
type Caller struct {
	Kind       int
	UserID     int64
	DatasetIDs map[int64]bool
}

func Anonymous() Caller {
	return Caller{Kind: KindAnonymous}
}

func Admin(userID int64) Caller {
	return Caller{Kind: KindAdmin, UserID: userID}
}

func Operator(userID int64, datasetIDs []int64) Caller {
	ids := make(map[int64]bool, len(datasetIDs))
	for _, id := range datasetIDs {
		ids[id] = true
	}
	return Caller{Kind: KindOperator, UserID: userID, DatasetIDs: ids}
}

func (c Caller) IsAdmin() bool {
	return c.Kind == KindAdmin
}

func (c Caller) IsOperator() bool {
	return c.Kind == KindOperator
}

// HasDataset reports whether the dataset was granted to an operator caller.
func (c Caller) HasDataset(datasetID int64) bool {
	return c.DatasetIDs[datasetID]
}

// CanAdmin gates admin-only operations: dataset CRUD, tag CRUD, text
// create/delete/full-update, CSV import, operator management.
func CanAdmin(caller Caller) bool {
	return caller.IsAdmin()
}

// CanReadDataset gates dataset-scoped reads: list tags, list texts,
// tag counts, search. Admins always pass; operators pass only for datasets
// granted to them.
func CanReadDataset(caller Caller, datasetID int64) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.IsOperator() && caller.HasDataset(datasetID)
}

// TextUpdateFields is the field set an operator may touch on a Text.
var TextUpdateFields = map[string]bool{"tags": true}

// Decision is the outcome of a partial-update check.
type Decision struct {
	Allow bool
	// DeniedField names the first supplied field outside the allowed set,
	// when the request is denied because of it.
	DeniedField string
	// Audited is true when the update must produce an audit log entry
	// (operator tag edits).
	Audited bool
}

// CanUpdateText evaluates a partial Text update. Rules, in order:
//  1. Admin: any fields, no audit.
//  2. Operator with access to the text's dataset: exactly the tags field;
//     any other supplied key denies the whole request, nothing is dropped
//     silently. Allowed updates are audited.
//  3. Everyone else: denied.
func CanUpdateText(caller Caller, datasetID int64, suppliedFields []string) Decision {
	if caller.IsAdmin() {
		return Decision{Allow: true}
	}
	if !caller.IsOperator() || !caller.HasDataset(datasetID) {
		return Decision{}
	}
	for _, field := range suppliedFields {
		if !TextUpdateFields[field] {
			return Decision{DeniedField: field}
		}
	}
	return Decision{Allow: true, Audited: true}
}
