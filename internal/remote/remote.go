// Package remote defines the narrow contract the sync engine consumes from
// the help-desk API, together with the error taxonomy for remote calls.
// The concrete HTTP transport lives in the zendesk subpackage; the sync
// engine only ever sees this interface, so tests substitute fakes.
package remote

// Record is a raw remote record as decoded from the API. Records carry at
// least id, name (or title), created_at and updated_at.
type Record = map[string]any

// ParentRef identifies the remote parent a collection is scoped under,
// e.g. the category a section list belongs to. Nil means top level.
type ParentRef struct {
	Collection string
	ID         string
}

// Client is the help-desk collaborator contract.
type Client interface {
	// FetchCollection lists the records of a collection, optionally scoped
	// under a parent. The order is the remote system's listing order.
	FetchCollection(collection string, parent *ParentRef) ([]Record, error)

	// FetchRecord retrieves one record by id. A missing record yields an
	// error satisfying errors.Is(err, ErrNotFound).
	FetchRecord(collection, id string) (Record, error)

	// CreateRecord creates a record, optionally under a parent, and
	// returns the created record (with its assigned id).
	CreateRecord(collection string, parent *ParentRef, payload map[string]any) (Record, error)

	// UpdateRecord updates fields on an existing record. Used to re-point
	// parent links on Move and to toggle per-record settings.
	UpdateRecord(collection, id string, payload map[string]any) (Record, error)

	// DeleteRecord deletes a record by id. The bool reports whether the
	// remote acknowledged the delete.
	DeleteRecord(collection, id string) (bool, error)

	// DeleteByURL deletes a record addressed by a fully-qualified URL,
	// as returned inside records. Used by duplicate-name resolution.
	DeleteByURL(url string) (bool, error)

	// FetchMissingLocales returns the locales for which the record has no
	// translation yet, in the remote system's (lowercase) convention.
	FetchMissingLocales(collection, id string) ([]string, error)

	// FetchTranslation retrieves one translation ({title, body, ...}).
	FetchTranslation(collection, id, locale string) (map[string]any, error)

	// CreateTranslation adds a translation for a new locale.
	CreateTranslation(collection, id string, payload map[string]any) error

	// UpdateTranslation replaces an existing locale's translation.
	UpdateTranslation(collection, id, locale string, payload map[string]any) error
}
