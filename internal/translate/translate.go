// Package translate is the translation-management collaborator: it uploads
// an entity's translatable files, re-points them when local paths change,
// and deletes them when content is removed. The store indexes files by
// path, which is why Move has to touch it at all.
package translate

// File is one master file registered with the translation store.
type File struct {
	ID   string
	Path string
}

// Client is the translation-store contract consumed by the sync engine.
type Client interface {
	// Upload registers content under path and returns the assigned file
	// id. An empty id with a nil error means the store accepted the file
	// but did not report an id.
	Upload(path, content string) (string, error)

	// Relocate re-points an existing file id at a new path, re-sending
	// the content.
	Relocate(fileID, newPath, content string) error

	// Delete removes a file by id. The bool reports acknowledgement.
	Delete(fileID string) (bool, error)

	// MasterFiles lists the default-locale master files the store knows,
	// used by reconciliation to recover lost file ids by path.
	MasterFiles() ([]File, error)
}
