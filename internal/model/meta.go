package model

import (
	"strconv"
)

// Keys inside the meta file. The file is the full remote record dump plus
// the translation-store id mapping, so write-merge semantics matter: the
// two halves are updated by different tasks.
const (
	remoteIDKey     = "id"
	translateIDsKey = "webtranslateit_ids"
)

// Meta wraps an entity's persisted remote metadata: the last remote record
// seen for the entity plus the translation-store file ids. A zero Meta
// means the entity has never been created remotely, which is a normal
// state, not an error.
type Meta struct {
	data map[string]any
}

// MetaFromMap wraps a decoded meta file. A nil or empty map yields a zero
// Meta.
func MetaFromMap(data map[string]any) Meta {
	if len(data) == 0 {
		return Meta{}
	}
	return Meta{data: data}
}

// IsZero reports whether there is no metadata at all.
func (m *Meta) IsZero() bool {
	return len(m.data) == 0
}

// RemoteID returns the remote record id as its canonical string form.
// ok is false when the entity has never been created remotely.
func (m *Meta) RemoteID() (string, bool) {
	if m.data == nil {
		return "", false
	}
	id, ok := m.data[remoteIDKey]
	if !ok {
		return "", false
	}
	s := IDString(id)
	return s, s != ""
}

// SetRecord replaces the remote-record half of the metadata with rec,
// preserving the translation-store ids.
func (m *Meta) SetRecord(rec map[string]any) {
	ids := m.TranslateIDs()
	data := make(map[string]any, len(rec)+1)
	for k, v := range rec {
		data[k] = v
	}
	if len(ids) > 0 {
		anyIDs := make(map[string]any, len(ids))
		for k, v := range ids {
			anyIDs[k] = v
		}
		data[translateIDsKey] = anyIDs
	}
	m.data = data
}

// Clear resets the metadata to the never-created state.
func (m *Meta) Clear() {
	m.data = nil
}

// TranslateIDs returns the translation-store file ids keyed by unit
// ("content", and "body" for articles). The map is a copy.
func (m *Meta) TranslateIDs() map[string]string {
	out := map[string]string{}
	raw, ok := m.data[translateIDsKey].(map[string]any)
	if !ok {
		return out
	}
	for k, v := range raw {
		if s := IDString(v); s != "" {
			out[k] = s
		}
	}
	return out
}

// SetTranslateID records the translation-store file id for one unit.
func (m *Meta) SetTranslateID(unit, id string) {
	if m.data == nil {
		m.data = map[string]any{}
	}
	ids, ok := m.data[translateIDsKey].(map[string]any)
	if !ok {
		ids = map[string]any{}
		m.data[translateIDsKey] = ids
	}
	ids[unit] = id
}

// Raw returns the backing mapping for persistence. Nil when zero.
func (m *Meta) Raw() map[string]any {
	return m.data
}

// Field returns an arbitrary metadata field.
func (m *Meta) Field(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

// IDString normalizes a remote identifier to a string. Identifiers are
// opaque strings or integers; JSON decoding hands integers to us as
// float64.
func IDString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case nil:
		return ""
	}
	return ""
}
