package sync

import (
	"fmt"
	"sort"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/remote"
)

// Doctor reconciles local metadata against actual remote state: stale ids
// are cleared, records reachable by name are re-adopted, duplicate-name
// conflicts are resolved, and translation-store ids lost from local meta
// are recovered from the master file list. One entity's failure never
// aborts its siblings.
func (e *Engine) Doctor() error {
	categories, err := e.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load local tree: %w", err)
	}
	return e.doctorTree(categories)
}

func (e *Engine) doctorTree(categories []*model.Category) error {
	masters := e.masterFileIndex()
	for _, category := range categories {
		e.doctorEntity(category, nil, masters)
		catRef := e.parentRef(category)
		for _, section := range category.Sections {
			e.doctorEntity(section, catRef, masters)
			secRef := e.parentRef(section)
			for _, article := range section.Articles {
				e.doctorEntity(article, secRef, masters)
			}
		}
	}
	return nil
}

// masterFileIndex maps local paths to translation-store file ids. An
// unreachable translation store degrades doctor to remote-only repairs.
func (e *Engine) masterFileIndex() map[string]string {
	files, err := e.translator.MasterFiles()
	if err != nil {
		e.logger.Printf("WARNING: cannot list translation master files, skipping id recovery: %v", err)
		return nil
	}
	index := make(map[string]string, len(files))
	for _, f := range files {
		index[f.Path] = f.ID
	}
	return index
}

func (e *Engine) doctorEntity(entity model.Entity, parent *remote.ParentRef, masters map[string]string) {
	kind, name := entity.Kind(), entity.DisplayName()
	meta := entity.EntityMeta()

	// A child of a still-new parent cannot exist remotely. Reset it so the
	// next export creates parent and child in order.
	if kind != model.KindCategory && parent == nil {
		if _, ok := meta.RemoteID(); ok {
			e.printer.Warnf("%s %q belongs to an unexported parent, resetting to new", kind, name)
			e.clearMeta(entity)
		}
		e.adoptTranslateIDs(entity, masters)
		return
	}

	id, hasID := meta.RemoteID()
	if hasID {
		_, err := e.remote.FetchRecord(kind.Collection(), id)
		if err == nil {
			e.adoptTranslateIDs(entity, masters)
			return
		}
		if !remote.IsNotFound(err) {
			e.printer.Failf("cannot verify %s %q: %v", kind, name, err)
			e.logger.Printf("WARNING: skipping %s %q: %v", kind, name, err)
			return
		}
	}

	records, err := e.remote.FetchCollection(kind.Collection(), parent)
	if err != nil {
		e.printer.Failf("cannot list remote %s: %v", kind.Collection(), err)
		e.logger.Printf("WARNING: skipping %s %q: %v", kind, name, err)
		return
	}
	var matches []remote.Record
	for _, rec := range records {
		if recordName(rec) == name {
			matches = append(matches, rec)
		}
	}

	switch len(matches) {
	case 0:
		if hasID {
			e.printer.Warnf("%s %q pointed at missing remote record %s, resetting to new", kind, name, id)
			e.clearMeta(entity)
		}
	case 1:
		e.adoptRecord(entity, matches[0])
	default:
		kept, ok := e.resolveDuplicates(entity, matches)
		if !ok {
			return
		}
		e.adoptRecord(entity, kept)
	}
	e.adoptTranslateIDs(entity, masters)
}

// adoptRecord points local metadata at a remote record found by name.
// This recovers from a prior partial export or a stale id.
func (e *Engine) adoptRecord(entity model.Entity, rec remote.Record) {
	meta := entity.EntityMeta()
	if id, ok := meta.RemoteID(); ok && id == recordID(rec) {
		return
	}
	meta.SetRecord(rec)
	if err := e.saver.SaveMeta(entity); err != nil {
		e.printer.Failf("cannot save metadata for %s %q: %v", entity.Kind(), entity.DisplayName(), err)
		return
	}
	e.printer.Warnf("adopted remote %s %s for %q", entity.Kind(), recordID(rec), entity.DisplayName())
}

// clearMeta resets the entity to the never-created state on disk.
func (e *Engine) clearMeta(entity model.Entity) {
	entity.EntityMeta().Clear()
	if err := e.store.DeleteFile(entity.MetaPath()); err != nil {
		e.printer.Failf("cannot clear metadata for %s %q: %v", entity.Kind(), entity.DisplayName(), err)
	}
}

// resolveDuplicates picks which of several same-named remote records to
// keep, deleting the rest. Forced mode keeps the most recently updated
// one; interactive mode asks. ok is false when the user keeps all, which
// skips the entity entirely.
func (e *Engine) resolveDuplicates(entity model.Entity, matches []remote.Record) (remote.Record, bool) {
	kind, name := entity.Kind(), entity.DisplayName()
	sort.SliceStable(matches, func(i, j int) bool {
		return recordTime(matches[i], "updated_at").After(recordTime(matches[j], "updated_at"))
	})

	keep := 0
	if !e.force && e.pick != nil {
		labels := make([]string, len(matches))
		for i, rec := range matches {
			labels[i] = fmt.Sprintf("id %s, created %s, updated %s",
				recordID(rec), rec["created_at"], rec["updated_at"])
		}
		choice, err := e.pick(fmt.Sprintf("multiple remote %s records named %q, keep which?", kind, name), labels)
		if err != nil {
			e.printer.Failf("cannot resolve duplicates for %s %q: %v", kind, name, err)
			return nil, false
		}
		if choice < 0 || choice >= len(matches) {
			e.printer.Warnf("keeping all duplicates of %s %q, skipping", kind, name)
			return nil, false
		}
		keep = choice
	} else {
		e.printer.Warnf("multiple remote %s records named %q, keeping the most recently updated", kind, name)
	}

	for i, rec := range matches {
		if i == keep {
			continue
		}
		if err := e.deleteRecord(kind.Collection(), rec); err != nil {
			e.printer.Failf("cannot delete duplicate %s %s: %v", kind, recordID(rec), err)
			return nil, false
		}
		e.printer.Warnf("deleted duplicate %s %s", kind, recordID(rec))
	}
	return matches[keep], true
}

// deleteRecord removes a remote record, preferring its self-describing
// URL when the record carries one.
func (e *Engine) deleteRecord(collection string, rec remote.Record) error {
	if url, ok := rec["url"].(string); ok && url != "" {
		_, err := e.remote.DeleteByURL(url)
		return err
	}
	_, err := e.remote.DeleteRecord(collection, recordID(rec))
	return err
}

// adoptTranslateIDs recovers translation-store file ids for units whose
// local path matches an uploaded master file.
func (e *Engine) adoptTranslateIDs(entity model.Entity, masters map[string]string) {
	if len(masters) == 0 {
		return
	}
	meta := entity.EntityMeta()
	ids := meta.TranslateIDs()
	changed := false
	for unit, path := range translateUnits(entity) {
		if ids[unit] != "" {
			continue
		}
		fid, ok := masters[path]
		if !ok {
			continue
		}
		meta.SetTranslateID(unit, fid)
		changed = true
		e.printer.Warnf("recovered translation file id %s for %s", fid, path)
	}
	if changed {
		if err := e.saver.SaveMeta(entity); err != nil {
			e.printer.Failf("cannot save metadata for %s %q: %v", entity.Kind(), entity.DisplayName(), err)
		}
	}
}
