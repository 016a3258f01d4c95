package sync

import (
	"fmt"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/remote"
)

// Remove deletes an entity subtree in two passes. The remote pass fans
// out depth first over every descendant: translation-store files, then
// the remote record. Local files are deleted only after the whole remote
// pass succeeds, so an interrupted run leaves the local tree behind as
// the work list for a re-run. Re-running after a partial removal is
// safe: already-gone remote records and files are tolerated.
func (e *Engine) Remove(entity model.Entity) error {
	if err := e.removeRemoteTree(entity); err != nil {
		return err
	}
	return e.removeLocal(entity)
}

func (e *Engine) removeRemoteTree(entity model.Entity) error {
	switch v := entity.(type) {
	case *model.Category:
		for _, section := range v.Sections {
			if err := e.removeRemoteTree(section); err != nil {
				return err
			}
		}
	case *model.Section:
		for _, article := range v.Articles {
			if err := e.removeRemoteTree(article); err != nil {
				return err
			}
		}
	case *model.Article:
	default:
		return fmt.Errorf("cannot remove a %s", entity.Kind())
	}
	if err := e.removeRemote(entity); err != nil {
		return err
	}
	e.printer.Passf("removed remote %s %q", entity.Kind(), entity.DisplayName())
	return nil
}

// removeRemote frees the entity's translation-store files and deletes its
// remote record. Entities never exported have nothing to delete remotely.
func (e *Engine) removeRemote(entity model.Entity) error {
	kind, name := entity.Kind(), entity.DisplayName()
	meta := entity.EntityMeta()
	for unit, fid := range meta.TranslateIDs() {
		if _, err := e.translator.Delete(fid); err != nil && !remote.IsNotFound(err) {
			return fmt.Errorf("failed to delete translation file for %s of %s %q: %w", unit, kind, name, err)
		}
	}
	id, ok := meta.RemoteID()
	if !ok {
		return nil
	}
	if _, err := e.remote.DeleteRecord(kind.Collection(), id); err != nil && !remote.IsNotFound(err) {
		return fmt.Errorf("failed to delete remote %s %q: %w", kind, name, err)
	}
	return nil
}

func (e *Engine) removeLocal(entity model.Entity) error {
	if article, ok := entity.(*model.Article); ok {
		if err := e.removeArticleFiles(article); err != nil {
			return err
		}
	} else if err := e.store.DeleteTree(entity.Dir()); err != nil {
		return fmt.Errorf("failed to delete %s: %w", entity.Dir(), err)
	}
	e.printer.Passf("removed %s %q", entity.Kind(), entity.DisplayName())
	return nil
}

func (e *Engine) removeArticleFiles(article *model.Article) error {
	locales, err := e.store.ListDirs(article.Section.Dir())
	if err != nil {
		return err
	}
	for _, locale := range locales {
		if err := e.store.DeleteFile(article.ContentTranslationPath(locale)); err != nil {
			return err
		}
		if err := e.store.DeleteFile(article.BodyTranslationPath(locale)); err != nil {
			return err
		}
	}
	return e.store.DeleteFile(article.MetaPath())
}
