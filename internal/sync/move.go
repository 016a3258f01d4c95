package sync

import (
	"fmt"
	"path"

	"github.com/helpscribe/helpsync/internal/model"
)

// Move relocates a section under a new category, or an article under a
// new section. Local files move first, then the remote parent link is
// re-pointed, then every affected translation-store file is re-indexed
// under its new path. Ids never change on a move, only the paths they
// point at.
func (e *Engine) Move(entity, dest model.Entity) error {
	switch v := entity.(type) {
	case *model.Article:
		section, ok := dest.(*model.Section)
		if !ok {
			return fmt.Errorf("an article moves under a section, not a %s", dest.Kind())
		}
		return e.moveArticle(v, section)
	case *model.Section:
		category, ok := dest.(*model.Category)
		if !ok {
			return fmt.Errorf("a section moves under a category, not a %s", dest.Kind())
		}
		return e.moveSection(v, category)
	}
	return fmt.Errorf("cannot move a %s", entity.Kind())
}

func (e *Engine) moveArticle(article *model.Article, dest *model.Section) error {
	moved := &model.Article{Section: dest, Slug: article.Slug, Name: article.Name, Meta: article.Meta}

	locales, err := e.store.ListDirs(article.Section.Dir())
	if err != nil {
		return err
	}
	for _, locale := range locales {
		if err := e.store.Move(article.ContentTranslationPath(locale), moved.ContentTranslationPath(locale)); err != nil {
			return fmt.Errorf("failed to move article files: %w", err)
		}
		if err := e.store.Move(article.BodyTranslationPath(locale), moved.BodyTranslationPath(locale)); err != nil {
			return fmt.Errorf("failed to move article files: %w", err)
		}
	}
	if err := e.store.Move(article.MetaPath(), moved.MetaPath()); err != nil {
		return fmt.Errorf("failed to move article meta: %w", err)
	}

	if err := e.repointParent(moved, dest, "section_id"); err != nil {
		return err
	}
	if err := e.relocateUnits(moved); err != nil {
		return err
	}
	e.printer.Passf("moved article %q to %s", article.Name, dest.Dir())
	return nil
}

func (e *Engine) moveSection(section *model.Section, dest *model.Category) error {
	newDir := path.Join(dest.Dir(), section.Slug)
	if err := e.store.Move(section.Dir(), newDir); err != nil {
		return fmt.Errorf("failed to move %s: %w", section.Dir(), err)
	}

	// Reload under the new parent so every descendant path is current.
	entity, err := e.loader.LoadPath(newDir)
	if err != nil {
		return fmt.Errorf("failed to reload moved section: %w", err)
	}
	moved, ok := entity.(*model.Section)
	if !ok {
		return fmt.Errorf("moved path %s is not a section", newDir)
	}

	if err := e.repointParent(moved, dest, "category_id"); err != nil {
		return err
	}
	if err := e.relocateUnits(moved); err != nil {
		return err
	}
	// The translation store indexes by path, so every descendant article
	// needs its files re-pointed as well.
	for _, article := range moved.Articles {
		if err := e.relocateUnits(article); err != nil {
			return err
		}
	}
	e.printer.Passf("moved section %q to %s", section.Name, dest.Dir())
	return nil
}

// repointParent updates the remote parent-link field. An entity never
// exported has no remote link to update; its parent link materializes on
// the next export. The destination must already exist remotely.
func (e *Engine) repointParent(entity model.Entity, dest model.Entity, field string) error {
	id, ok := entity.EntityMeta().RemoteID()
	if !ok {
		return nil
	}
	destID, ok := dest.EntityMeta().RemoteID()
	if !ok {
		return fmt.Errorf("cannot move under %s %q before it has been exported", dest.Kind(), dest.DisplayName())
	}
	payload := map[string]any{field: idValue(destID)}
	if _, err := e.remote.UpdateRecord(entity.Kind().Collection(), id, payload); err != nil {
		return fmt.Errorf("failed to re-point %s %q: %w", entity.Kind(), entity.DisplayName(), err)
	}
	return nil
}

// relocateUnits re-indexes the entity's uploaded translation files under
// their post-move paths.
func (e *Engine) relocateUnits(entity model.Entity) error {
	ids := entity.EntityMeta().TranslateIDs()
	for unit, newPath := range translateUnits(entity) {
		fid, ok := ids[unit]
		if !ok {
			continue
		}
		content, err := e.store.ReadText(newPath)
		if err != nil {
			return err
		}
		if err := e.translator.Relocate(fid, newPath, content); err != nil {
			return fmt.Errorf("failed to relocate translation file %s to %s: %w", fid, newPath, err)
		}
	}
	return nil
}
