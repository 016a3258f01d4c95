package sync

import (
	"fmt"

	"github.com/helpscribe/helpsync/internal/model"
)

// Translate uploads every translatable unit that has no translation-store
// file id yet: group content files, article content files and article
// bodies. Assigned ids are persisted to local meta one upload at a time.
func (e *Engine) Translate() error {
	categories, err := e.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load local tree: %w", err)
	}
	for _, category := range categories {
		if err := e.uploadUnits(category); err != nil {
			return err
		}
		for _, section := range category.Sections {
			if err := e.uploadUnits(section); err != nil {
				return err
			}
			for _, article := range section.Articles {
				if err := e.uploadUnits(article); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *Engine) uploadUnits(entity model.Entity) error {
	meta := entity.EntityMeta()
	ids := meta.TranslateIDs()
	for unit, unitPath := range translateUnits(entity) {
		if ids[unit] != "" {
			continue
		}
		content, err := e.store.ReadText(unitPath)
		if err != nil {
			return err
		}
		fid, err := e.translator.Upload(unitPath, content)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", unitPath, err)
		}
		if fid == "" {
			e.printer.Warnf("translation store returned no id for %s", unitPath)
			continue
		}
		meta.SetTranslateID(unit, fid)
		if err := e.saver.SaveMeta(entity); err != nil {
			return fmt.Errorf("failed to persist translation id for %s: %w", unitPath, err)
		}
		e.printer.Passf("uploaded %s", unitPath)
	}
	return nil
}
