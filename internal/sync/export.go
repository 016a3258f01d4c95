package sync

import (
	"fmt"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/remote"
	"github.com/helpscribe/helpsync/internal/slug"
)

// Export pushes the local tree to the remote system. Doctor runs first so
// the push starts from reconciled metadata, then each entity is created
// if it has no remote id (the id is persisted before anything else
// happens) and each locale translation is created or, when its rendered
// payload differs from the remote copy, updated. An unchanged tree
// exports with zero write calls.
func (e *Engine) Export() error {
	if err := e.Doctor(); err != nil {
		return err
	}
	// Doctor may have renamed files and rewritten metadata, so reload.
	categories, err := e.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load local tree: %w", err)
	}
	for _, category := range categories {
		if err := e.exportGroup(category, category.Payload(), category.Translations, nil); err != nil {
			return err
		}
		catRef := e.parentRef(category)
		for _, section := range category.Sections {
			if err := e.exportGroup(section, section.Payload(), section.Translations, catRef); err != nil {
				return err
			}
			secRef := e.parentRef(section)
			for _, article := range section.Articles {
				if err := e.exportArticle(article, secRef); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *Engine) exportGroup(entity model.Entity, payload map[string]any, translations []model.GroupTranslation, parent *remote.ParentRef) error {
	id, err := e.ensureRecord(entity, payload, parent)
	if err != nil {
		return err
	}
	missing, err := e.missingLocales(entity, id)
	if err != nil {
		return err
	}
	for _, t := range translations {
		if err := e.pushTranslation(entity, id, t.Locale, t.Payload(), missing); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) exportArticle(article *model.Article, parent *remote.ParentRef) error {
	payload := article.Payload(e.imageCDN)
	if e.disableComments {
		payload["comments_disabled"] = true
	}
	_, existed := article.Meta.RemoteID()
	id, err := e.ensureRecord(article, payload, parent)
	if err != nil {
		return err
	}
	// New articles carry the flag in their create payload; articles that
	// already exist remotely get it pushed explicitly.
	if e.disableComments && existed {
		if _, err := e.remote.UpdateRecord(model.KindArticle.Collection(), id, map[string]any{"comments_disabled": true}); err != nil {
			return fmt.Errorf("failed to disable comments on article %q: %w", article.Name, err)
		}
	}
	missing, err := e.missingLocales(article, id)
	if err != nil {
		return err
	}
	for _, t := range article.Translations {
		if err := e.pushTranslation(article, id, t.Locale, t.Payload(e.imageCDN), missing); err != nil {
			return err
		}
	}
	return nil
}

// ensureRecord creates the entity remotely when it has no id yet. The
// returned record is persisted to local meta immediately, before any
// further network call, so a crash cannot orphan the remote record.
func (e *Engine) ensureRecord(entity model.Entity, payload map[string]any, parent *remote.ParentRef) (string, error) {
	kind, name := entity.Kind(), entity.DisplayName()
	meta := entity.EntityMeta()
	if id, ok := meta.RemoteID(); ok {
		return id, nil
	}
	if kind != model.KindCategory && parent == nil {
		return "", fmt.Errorf("cannot create %s %q before its parent has been exported", kind, name)
	}
	rec, err := e.remote.CreateRecord(kind.Collection(), parent, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create %s %q: %w", kind, name, err)
	}
	meta.SetRecord(rec)
	if err := e.saver.SaveMeta(entity); err != nil {
		return "", fmt.Errorf("failed to persist id of %s %q: %w", kind, name, err)
	}
	e.printer.Passf("created %s %q", kind, name)
	return recordID(rec), nil
}

func (e *Engine) missingLocales(entity model.Entity, id string) (map[string]bool, error) {
	locales, err := e.remote.FetchMissingLocales(entity.Kind().Collection(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to probe missing locales of %s %q: %w", entity.Kind(), entity.DisplayName(), err)
	}
	missing := make(map[string]bool, len(locales))
	for _, l := range locales {
		missing[slug.ToRemoteLocale(l)] = true
	}
	return missing, nil
}

// pushTranslation creates a translation the remote system is missing, or
// updates an existing one whose payload differs from the local rendering.
// An equal payload issues no write at all.
func (e *Engine) pushTranslation(entity model.Entity, id, locale string, payload map[string]any, missing map[string]bool) error {
	kind, name := entity.Kind(), entity.DisplayName()
	collection := kind.Collection()
	remoteLocale := slug.ToRemoteLocale(locale)

	if missing[remoteLocale] {
		if err := e.remote.CreateTranslation(collection, id, payload); err != nil {
			return fmt.Errorf("failed to create %s translation of %s %q: %w", locale, kind, name, err)
		}
		e.printer.Passf("created %s translation of %s %q", locale, kind, name)
		return nil
	}

	current, err := e.remote.FetchTranslation(collection, id, remoteLocale)
	if remote.IsNotFound(err) {
		if err := e.remote.CreateTranslation(collection, id, payload); err != nil {
			return fmt.Errorf("failed to create %s translation of %s %q: %w", locale, kind, name, err)
		}
		e.printer.Passf("created %s translation of %s %q", locale, kind, name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch %s translation of %s %q: %w", locale, kind, name, err)
	}
	if !payloadChanged(payload, current) {
		return nil
	}
	if err := e.remote.UpdateTranslation(collection, id, remoteLocale, payload); err != nil {
		return fmt.Errorf("failed to update %s translation of %s %q: %w", locale, kind, name, err)
	}
	e.printer.Passf("updated %s translation of %s %q", locale, kind, name)
	return nil
}
