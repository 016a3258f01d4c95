package tree

import (
	"log"
	"os"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/store"
)

// Saver persists entity graphs back into the local tree. Writes merge
// into existing files, so fields a remote record does not carry are
// never clobbered.
type Saver struct {
	store  *store.Store
	logger *log.Logger
}

// NewSaver returns a Saver over st. If logger is nil, a default logger
// writing to stderr is used.
func NewSaver(st *store.Store, logger *log.Logger) *Saver {
	if logger == nil {
		logger = log.New(os.Stderr, "[tree] ", log.LstdFlags)
	}
	return &Saver{store: st, logger: logger}
}

// SaveAll persists every category with its full subtree.
func (s *Saver) SaveAll(categories []*model.Category) error {
	for _, category := range categories {
		if err := s.SaveCategory(category); err != nil {
			return err
		}
	}
	return nil
}

// SaveCategory persists the category, its translations and its sections.
func (s *Saver) SaveCategory(category *model.Category) error {
	if err := s.saveGroup(category, category.Content(), category.Translations, category.ContentTranslationPath); err != nil {
		return err
	}
	for _, section := range category.Sections {
		if err := s.SaveSection(section); err != nil {
			return err
		}
	}
	return nil
}

// SaveSection persists the section, its translations and its articles.
func (s *Saver) SaveSection(section *model.Section) error {
	if err := s.saveGroup(section, section.Content(), section.Translations, section.ContentTranslationPath); err != nil {
		return err
	}
	for _, article := range section.Articles {
		if err := s.SaveArticle(article); err != nil {
			return err
		}
	}
	return nil
}

// SaveArticle persists the article's meta, per-locale content and
// per-locale body files.
func (s *Saver) SaveArticle(article *model.Article) error {
	if err := s.SaveMeta(article); err != nil {
		return err
	}
	if _, err := s.store.WriteJSON(article.ContentPath(), article.Content()); err != nil {
		return err
	}
	if err := s.store.WriteText(article.BodyPath(), article.Body); err != nil {
		return err
	}
	for _, t := range article.Translations {
		if t.Locale == model.DefaultLocale {
			continue
		}
		if _, err := s.store.WriteJSON(article.ContentTranslationPath(t.Locale), map[string]any{"name": t.Name}); err != nil {
			return err
		}
		if err := s.store.WriteText(article.BodyTranslationPath(t.Locale), t.Body); err != nil {
			return err
		}
	}
	return nil
}

// SaveMeta persists just the entity's meta file. Export calls this the
// moment a remote id is assigned, so a failure later in the run cannot
// orphan the freshly created record.
func (s *Saver) SaveMeta(e model.Entity) error {
	meta := e.EntityMeta()
	if meta.IsZero() {
		return nil
	}
	if _, err := s.store.WriteJSON(e.MetaPath(), meta.Raw()); err != nil {
		return err
	}
	return nil
}

func (s *Saver) saveGroup(e model.Entity, content map[string]any, translations []model.GroupTranslation, translationPath func(string) string) error {
	if err := s.SaveMeta(e); err != nil {
		return err
	}
	if _, err := s.store.WriteJSON(translationPath(model.DefaultLocale), content); err != nil {
		return err
	}
	for _, t := range translations {
		if t.Locale == model.DefaultLocale {
			continue
		}
		payload := map[string]any{"name": t.Name, "description": t.Description}
		if _, err := s.store.WriteJSON(translationPath(t.Locale), payload); err != nil {
			return err
		}
	}
	return nil
}
