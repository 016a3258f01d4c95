// Package tree maps between the on-disk content layout and the entity
// graph. The loader rebuilds a model from the file tree (self-healing
// names as it goes); the saver, remover and mover apply model-side
// operations back to the local store. Remote effects live in the sync
// package; everything here is local.
package tree

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/slug"
	"github.com/helpscribe/helpsync/internal/store"
)

// Loader reads the local tree into entity graphs.
type Loader struct {
	store  *store.Store
	logger *log.Logger
}

// NewLoader returns a Loader over st. If logger is nil, a default logger
// writing to stderr is used.
func NewLoader(st *store.Store, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(os.Stderr, "[tree] ", log.LstdFlags)
	}
	return &Loader{store: st, logger: logger}
}

// Load reads every category under the store root, with its sections,
// articles and translations. Directory-listing order is preserved for
// display but is not guaranteed stable across OS calls.
func (l *Loader) Load() ([]*model.Category, error) {
	names, err := l.store.ListDirs("")
	if err != nil {
		return nil, err
	}
	categories := make([]*model.Category, 0, len(names))
	for _, name := range names {
		category, err := l.loadCategory(name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// LoadPath loads the entity addressed by a store-relative path:
// one component for a category, two for a section, three for an article
// slug (a file extension on the last component is ignored).
func (l *Loader) LoadPath(relPath string) (model.Entity, error) {
	parts := strings.Split(strings.Trim(path.Clean(relPath), "/"), "/")
	switch len(parts) {
	case 1:
		return l.loadCategory(parts[0])
	case 2:
		category, err := l.loadCategory(parts[0])
		if err != nil {
			return nil, err
		}
		return l.loadSection(category, parts[1])
	case 3:
		category, err := l.loadCategory(parts[0])
		if err != nil {
			return nil, err
		}
		section, err := l.loadSection(category, parts[1])
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(parts[2], path.Ext(parts[2]))
		for _, article := range section.Articles {
			if article.Slug == name {
				return article, nil
			}
		}
		return nil, fmt.Errorf("article %q not found under %s/%s", name, parts[0], parts[1])
	}
	return nil, fmt.Errorf("path %q does not address a category, section or article", relPath)
}

func (l *Loader) loadCategory(dirName string) (*model.Category, error) {
	dirName, err := l.healDirName("", dirName)
	if err != nil {
		return nil, err
	}

	category := &model.Category{Slug: dirName}
	meta, err := l.readMeta(category.MetaPath())
	if err != nil {
		return nil, err
	}
	category.Meta = meta

	content := l.readContent(category.ContentPath(), dirName)
	category.Name = stringField(content, "name", dirName)
	category.Description = stringField(content, "description", "")
	category.Translations = l.groupTranslations(category.Dir())

	sectionNames, err := l.store.ListDirs(category.Dir())
	if err != nil {
		return nil, err
	}
	for _, name := range sectionNames {
		section, err := l.loadSection(category, name)
		if err != nil {
			return nil, err
		}
		category.Sections = append(category.Sections, section)
	}
	return category, nil
}

func (l *Loader) loadSection(category *model.Category, dirName string) (*model.Section, error) {
	dirName, err := l.healDirName(category.Dir(), dirName)
	if err != nil {
		return nil, err
	}

	section := &model.Section{Category: category, Slug: dirName}
	meta, err := l.readMeta(section.MetaPath())
	if err != nil {
		return nil, err
	}
	section.Meta = meta

	content := l.readContent(section.ContentPath(), dirName)
	section.Name = stringField(content, "name", dirName)
	section.Description = stringField(content, "description", "")
	section.Translations = l.groupTranslations(section.Dir())

	if err := l.loadArticles(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (l *Loader) loadArticles(section *model.Section) error {
	defaultDir := path.Join(section.Dir(), model.DefaultLocale)
	files, err := l.store.ListFiles(defaultDir)
	if err != nil {
		return err
	}
	for _, file := range files {
		name, ok := model.ArticleSlugFromFile(file)
		if !ok {
			continue
		}
		article, err := l.loadArticle(section, name)
		if err != nil {
			return err
		}
		section.Articles = append(section.Articles, article)
	}
	return nil
}

func (l *Loader) loadArticle(section *model.Section, name string) (*model.Article, error) {
	name, err := l.healArticleName(section, name)
	if err != nil {
		return nil, err
	}

	article := &model.Article{Section: section, Slug: name}
	meta, err := l.readMeta(article.MetaPath())
	if err != nil {
		return nil, err
	}
	article.Meta = meta

	content := l.readContent(article.ContentPath(), name)
	article.Name = stringField(content, "name", name)

	body, err := l.store.ReadText(article.BodyPath())
	if err != nil {
		return nil, err
	}
	article.Body = body
	article.Translations = l.articleTranslations(article)
	return article, nil
}

// groupTranslations discovers locale siblings of a group content file.
// Locales whose content is missing a name are skipped with a warning,
// never promoted to a half-complete translation.
func (l *Loader) groupTranslations(dir string) []model.GroupTranslation {
	files, err := l.store.ListFiles(dir)
	if err != nil {
		l.logger.Printf("WARNING: cannot list %s: %v", dir, err)
		return nil
	}
	var translations []model.GroupTranslation
	for _, file := range files {
		locale, ok := model.GroupTranslationLocale(file)
		if !ok {
			continue
		}
		content, err := l.store.ReadJSON(path.Join(dir, file))
		if err != nil {
			l.logger.Printf("WARNING: skipping translation %s/%s: %v", dir, file, err)
			continue
		}
		name, ok := content["name"].(string)
		if !ok || name == "" {
			l.logger.Printf("WARNING: missing name in %s/%s, skipping translation", dir, file)
			continue
		}
		translations = append(translations, model.GroupTranslation{
			Locale:      locale,
			Name:        name,
			Description: stringField(content, "description", ""),
		})
	}
	return translations
}

// articleTranslations walks the per-locale sibling directories of the
// article's section. A locale missing either its content or its body half
// is dropped with a warning.
func (l *Loader) articleTranslations(article *model.Article) []model.ArticleTranslation {
	locales, err := l.store.ListDirs(article.Section.Dir())
	if err != nil {
		l.logger.Printf("WARNING: cannot list locales for %s: %v", article.Slug, err)
		return nil
	}
	var translations []model.ArticleTranslation
	for _, locale := range locales {
		contentPath := article.ContentTranslationPath(locale)
		bodyPath := article.BodyTranslationPath(locale)

		content, err := l.store.ReadJSON(contentPath)
		if err != nil {
			l.logger.Printf("WARNING: skipping locale %s of %s: %v", locale, article.Slug, err)
			continue
		}
		name, ok := content["name"].(string)
		if !ok || name == "" {
			l.logger.Printf("WARNING: missing content from %s, skipping translation", contentPath)
			continue
		}
		if !l.store.Exists(bodyPath) {
			l.logger.Printf("WARNING: missing body from %s, skipping translation", bodyPath)
			continue
		}
		body, err := l.store.ReadText(bodyPath)
		if err != nil {
			l.logger.Printf("WARNING: skipping locale %s of %s: %v", locale, article.Slug, err)
			continue
		}
		translations = append(translations, model.ArticleTranslation{Locale: locale, Name: name, Body: body})
	}
	return translations
}

// readMeta loads an entity's meta file. Absence means "not yet synced";
// a malformed file is logged and treated the same way.
func (l *Loader) readMeta(metaPath string) (model.Meta, error) {
	data, err := l.store.ReadJSON(metaPath)
	if errors.Is(err, store.ErrMalformed) {
		l.logger.Printf("WARNING: malformed meta %s, treating as never synced: %v", metaPath, err)
		return model.Meta{}, nil
	}
	if err != nil {
		return model.Meta{}, err
	}
	return model.MetaFromMap(data), nil
}

// readContent loads a content file, backfilling a {name: basename} stub
// when the file is absent or unreadable.
func (l *Loader) readContent(contentPath, basename string) map[string]any {
	content, err := l.store.ReadJSON(contentPath)
	if err != nil {
		l.logger.Printf("WARNING: unreadable content %s, using defaults: %v", contentPath, err)
		content = nil
	}
	if len(content) == 0 {
		return map[string]any{"name": basename}
	}
	return content
}

// healDirName renames a directory whose name is not already a clean slug.
// Re-slugifying a clean name is a no-op, so repeated loads are safe.
func (l *Loader) healDirName(parentDir, dirName string) (string, error) {
	cleaned := slug.Make(dirName)
	if cleaned == dirName {
		return dirName, nil
	}
	l.logger.Printf("renaming %s to %s", path.Join(parentDir, dirName), path.Join(parentDir, cleaned))
	if err := l.store.Move(path.Join(parentDir, dirName), path.Join(parentDir, cleaned)); err != nil {
		return "", err
	}
	return cleaned, nil
}

// healArticleName renames an article's files, across every locale
// directory, when its base name is not already a clean slug.
func (l *Loader) healArticleName(section *model.Section, name string) (string, error) {
	cleaned := slug.Make(name)
	if cleaned == name {
		return name, nil
	}
	l.logger.Printf("renaming article %s to %s", name, cleaned)

	old := &model.Article{Section: section, Slug: name}
	fixed := &model.Article{Section: section, Slug: cleaned}
	if err := l.store.Move(old.MetaPath(), fixed.MetaPath()); err != nil {
		return "", err
	}
	locales, err := l.store.ListDirs(section.Dir())
	if err != nil {
		return "", err
	}
	for _, locale := range locales {
		if err := l.store.Move(old.ContentTranslationPath(locale), fixed.ContentTranslationPath(locale)); err != nil {
			return "", err
		}
		if err := l.store.Move(old.BodyTranslationPath(locale), fixed.BodyTranslationPath(locale)); err != nil {
			return "", err
		}
	}
	return cleaned, nil
}

func stringField(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
