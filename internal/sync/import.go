package sync

import (
	"fmt"

	"github.com/helpscribe/helpsync/internal/htmlmd"
	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/remote"
)

// Import pulls the remote tree into the local store: categories, their
// sections, their articles. Article bodies arrive as HTML and are
// converted to the local markup format. Existing local state is not
// consulted; imported content overwrites same-named entries.
func (e *Engine) Import() error {
	records, err := e.remote.FetchCollection(model.KindCategory.Collection(), nil)
	if err != nil {
		return fmt.Errorf("failed to list remote categories: %w", err)
	}
	for _, rec := range records {
		category := model.NewCategory(recordName(rec), stringOr(rec, "description"))
		category.Meta.SetRecord(rec)
		if err := e.importSections(category); err != nil {
			return err
		}
		if err := e.saver.SaveCategory(category); err != nil {
			return fmt.Errorf("failed to save category %q: %w", category.Name, err)
		}
		e.printer.Passf("imported category %q", category.Name)
	}
	return nil
}

func (e *Engine) importSections(category *model.Category) error {
	records, err := e.remote.FetchCollection(model.KindSection.Collection(), e.parentRef(category))
	if err != nil {
		return fmt.Errorf("failed to list sections of %q: %w", category.Name, err)
	}
	for _, rec := range records {
		section := model.NewSection(category, recordName(rec), stringOr(rec, "description"))
		section.Meta.SetRecord(rec)
		if err := e.importArticles(section); err != nil {
			return err
		}
		category.Sections = append(category.Sections, section)
		e.printer.Passf("imported section %q", section.Name)
	}
	return nil
}

func (e *Engine) importArticles(section *model.Section) error {
	records, err := e.remote.FetchCollection(model.KindArticle.Collection(), e.parentRef(section))
	if err != nil {
		return fmt.Errorf("failed to list articles of %q: %w", section.Name, err)
	}
	for _, rec := range records {
		name := recordName(rec)
		body, err := htmlmd.ToMarkup(stringOr(rec, "body"))
		if err != nil {
			e.logger.Printf("WARNING: cannot convert body of article %q, keeping raw HTML: %v", name, err)
			body = stringOr(rec, "body")
		}
		article := model.NewArticle(section, name, body)
		article.Meta.SetRecord(rec)
		section.Articles = append(section.Articles, article)
		e.printer.Passf("imported article %q", name)
	}
	return nil
}

func stringOr(rec remote.Record, key string) string {
	s, _ := rec[key].(string)
	return s
}
