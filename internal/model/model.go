// Package model holds the in-memory entity graph for one task run: the
// category -> section -> article hierarchy, each with locale-keyed
// translations, plus the rules that map entities onto the local file tree
// and onto remote payloads.
//
// Entities are owned by a single task invocation. They are built fresh from
// either the local store or a remote record, mutated in place by the sync
// operations, and discarded when the task ends.
package model

import (
	"github.com/helpscribe/helpsync/internal/htmlmd"
	"github.com/helpscribe/helpsync/internal/slug"
)

// DefaultLocale is the canonical, always-present source-of-truth locale.
// Other locales are translations of it.
const DefaultLocale = "en-US"

// Kind tags the three content kinds. Remove and Move accept an Entity and
// dispatch on its Kind instead of scattering type checks.
type Kind int

const (
	KindCategory Kind = iota
	KindSection
	KindArticle
)

// String returns the singular lowercase name, used in progress output.
func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindSection:
		return "section"
	case KindArticle:
		return "article"
	}
	return "unknown"
}

// Collection returns the remote collection name for this kind.
func (k Kind) Collection() string {
	switch k {
	case KindCategory:
		return "categories"
	case KindSection:
		return "sections"
	case KindArticle:
		return "articles"
	}
	return ""
}

// Key returns the singular JSON key the remote system wraps records in.
func (k Kind) Key() string {
	return k.String()
}

// Entity is the tagged union over Category, Section and Article.
type Entity interface {
	Kind() Kind
	// DisplayName is the default-locale display name.
	DisplayName() string
	// Dir is the store-relative directory holding the entity's files.
	// For an article this is its default-locale directory.
	Dir() string
	// MetaPath is the store-relative path of the entity's meta file.
	MetaPath() string
	// EntityMeta exposes the mutable remote metadata.
	EntityMeta() *Meta
}

// Category is a top-level grouping.
type Category struct {
	Name         string
	Description  string
	Slug         string
	Meta         Meta
	Translations []GroupTranslation
	Sections     []*Section
}

// NewCategory builds a category whose slug is derived from name.
func NewCategory(name, description string) *Category {
	return &Category{Name: name, Description: description, Slug: slug.Make(name)}
}

func (c *Category) Kind() Kind          { return KindCategory }
func (c *Category) DisplayName() string { return c.Name }
func (c *Category) EntityMeta() *Meta   { return &c.Meta }

// Dir returns the category directory relative to the store root.
func (c *Category) Dir() string { return c.Slug }

// MetaPath returns the path of the category's meta file.
func (c *Category) MetaPath() string { return joinPath(c.Dir(), groupMetaFile) }

// ContentPath returns the path of the default-locale content file.
func (c *Category) ContentPath() string { return joinPath(c.Dir(), groupContentFile) }

// ContentTranslationPath returns the content file path for the given
// locale. The default locale is the bare filename with no locale infix.
func (c *Category) ContentTranslationPath(locale string) string {
	return groupTranslationPath(c.Dir(), locale)
}

// Content returns the JSON mapping stored in the content file.
func (c *Category) Content() map[string]any {
	return map[string]any{"name": c.Name, "description": c.Description}
}

// Payload serializes the category for remote record creation.
func (c *Category) Payload() map[string]any {
	return groupPayload(c.Name, c.Description)
}

// Section groups articles inside a category. Its identity on the remote
// system requires the parent category to already have a remote id.
type Section struct {
	Name         string
	Description  string
	Slug         string
	Meta         Meta
	Translations []GroupTranslation
	Articles     []*Article
	Category     *Category
}

// NewSection builds a section under category with a slug derived from name.
func NewSection(category *Category, name, description string) *Section {
	return &Section{Category: category, Name: name, Description: description, Slug: slug.Make(name)}
}

func (s *Section) Kind() Kind          { return KindSection }
func (s *Section) DisplayName() string { return s.Name }
func (s *Section) EntityMeta() *Meta   { return &s.Meta }

// Dir returns the section directory relative to the store root.
func (s *Section) Dir() string { return joinPath(s.Category.Dir(), s.Slug) }

// MetaPath returns the path of the section's meta file.
func (s *Section) MetaPath() string { return joinPath(s.Dir(), groupMetaFile) }

// ContentPath returns the path of the default-locale content file.
func (s *Section) ContentPath() string { return joinPath(s.Dir(), groupContentFile) }

// ContentTranslationPath returns the content file path for the given locale.
func (s *Section) ContentTranslationPath(locale string) string {
	return groupTranslationPath(s.Dir(), locale)
}

// Content returns the JSON mapping stored in the content file.
func (s *Section) Content() map[string]any {
	return map[string]any{"name": s.Name, "description": s.Description}
}

// Payload serializes the section for remote record creation.
func (s *Section) Payload() map[string]any {
	return groupPayload(s.Name, s.Description)
}

// Article is leaf content: a display name plus a markup body. Its files
// live in the section's default-locale directory; translations live in
// sibling locale directories.
type Article struct {
	Name         string
	Body         string
	Slug         string
	Meta         Meta
	Translations []ArticleTranslation
	Section      *Section
}

// NewArticle builds an article under section with a slug derived from name.
func NewArticle(section *Section, name, body string) *Article {
	return &Article{Section: section, Name: name, Body: body, Slug: slug.Make(name)}
}

func (a *Article) Kind() Kind          { return KindArticle }
func (a *Article) DisplayName() string { return a.Name }
func (a *Article) EntityMeta() *Meta   { return &a.Meta }

// Dir returns the article's default-locale directory.
func (a *Article) Dir() string { return joinPath(a.Section.Dir(), DefaultLocale) }

// MetaPath returns the path of the article's meta file.
func (a *Article) MetaPath() string {
	return joinPath(a.Dir(), articleMetaPrefix+a.Slug+metaExt)
}

// ContentPath returns the default-locale content file path.
func (a *Article) ContentPath() string { return a.ContentTranslationPath(DefaultLocale) }

// BodyPath returns the default-locale body file path.
func (a *Article) BodyPath() string { return a.BodyTranslationPath(DefaultLocale) }

// ContentTranslationPath returns the content file path for the given locale.
func (a *Article) ContentTranslationPath(locale string) string {
	return joinPath(a.Section.Dir(), locale, a.Slug+contentExt)
}

// BodyTranslationPath returns the body file path for the given locale.
func (a *Article) BodyTranslationPath(locale string) string {
	return joinPath(a.Section.Dir(), locale, a.Slug+bodyExt)
}

// Content returns the JSON mapping stored in the content file.
func (a *Article) Content() map[string]any {
	return map[string]any{"name": a.Name}
}

// Payload serializes the article's default-locale content for remote
// record creation: the body is rendered to HTML with asset references
// rewritten to the CDN.
func (a *Article) Payload(imageCDN string) map[string]any {
	t := ArticleTranslation{Locale: DefaultLocale, Name: a.Name, Body: a.Body}
	return t.Payload(imageCDN)
}

// GroupTranslation is one locale's rendering of a category or section.
type GroupTranslation struct {
	Locale      string
	Name        string
	Description string
}

// Payload serializes the translation into the remote translation shape.
func (t GroupTranslation) Payload() map[string]any {
	return map[string]any{
		"title":  t.Name,
		"body":   t.Description,
		"locale": slug.ToRemoteLocale(t.Locale),
	}
}

// ArticleTranslation is one locale's rendering of an article.
type ArticleTranslation struct {
	Locale string
	Name   string
	Body   string
}

// Payload serializes the translation into the remote translation shape,
// rewriting $IMAGE_ROOT asset references to imageCDN and rendering the
// body to HTML.
func (t ArticleTranslation) Payload(imageCDN string) map[string]any {
	body := htmlmd.RewriteImageRoot(imageCDN, t.Body)
	return map[string]any{
		"title":  t.Name,
		"body":   htmlmd.Render(body),
		"locale": slug.ToRemoteLocale(t.Locale),
	}
}

func groupPayload(name, description string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": description,
		"locale":      slug.ToRemoteLocale(DefaultLocale),
	}
}
