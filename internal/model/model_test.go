package model

import (
	"reflect"
	"testing"
)

func testTree() (*Category, *Section, *Article) {
	cat := NewCategory("Billing", "Money matters")
	sec := NewSection(cat, "Invoices", "All about invoices")
	cat.Sections = append(cat.Sections, sec)
	art := NewArticle(sec, "How to pay", "Pay here\n")
	sec.Articles = append(sec.Articles, art)
	return cat, sec, art
}

func TestPathDerivation(t *testing.T) {
	cat, sec, art := testTree()

	tests := []struct {
		got  string
		want string
	}{
		{cat.Dir(), "billing"},
		{cat.MetaPath(), "billing/.group.meta"},
		{cat.ContentPath(), "billing/__group__.json"},
		{cat.ContentTranslationPath("fr"), "billing/__group__.fr.json"},
		{cat.ContentTranslationPath(DefaultLocale), "billing/__group__.json"},
		{sec.Dir(), "billing/invoices"},
		{sec.ContentPath(), "billing/invoices/__group__.json"},
		{art.Dir(), "billing/invoices/en-US"},
		{art.ContentPath(), "billing/invoices/en-US/how-to-pay.json"},
		{art.MetaPath(), "billing/invoices/en-US/.article_how-to-pay.meta"},
		{art.BodyPath(), "billing/invoices/en-US/how-to-pay.mkdown"},
		{art.ContentTranslationPath("fr"), "billing/invoices/fr/how-to-pay.json"},
		{art.BodyTranslationPath("fr"), "billing/invoices/fr/how-to-pay.mkdown"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("path = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestGroupTranslationLocale(t *testing.T) {
	tests := []struct {
		file   string
		locale string
		ok     bool
	}{
		{"__group__.json", DefaultLocale, true},
		{"__group__.fr.json", "fr", true},
		{"__group__.pt-BR.json", "pt-BR", true},
		{"how-to-pay.json", "", false},
		{"__group__.toolonglocale.json", "", false},
		{".group.meta", "", false},
	}

	for _, tt := range tests {
		locale, ok := GroupTranslationLocale(tt.file)
		if ok != tt.ok || locale != tt.locale {
			t.Errorf("GroupTranslationLocale(%q) = %q, %v; want %q, %v",
				tt.file, locale, ok, tt.locale, tt.ok)
		}
	}
}

func TestArticleSlugFromFile(t *testing.T) {
	tests := []struct {
		file string
		slug string
		ok   bool
	}{
		{"how-to-pay.mkdown", "how-to-pay", true},
		{"how-to-pay.json", "", false},
		{"notes.fr.mkdown", "", false},
		{".article_x.meta", "", false},
	}

	for _, tt := range tests {
		got, ok := ArticleSlugFromFile(tt.file)
		if ok != tt.ok || got != tt.slug {
			t.Errorf("ArticleSlugFromFile(%q) = %q, %v; want %q, %v",
				tt.file, got, ok, tt.slug, tt.ok)
		}
	}
}

func TestMetaRemoteID(t *testing.T) {
	var m Meta
	if _, ok := m.RemoteID(); ok {
		t.Error("zero Meta should have no remote id")
	}

	m = MetaFromMap(map[string]any{"id": float64(1234), "name": "Billing"})
	id, ok := m.RemoteID()
	if !ok || id != "1234" {
		t.Errorf("RemoteID = %q, %v; want 1234, true", id, ok)
	}

	m.Clear()
	if !m.IsZero() {
		t.Error("Clear should reset to zero state")
	}
}

func TestMetaTranslateIDs(t *testing.T) {
	m := MetaFromMap(map[string]any{
		"id": float64(9),
		"webtranslateit_ids": map[string]any{
			"content": "111",
			"body":    float64(222),
		},
	})

	got := m.TranslateIDs()
	want := map[string]string{"content": "111", "body": "222"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TranslateIDs = %v, want %v", got, want)
	}

	m.SetTranslateID("content", "333")
	if m.TranslateIDs()["content"] != "333" {
		t.Errorf("SetTranslateID not reflected: %v", m.TranslateIDs())
	}
}

func TestSetRecordKeepsTranslateIDs(t *testing.T) {
	var m Meta
	m.SetTranslateID("content", "42")
	m.SetRecord(map[string]any{"id": float64(7), "name": "Billing"})

	if id, ok := m.RemoteID(); !ok || id != "7" {
		t.Errorf("RemoteID after SetRecord = %q, %v", id, ok)
	}
	if m.TranslateIDs()["content"] != "42" {
		t.Errorf("SetRecord dropped translation ids: %v", m.TranslateIDs())
	}
}

func TestPayloadShapes(t *testing.T) {
	cat, _, art := testTree()

	got := cat.Payload()
	if got["name"] != "Billing" || got["description"] != "Money matters" || got["locale"] != "en-us" {
		t.Errorf("category payload = %v", got)
	}

	tr := GroupTranslation{Locale: "pt-BR", Name: "Faturamento", Description: "d"}
	p := tr.Payload()
	if p["title"] != "Faturamento" || p["locale"] != "pt-br" || p["body"] != "d" {
		t.Errorf("group translation payload = %v", p)
	}

	ap := art.Payload("")
	if ap["title"] != "How to pay" || ap["locale"] != "en-us" {
		t.Errorf("article payload = %v", ap)
	}
	if ap["body"] != "<p>Pay here</p>" {
		t.Errorf("article body not rendered: %v", ap["body"])
	}
}

func TestArticlePayloadRewritesCDN(t *testing.T) {
	_, sec, _ := testTree()
	art := NewArticle(sec, "Pics", "![x]($IMAGE_ROOT/a.png)\n")

	p := art.Payload("https://cdn.test")
	body, _ := p["body"].(string)
	if body != `<p><img src="https://cdn.test/a.png" alt="x"></p>` {
		t.Errorf("cdn rewrite missing: %q", body)
	}
}

func TestKindDispatch(t *testing.T) {
	cat, sec, art := testTree()
	entities := []Entity{cat, sec, art}
	kinds := []Kind{KindCategory, KindSection, KindArticle}
	collections := []string{"categories", "sections", "articles"}

	for i, e := range entities {
		if e.Kind() != kinds[i] {
			t.Errorf("Kind() = %v, want %v", e.Kind(), kinds[i])
		}
		if e.Kind().Collection() != collections[i] {
			t.Errorf("Collection() = %q, want %q", e.Kind().Collection(), collections[i])
		}
	}
}
