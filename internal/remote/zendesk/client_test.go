package zendesk

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/helpscribe/helpsync/internal/remote"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithBaseURL(srv.URL, "user@test", "secret", nil)
}

func TestFetchCollection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en-us/categories.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "user@test" || pass != "secret" {
			t.Error("basic auth not forwarded")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"categories": []any{
				map[string]any{"id": float64(10), "name": "Billing"},
			},
		})
	})

	records, err := c.FetchCollection("categories", nil)
	if err != nil {
		t.Fatalf("FetchCollection: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Billing" {
		t.Errorf("records = %v", records)
	}
}

func TestFetchCollectionScopedUnderParent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en-us/categories/10/sections.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"sections": []any{}})
	})

	if _, err := c.FetchCollection("sections", &remote.ParentRef{Collection: "categories", ID: "10"}); err != nil {
		t.Fatalf("FetchCollection: %v", err)
	}
}

func TestFetchRecordNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.FetchRecord("articles", "30")
	if !errors.Is(err, remote.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTransportErrorCarriesStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.FetchRecord("articles", "30")
	var te *remote.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d", te.StatusCode)
	}
}

func TestCreateRecordWrapsPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/en-us/categories/10/sections.json" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		payload, ok := body["section"].(map[string]any)
		if !ok || payload["name"] != "Invoices" {
			t.Errorf("payload not wrapped under singular key: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"section": map[string]any{"id": float64(20), "name": "Invoices"},
		})
	})

	rec, err := c.CreateRecord("sections",
		&remote.ParentRef{Collection: "categories", ID: "10"},
		map[string]any{"name": "Invoices"})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if rec["id"] != float64(20) {
		t.Errorf("record = %v", rec)
	}
}

func TestTranslationEndpointsSkipLocaleScope(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"locales":     []any{"fr", "de"},
			"translation": map[string]any{"title": "t", "body": "b"},
		})
	})

	locales, err := c.FetchMissingLocales("articles", "30")
	if err != nil {
		t.Fatalf("FetchMissingLocales: %v", err)
	}
	if len(locales) != 2 || locales[0] != "fr" {
		t.Errorf("locales = %v", locales)
	}

	if _, err := c.FetchTranslation("articles", "30", "fr"); err != nil {
		t.Fatalf("FetchTranslation: %v", err)
	}
	if err := c.CreateTranslation("articles", "30", map[string]any{"title": "t"}); err != nil {
		t.Fatalf("CreateTranslation: %v", err)
	}
	if err := c.UpdateTranslation("articles", "30", "fr", map[string]any{"title": "t"}); err != nil {
		t.Fatalf("UpdateTranslation: %v", err)
	}

	want := []string{
		"/articles/30/translations/missing.json",
		"/articles/30/translations/fr.json",
		"/articles/30/translations.json",
		"/articles/30/translations/fr.json",
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("path[%d] = %s, want %s", i, paths[i], p)
		}
	}
}

func TestDeleteRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/en-us/articles/30.json" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	ok, err := c.DeleteRecord("articles", "30")
	if err != nil || !ok {
		t.Errorf("DeleteRecord = %v, %v", ok, err)
	}
}

func TestDeleteRecordFailureSurfaces(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	ok, err := c.DeleteRecord("articles", "30")
	var te *remote.TransportError
	if ok || !errors.As(err, &te) {
		t.Fatalf("DeleteRecord = %v, %v; want TransportError", ok, err)
	}

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	ok, err = c.DeleteRecord("articles", "30")
	if ok || !errors.Is(err, remote.ErrNotFound) {
		t.Errorf("DeleteRecord on missing record = %v, %v; want ErrNotFound", ok, err)
	}
}
