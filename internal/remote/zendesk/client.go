// Package zendesk implements the remote.Client contract against a
// Zendesk-style help-center API: basic auth, JSON bodies, records wrapped
// in singular keys, and 404 as a first-class "absent" signal.
package zendesk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/remote"
	"github.com/helpscribe/helpsync/internal/slug"
)

// recordKeys maps collection names to the singular JSON key the API wraps
// individual records in.
var recordKeys = map[string]string{
	"categories": "category",
	"sections":   "section",
	"articles":   "article",
}

// Client talks to one help-center instance. Content endpoints are scoped
// under the default locale; translation endpoints are not.
type Client struct {
	baseURL  string
	user     string
	password string
	http     *http.Client
	logger   *log.Logger
}

// New returns a client for the given company subdomain. If logger is nil,
// a default logger writing to stderr is used.
func New(company, user, password string, logger *log.Logger) *Client {
	return NewWithBaseURL(
		fmt.Sprintf("https://%s.zendesk.com/api/v2/help_center", company),
		user, password, logger,
	)
}

// NewWithBaseURL returns a client against an explicit base URL. Tests
// point this at an httptest server.
func NewWithBaseURL(baseURL, user, password string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(os.Stderr, "[zendesk] ", log.LstdFlags)
	}
	return &Client{
		baseURL:  baseURL,
		user:     user,
		password: password,
		http:     http.DefaultClient,
		logger:   logger,
	}
}

// contentURL builds a URL under the default-locale content scope.
func (c *Client) contentURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, slug.ToRemoteLocale(model.DefaultLocale), path)
}

// translationURL builds a URL outside the locale scope.
func (c *Client) translationURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, path)
}

// FetchCollection implements remote.Client.
func (c *Client) FetchCollection(collection string, parent *remote.ParentRef) ([]remote.Record, error) {
	var path string
	if parent != nil {
		path = fmt.Sprintf("%s/%s/%s.json?per_page=100", parent.Collection, parent.ID, collection)
	} else {
		path = fmt.Sprintf("%s.json?per_page=100", collection)
	}
	body, err := c.do(http.MethodGet, c.contentURL(path), nil)
	if err != nil {
		return nil, err
	}
	raw, _ := body[collection].([]any)
	records := make([]remote.Record, 0, len(raw))
	for _, r := range raw {
		if rec, ok := r.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// FetchRecord implements remote.Client.
func (c *Client) FetchRecord(collection, id string) (remote.Record, error) {
	body, err := c.do(http.MethodGet, c.contentURL(fmt.Sprintf("%s/%s.json", collection, id)), nil)
	if err != nil {
		return nil, err
	}
	rec, _ := body[recordKeys[collection]].(map[string]any)
	return rec, nil
}

// CreateRecord implements remote.Client.
func (c *Client) CreateRecord(collection string, parent *remote.ParentRef, payload map[string]any) (remote.Record, error) {
	var path string
	if parent != nil {
		path = fmt.Sprintf("%s/%s/%s.json", parent.Collection, parent.ID, collection)
	} else {
		path = fmt.Sprintf("%s.json", collection)
	}
	key := recordKeys[collection]
	body, err := c.do(http.MethodPost, c.contentURL(path), map[string]any{key: payload})
	if err != nil {
		return nil, err
	}
	rec, _ := body[key].(map[string]any)
	return rec, nil
}

// UpdateRecord implements remote.Client.
func (c *Client) UpdateRecord(collection, id string, payload map[string]any) (remote.Record, error) {
	key := recordKeys[collection]
	url := c.contentURL(fmt.Sprintf("%s/%s.json", collection, id))
	body, err := c.do(http.MethodPut, url, map[string]any{key: payload})
	if err != nil {
		return nil, err
	}
	rec, _ := body[key].(map[string]any)
	return rec, nil
}

// DeleteRecord implements remote.Client.
func (c *Client) DeleteRecord(collection, id string) (bool, error) {
	return c.DeleteByURL(c.contentURL(fmt.Sprintf("%s/%s.json", collection, id)))
}

// DeleteByURL implements remote.Client.
func (c *Client) DeleteByURL(url string) (bool, error) {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return false, &remote.TransportError{URL: url, Err: err}
	}
	req.SetBasicAuth(c.user, c.password)
	resp, err := c.http.Do(req)
	if err != nil {
		return false, &remote.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, fmt.Errorf("%w: %s", remote.ErrNotFound, url)
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Printf("request %s failed: status %d", url, resp.StatusCode)
		return false, &remote.TransportError{URL: url, StatusCode: resp.StatusCode, Body: string(raw)}
	}
}

// FetchMissingLocales implements remote.Client.
func (c *Client) FetchMissingLocales(collection, id string) ([]string, error) {
	url := c.translationURL(fmt.Sprintf("%s/%s/translations/missing.json", collection, id))
	body, err := c.do(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	raw, _ := body["locales"].([]any)
	locales := make([]string, 0, len(raw))
	for _, l := range raw {
		if s, ok := l.(string); ok {
			locales = append(locales, s)
		}
	}
	return locales, nil
}

// FetchTranslation implements remote.Client.
func (c *Client) FetchTranslation(collection, id, locale string) (map[string]any, error) {
	url := c.translationURL(fmt.Sprintf("%s/%s/translations/%s.json", collection, id, locale))
	body, err := c.do(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	tr, _ := body["translation"].(map[string]any)
	return tr, nil
}

// CreateTranslation implements remote.Client.
func (c *Client) CreateTranslation(collection, id string, payload map[string]any) error {
	url := c.translationURL(fmt.Sprintf("%s/%s/translations.json", collection, id))
	_, err := c.do(http.MethodPost, url, map[string]any{"translation": payload})
	return err
}

// UpdateTranslation implements remote.Client.
func (c *Client) UpdateTranslation(collection, id, locale string, payload map[string]any) error {
	url := c.translationURL(fmt.Sprintf("%s/%s/translations/%s.json", collection, id, locale))
	_, err := c.do(http.MethodPut, url, map[string]any{"translation": payload})
	return err
}

// do issues one request and decodes the JSON response. A 404 maps to
// remote.ErrNotFound; any other non-2xx maps to a TransportError.
func (c *Client) do(method, url string, payload map[string]any) (map[string]any, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request for %s: %w", url, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, &remote.TransportError{URL: url, Err: err}
	}
	req.SetBasicAuth(c.user, c.password)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &remote.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", remote.ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Printf("request %s failed: status %d", url, resp.StatusCode)
		return nil, &remote.TransportError{URL: url, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &remote.TransportError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	return decoded, nil
}
