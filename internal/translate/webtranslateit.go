package translate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/helpscribe/helpsync/internal/model"
	"github.com/helpscribe/helpsync/internal/remote"
	"github.com/helpscribe/helpsync/internal/slug"
)

// WebTranslateIt implements Client against the WebTranslateIt API: the
// project is addressed by its private API key, files are posted as
// multipart forms, and the file id comes back as the bare response body.
type WebTranslateIt struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *log.Logger
}

// NewWebTranslateIt returns a client for the project behind apiKey.
// If logger is nil, a default logger writing to stderr is used.
func NewWebTranslateIt(apiKey string, logger *log.Logger) *WebTranslateIt {
	return NewWebTranslateItWithBaseURL("https://webtranslateit.com/api/projects", apiKey, logger)
}

// NewWebTranslateItWithBaseURL returns a client against an explicit base
// URL. Tests point this at an httptest server.
func NewWebTranslateItWithBaseURL(baseURL, apiKey string, logger *log.Logger) *WebTranslateIt {
	if logger == nil {
		logger = log.New(os.Stderr, "[translate] ", log.LstdFlags)
	}
	return &WebTranslateIt{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http.DefaultClient,
		logger:  logger,
	}
}

func (c *WebTranslateIt) projectURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.apiKey, path)
}

// Upload implements Client.
func (c *WebTranslateIt) Upload(path, content string) (string, error) {
	return c.sendFile(http.MethodPost, c.projectURL("files"), path, content)
}

// Relocate implements Client.
func (c *WebTranslateIt) Relocate(fileID, newPath, content string) error {
	url := c.projectURL(fmt.Sprintf("files/%s/locales/%s", fileID, model.DefaultLocale))
	_, err := c.sendFile(http.MethodPut, url, newPath, content)
	return err
}

// Delete implements Client.
func (c *WebTranslateIt) Delete(fileID string) (bool, error) {
	url := c.projectURL("files/" + fileID)
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return false, &remote.TransportError{URL: url, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, &remote.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, fmt.Errorf("%w: %s", remote.ErrNotFound, url)
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Printf("request %s failed: status %d", url, resp.StatusCode)
		return false, &remote.TransportError{URL: url, StatusCode: resp.StatusCode, Body: string(raw)}
	}
}

// MasterFiles implements Client. Only default-locale master files are
// returned; translated copies share the master's id.
func (c *WebTranslateIt) MasterFiles() ([]File, error) {
	url := fmt.Sprintf("%s/%s.json", c.baseURL, c.apiKey)
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, &remote.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &remote.TransportError{URL: url, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var decoded struct {
		Project struct {
			ProjectFiles []struct {
				ID         any    `json:"id"`
				Name       string `json:"name"`
				LocaleCode string `json:"locale_code"`
			} `json:"project_files"`
		} `json:"project"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &remote.TransportError{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}

	var files []File
	for _, f := range decoded.Project.ProjectFiles {
		if slug.ToLocalLocale(f.LocaleCode) != model.DefaultLocale {
			continue
		}
		files = append(files, File{ID: model.IDString(f.ID), Path: f.Name})
	}
	return files, nil
}

// sendFile posts the content as a multipart form with the store's expected
// "file"/"name" path fields. The response body is the assigned file id.
func (c *WebTranslateIt) sendFile(method, url, path, content string) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("file", path); err != nil {
		return "", fmt.Errorf("build form for %s: %w", path, err)
	}
	if err := form.WriteField("name", path); err != nil {
		return "", fmt.Errorf("build form for %s: %w", path, err)
	}
	part, err := form.CreateFormFile("file", path)
	if err != nil {
		return "", fmt.Errorf("build form for %s: %w", path, err)
	}
	if _, err := io.WriteString(part, content); err != nil {
		return "", fmt.Errorf("build form for %s: %w", path, err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build form for %s: %w", path, err)
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return "", &remote.TransportError{URL: url, Err: err}
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &remote.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", remote.ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Printf("request %s failed: status %d", url, resp.StatusCode)
		return "", &remote.TransportError{URL: url, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &remote.TransportError{URL: url, Err: err}
	}
	return strings.TrimSpace(string(raw)), nil
}
