// Package api is the HTTP client for the tracker backend. The backend
// owns storage, search, and pagination; this client passes identifiers
// and parameters through and decodes the JSON views it serves to
// non-browser clients.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds listing and mutation calls. Deletes are
// exempt; see DeleteNote.
const DefaultTimeout = 10 * time.Second

// Client talks to one tracker backend.
type Client struct {
	base string
	http *http.Client
	// deletes wait without bound: the delete flow reloads regardless
	// of outcome and imposes no timeout on the request itself.
	deleteHTTP *http.Client
	log        *slog.Logger
}

// NewClient creates a client for the backend at baseURL. timeout <= 0
// falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		base:       strings.TrimSuffix(baseURL, "/"),
		http:       &http.Client{Timeout: timeout},
		deleteHTTP: &http.Client{},
		log:        log,
	}
}

// BaseURL returns the backend base URL the client targets.
func (c *Client) BaseURL() string { return c.base }

// ListMaterials fetches one of the backend's material listings:
// queue, reading, completed, or all.
func (c *Client) ListMaterials(ctx context.Context, status string) ([]Material, error) {
	var out struct {
		Materials []Material `json:"materials"`
	}
	if err := c.getJSON(ctx, "/materials/"+status, nil, &out); err != nil {
		return nil, fmt.Errorf("list %s materials: %w", status, err)
	}
	return out.Materials, nil
}

// MaterialForEdit fetches a material's editable fields.
func (c *Client) MaterialForEdit(ctx context.Context, materialID string) (Material, error) {
	q := url.Values{"material_id": {materialID}}
	var out struct {
		Material Material `json:"material"`
	}
	// The backend exposes this view with a trailing slash.
	if err := c.getJSON(ctx, "/materials/update-view/", q, &out); err != nil {
		return Material{}, fmt.Errorf("material for edit: %w", err)
	}
	return out.Material, nil
}

// UpdateMaterial submits edited material fields.
func (c *Client) UpdateMaterial(ctx context.Context, m Material) error {
	form := url.Values{
		"material_id":   {m.ID},
		"title":         {m.Title},
		"authors":       {m.Authors},
		"pages":         {strconv.Itoa(m.Pages)},
		"material_type": {m.Type},
		"tags":          {m.Tags},
		"link":          {m.Link},
		"is_outlined":   {strconv.FormatBool(m.IsOutlined)},
	}
	if err := c.postForm(ctx, "/materials/update", form); err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// StartMaterial moves a queued material to reading.
func (c *Client) StartMaterial(ctx context.Context, materialID string) error {
	if err := c.postForm(ctx, "/materials/start/"+materialID, nil); err != nil {
		return fmt.Errorf("start material: %w", err)
	}
	return nil
}

// CompleteMaterial moves a reading material to completed.
func (c *Client) CompleteMaterial(ctx context.Context, materialID string) error {
	if err := c.postForm(ctx, "/materials/complete/"+materialID, nil); err != nil {
		return fmt.Errorf("complete material: %w", err)
	}
	return nil
}

// ListNotesQuery selects a notes listing. Zero values are omitted from
// the request: no material filter, first page, no search.
type ListNotesQuery struct {
	MaterialID string
	Page       int
	Search     string
}

// ListNotes fetches a page of notes.
func (c *Client) ListNotes(ctx context.Context, query ListNotesQuery) (NotesPage, error) {
	q := url.Values{}
	if query.MaterialID != "" {
		q.Set("material_id", query.MaterialID)
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.Search != "" {
		q.Set("q", query.Search)
	}
	var out NotesPage
	if err := c.getJSON(ctx, "/notes", q, &out); err != nil {
		return NotesPage{}, fmt.Errorf("list notes: %w", err)
	}
	return out, nil
}

// GetNote fetches a note's detail view.
func (c *Client) GetNote(ctx context.Context, noteID string) (Note, error) {
	q := url.Values{"note_id": {noteID}}
	var out struct {
		Note Note `json:"note"`
	}
	if err := c.getJSON(ctx, "/notes/note", q, &out); err != nil {
		return Note{}, fmt.Errorf("get note: %w", err)
	}
	return out.Note, nil
}

// NoteForEdit fetches a note's editable fields.
func (c *Client) NoteForEdit(ctx context.Context, noteID string) (Note, error) {
	q := url.Values{"note_id": {noteID}}
	var out struct {
		Note Note `json:"note"`
	}
	if err := c.getJSON(ctx, "/notes/update-view", q, &out); err != nil {
		return Note{}, fmt.Errorf("note for edit: %w", err)
	}
	return out.Note, nil
}

// AddNote creates a note.
func (c *Client) AddNote(ctx context.Context, n NewNote) error {
	form := url.Values{
		"material_id": {n.MaterialID},
		"content":     {n.Content},
		"chapter":     {strconv.Itoa(n.Chapter)},
		"page":        {strconv.Itoa(n.Page)},
	}
	if err := c.postForm(ctx, "/notes/add", form); err != nil {
		return fmt.Errorf("add note: %w", err)
	}
	return nil
}

// UpdateNote submits edited note fields.
func (c *Client) UpdateNote(ctx context.Context, n Note) error {
	form := url.Values{
		"note_id":     {n.ID},
		"material_id": {n.MaterialID},
		"content":     {n.Content},
		"chapter":     {strconv.Itoa(n.Chapter)},
		"page":        {strconv.Itoa(n.Page)},
	}
	if err := c.postForm(ctx, "/notes/update", form); err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

// DeleteNote issues the fire-and-forget delete. The response body and
// status are read and discarded; only a transport-level failure is
// reported, and callers reload their listing regardless of the
// returned error. No timeout and no cancellation: a hung request
// stalls the delete flow, nothing else.
func (c *Client) DeleteNote(noteID string) error {
	body, err := json.Marshal(map[string]string{"note_id": noteID})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	req, err := http.NewRequest(http.MethodDelete, c.base+"/notes/delete", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.log.Debug("delete note", "note_id", noteID, "request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.deleteHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	c.log.Debug("backend request", "method", "GET", "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// postForm performs a form-encoded POST and discards the response
// body. The backend answers its form posts with redirects; any 2xx or
// 3xx counts as success.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) error {
	var body io.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	c.log.Debug("backend request", "method", "POST", "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("backend returned %s", resp.Status)
	}
	return nil
}
