// Package registry maintains the client's view of the remote document list
// and the persisted selected-document projection.
package registry

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/docchat/docchat-cli/internal/api"
	"github.com/docchat/docchat-cli/internal/errs"
	"github.com/docchat/docchat-cli/internal/model"
	"github.com/docchat/docchat-cli/internal/session"
)

// Client fetches and caches the user's documents and owns the selected
// document value. List and Upload may run concurrently; the cache always
// reflects the most recently issued successful fetch.
type Client struct {
	gw    *api.Gateway
	store *session.Store
	log   *zap.Logger

	mu   sync.Mutex
	gen  uint64
	docs []model.Document
}

// New constructs a registry client over the gateway and session store.
func New(gw *api.Gateway, store *session.Store, log *zap.Logger) *Client {
	return &Client{gw: gw, store: store, log: log}
}

// List fetches the document list in server order. On failure the previously
// cached list is left untouched and the error is reported. A completion
// belonging to a List issued before the most recent one is discarded, so
// interleaved fetches cannot roll the cache back to older data.
func (c *Client) List(ctx context.Context) ([]model.Document, error) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	var docs []model.Document
	if err := c.gw.Do(ctx, http.MethodGet, "/api/documents/", nil, &docs); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.docs = docs
	}
	return append([]model.Document(nil), c.docs...), nil
}

// Cached returns the last successfully fetched list without a network call.
func (c *Client) Cached() []model.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Document(nil), c.docs...)
}

// UploadResult is the server's acknowledgement of a stored document.
type UploadResult struct {
	Msg string `json:"msg"`
	model.Document
}

// Upload submits a PDF. Non-PDF paths fail fast before any file or network
// I/O. title defaults to the file's base name without extension. On success
// the list is refreshed so the cache reflects the server's state; there is
// no optimistic local insertion.
func (c *Client) Upload(ctx context.Context, path, title, description string) (UploadResult, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return UploadResult{}, errs.ErrInvalidFileType
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return UploadResult{}, err
	}
	if _, err := part.Write(data); err != nil {
		return UploadResult{}, err
	}
	if err := w.WriteField("title", title); err != nil {
		return UploadResult{}, err
	}
	if err := w.WriteField("description", description); err != nil {
		return UploadResult{}, err
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, err
	}

	var res UploadResult
	if err := c.gw.DoMultipart(ctx, "/api/upload-document/", &buf, w.FormDataContentType(), &res); err != nil {
		return UploadResult{}, err
	}
	if res.Msg == "" {
		res.Msg = "PDF uploaded successfully!"
	}

	if _, err := c.List(ctx); err != nil {
		// cache refresh is best-effort; the upload itself succeeded
		c.log.Warn("list refresh after upload", zap.Error(err))
	}
	return res, nil
}

// Select persists doc as the current selection for the chat page.
func (c *Client) Select(doc model.Document) error {
	return c.store.SaveSelection(doc)
}

// CurrentSelection returns the persisted selection. It is not revalidated
// against the live list; a document deleted server-side still surfaces here
// until the next login cycle clears it.
func (c *Client) CurrentSelection() (model.Document, bool) {
	return c.store.Selection()
}
