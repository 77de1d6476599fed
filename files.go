package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/openspeleo/speleodb-go/multipart"
	"github.com/openspeleo/speleodb-go/routes"
)

// TMLContentType is the media type Ariane TML archives are uploaded with.
const TMLContentType = "application/octet-stream"

// UploadRequest describes one TML revision upload: a commit message plus
// the survey file content.
type UploadRequest struct {
	// Message is the revision message stored alongside the upload.
	Message string
	// Source supplies the file bytes; use multipart.SourcePath or
	// multipart.SourceBytes.
	Source multipart.FileSource
	// ContentType defaults to TMLContentType when empty.
	ContentType string
	// Filename is the name reported to the server.
	Filename string
}

// FileRevision is the server's record of an accepted upload.
type FileRevision struct {
	Hexsha  string `json:"hexsha"`
	Message string `json:"message"`
}

// FilesClient uploads and downloads Ariane TML survey files.
type FilesClient struct {
	client *Client
}

func (c *FilesClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: files client not initialized")
	}
	return nil
}

// UploadTML encodes the revision as a multipart/form-data body and sends
// it. The caller should hold the project's edit mutex first.
func (c *FilesClient) UploadTML(ctx context.Context, projectID uuid.UUID, req UploadRequest) (FileRevision, error) {
	if err := c.ensureInitialized(); err != nil {
		return FileRevision{}, err
	}
	if req.Source == nil {
		return FileRevision{}, fmt.Errorf("sdk: upload source is required")
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = TMLContentType
	}

	body, err := multipart.NewBuilder().
		AddText("message", req.Message).
		AddFile("artifact", req.Source, contentType, req.Filename).
		Build()
	if err != nil {
		return FileRevision{}, fmt.Errorf("sdk: encode upload body: %w", err)
	}

	path := fmt.Sprintf(routes.ProjectUploadTML, projectID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.client.buildURL(path), bytes.NewReader(body.Bytes()))
	if err != nil {
		return FileRevision{}, err
	}
	httpReq.Header.Set("Content-Type", body.ContentType())
	httpReq.Header.Set("Accept", "application/json")
	httpReq.ContentLength = int64(body.Len())
	injectTraceparent(ctx, httpReq)

	resp, err := c.client.send(httpReq)
	if err != nil {
		return FileRevision{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Data FileRevision `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return FileRevision{}, fmt.Errorf("sdk: decode upload response: %w", err)
	}
	return payload.Data, nil
}

// DownloadTML fetches the project's current TML revision.
func (c *FilesClient) DownloadTML(ctx context.Context, projectID uuid.UUID) ([]byte, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	path := fmt.Sprintf(routes.ProjectDownloadTML, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.client.buildURL(path), nil)
	if err != nil {
		return nil, err
	}
	injectTraceparent(ctx, req)

	resp, err := c.client.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sdk: read download body: %w", err)
	}
	return data, nil
}
