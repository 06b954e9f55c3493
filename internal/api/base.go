package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/carenest/carenest-go/internal/types"
)

const contentTypeJSON = "application/json"

// do performs a JSON request and decodes the response into out (when out is
// non-nil). Non-2xx responses come back as a *types.APIError carrying the
// status and the parsed error body; network failures come back as transport
// errors on the same path. No retries happen here: retrying is the caller's
// decision.
func do(ctx context.Context, httpClient *http.Client, method, url string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	return send(httpClient, req, out)
}

// doMultipart posts text fields plus an optional binary attachment as
// multipart/form-data.
func doMultipart(ctx context.Context, httpClient *http.Client, method, url string, fields map[string]string, fileField, fileName string, file []byte, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if len(file) > 0 {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			return err
		}
		if _, err := part.Write(file); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return send(httpClient, req, out)
}

func send(httpClient *http.Client, req *http.Request, out any) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return types.NewTransportError(req.Method+" "+req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.NewTransportError(req.Method+" "+req.URL.Path, err)
	}

	if resp.StatusCode >= 400 {
		return types.ParseAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}
