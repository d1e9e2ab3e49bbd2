package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// File is an attachment forwarded as a multipart part.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// PostMultipart sends fields and an optional file as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *File, out any, opts ...RequestOption) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("apiclient: write field %s: %w", k, err)
		}
	}
	if file != nil && file.Content != nil {
		field := file.Field
		if field == "" {
			field = "file"
		}
		part, err := w.CreateFormFile(field, file.Name)
		if err != nil {
			return fmt.Errorf("apiclient: create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("apiclient: copy file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("apiclient: close multipart: %w", err)
	}

	return c.send(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), out, opts...)
}
