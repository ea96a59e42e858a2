package httpkit

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartBody describes a multipart/form-data request body. Pass it as
// the body of a request (or to PostMultipart) and the encoding and
// Content-Type boundary are handled automatically.
type MultipartBody struct {
	// Fields are plain key-value form fields.
	Fields map[string]string
	// Files are file-upload parts.
	Files []FileField
}

// FileField is one file part of a multipart body.
type FileField struct {
	// FieldName is the form field name.
	FieldName string
	// FileName is the name reported to the server.
	FileName string
	// ContentType is the part's MIME type; empty means
	// application/octet-stream.
	ContentType string
	// Data is the file content. Reader takes precedence when both are set.
	Data []byte
	// Reader supplies the content for large files.
	Reader io.Reader
}

// encode renders the multipart body and returns it with the boundary-bearing
// content type.
func (m *MultipartBody) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range m.Fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for _, f := range m.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+quoteEscape(f.FieldName)+`"; filename="`+quoteEscape(f.FileName)+`"`)
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.FieldName, err)
		}
		var src io.Reader = bytes.NewReader(f.Data)
		if f.Reader != nil {
			src = f.Reader
		}
		if _, err := io.Copy(part, src); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.FieldName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// quoteEscape escapes quotes and backslashes for use inside a quoted
// Content-Disposition parameter.
func quoteEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
