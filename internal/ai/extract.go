package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const maxUploadBytes = 32 << 20

// Extracted is the normalized text payload pulled out of a request, together
// with a human-readable description of where it came from.
type Extracted struct {
	Text   string
	Source string
}

// ExtractRequestText pulls the task's input text out of an incoming request.
// JSON bodies must carry a non-blank jsonField; multipart bodies must carry
// exactly one .txt or .pdf upload under fileField. Any other content type is
// rejected with an unsupported-type input error.
func ExtractRequestText(r *http.Request, jsonField, fileField string) (*Extracted, error) {
	extracted, _, err := ExtractRequestPayload(r, jsonField, fileField)
	return extracted, err
}

// ExtractRequestPayload is ExtractRequestText plus the request's sibling
// fields, for endpoints whose text input travels with parameters like
// subject or difficulty. The fields map holds the decoded JSON body or the
// multipart form values.
func ExtractRequestPayload(r *http.Request, jsonField, fileField string) (*Extracted, map[string]interface{}, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch {
	case mediaType == "application/json":
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, nil, &InputError{Message: "Invalid JSON payload"}
		}
		text, _ := body[jsonField].(string)
		if text == "" {
			return nil, nil, &InputError{Message: fmt.Sprintf("Missing '%s' field in JSON payload", jsonField)}
		}
		if strings.TrimSpace(text) == "" {
			return nil, nil, &InputError{Message: "Could not get any text content from pasted text."}
		}
		return &Extracted{Text: text, Source: "pasted text"}, body, nil

	case mediaType == "multipart/form-data":
		text, filename, err := ExtractUploadedFile(r, fileField)
		if err != nil {
			return nil, nil, err
		}
		source := fmt.Sprintf("file '%s'", filename)
		if strings.TrimSpace(text) == "" {
			return nil, nil, &InputError{Message: fmt.Sprintf("Could not get any text content from %s.", source)}
		}

		fields := make(map[string]interface{})
		if r.MultipartForm != nil {
			for key, values := range r.MultipartForm.Value {
				if len(values) > 0 {
					fields[key] = values[0]
				}
			}
		}
		return &Extracted{Text: text, Source: source}, fields, nil

	default:
		return nil, nil, &InputError{
			Message:         fmt.Sprintf("Unsupported request type: %s", r.Header.Get("Content-Type")),
			UnsupportedType: true,
		}
	}
}

// ExtractUploadedFile reads one uploaded .txt or .pdf file from a multipart
// form and returns its extracted text plus the original filename.
func ExtractUploadedFile(r *http.Request, field string) (string, string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", "", &InputError{Message: "Invalid multipart form data"}
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", &InputError{Message: fmt.Sprintf("No '%s' part in the request", field)}
	}
	defer file.Close()

	if header.Filename == "" {
		return "", "", &InputError{Message: "No file selected"}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".txt" && ext != ".pdf" {
		return "", "", &InputError{
			Message: fmt.Sprintf("Invalid file type: %s. Only .txt or .pdf allowed.", header.Filename),
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", &InputError{Message: fmt.Sprintf("Could not read uploaded file '%s'", header.Filename)}
	}

	switch ext {
	case ".txt":
		return DecodeTextFile(data), header.Filename, nil
	default:
		text, err := ExtractPDFText(data)
		if err != nil {
			return "", "", &InputError{Message: fmt.Sprintf("Could not process PDF file '%s'", header.Filename)}
		}
		return text, header.Filename, nil
	}
}

// DecodeTextFile decodes .txt bytes as UTF-8, falling back to Latin-1 when
// the bytes are not valid UTF-8. The fallback never fails: every byte maps
// onto a Latin-1 code point.
func DecodeTextFile(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// ExtractPDFText extracts plain text from a PDF, page by page. Pages that
// cannot be extracted contribute an empty string instead of aborting the
// whole document. Encrypted documents are opened with an empty password;
// extraction proceeds best-effort either way.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		reader, err = pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), func() string { return "" })
		if err != nil {
			return "", fmt.Errorf("failed to open pdf: %w", err)
		}
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if pageIndex > 1 {
			b.WriteString("\n")
		}

		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
	}

	return b.String(), nil
}
