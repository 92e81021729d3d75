package ai

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/generate", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestExtractRequestText_JSONBody(t *testing.T) {
	extracted, err := ExtractRequestText(jsonRequest(`{"text": "  Newton's laws of motion  "}`), "text", "file")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	// The text is returned exactly as sent, with no trimming.
	if extracted.Text != "  Newton's laws of motion  " {
		t.Errorf("Expected untrimmed text, got %q", extracted.Text)
	}
	if extracted.Source != "pasted text" {
		t.Errorf("Expected source 'pasted text', got %q", extracted.Source)
	}
}

func TestExtractRequestText_JSONErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{"topic": "Gravity"}`},
		{"empty field", `{"text": ""}`},
		{"whitespace only", `{"text": "   "}`},
		{"invalid json", `{"text": `},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractRequestText(jsonRequest(tc.body), "text", "file")
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if _, ok := err.(*InputError); !ok {
				t.Errorf("Expected *InputError, got %T", err)
			}
		})
	}
}

func TestExtractRequestText_UnsupportedContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("text=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err := ExtractRequestText(req, "text", "file")
	inputErr, ok := err.(*InputError)
	if !ok {
		t.Fatalf("Expected *InputError, got %T", err)
	}
	if !inputErr.UnsupportedType {
		t.Error("Expected UnsupportedType to be set")
	}
	if !strings.Contains(inputErr.Message, "Unsupported request type") {
		t.Errorf("Expected unsupported-type message, got %q", inputErr.Message)
	}
}

func TestExtractRequestText_TxtUpload(t *testing.T) {
	req := multipartRequest(t, "file", "notes.txt", []byte("Mitochondria are the powerhouse of the cell."))

	extracted, err := ExtractRequestText(req, "text", "file")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if extracted.Text != "Mitochondria are the powerhouse of the cell." {
		t.Errorf("Unexpected text: %q", extracted.Text)
	}
	if extracted.Source != "file 'notes.txt'" {
		t.Errorf("Expected source to name the file, got %q", extracted.Source)
	}
}

func TestExtractUploadedFile_InvalidExtension(t *testing.T) {
	req := multipartRequest(t, "file", "slides.docx", []byte("content"))

	_, _, err := ExtractUploadedFile(req, "file")
	if err == nil {
		t.Fatal("Expected an error for .docx upload")
	}
	if !strings.Contains(err.Error(), "Only .txt or .pdf allowed") {
		t.Errorf("Expected allow-list message, got %q", err.Error())
	}
}

func TestExtractUploadedFile_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("text", "no file here")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/generate", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, _, err := ExtractUploadedFile(req, "file")
	if err == nil {
		t.Fatal("Expected an error when the file part is absent")
	}
}

func TestDecodeTextFile_UTF8(t *testing.T) {
	text := DecodeTextFile([]byte("Écosystème — biology"))
	if text != "Écosystème — biology" {
		t.Errorf("Expected UTF-8 passthrough, got %q", text)
	}
}

func TestDecodeTextFile_Latin1Fallback(t *testing.T) {
	// 0xE9 is 'é' in Latin-1 but an invalid UTF-8 sequence on its own.
	text := DecodeTextFile([]byte{'c', 'a', 'f', 0xE9})
	if text != "café" {
		t.Errorf("Expected Latin-1 fallback to yield 'café', got %q", text)
	}
}

func TestDecodeTextFile_NeverFails(t *testing.T) {
	// Arbitrary bytes always decode: every byte maps onto a Latin-1 rune.
	data := []byte{0xFF, 0xFE, 0x00, 0x80, 0xC3}
	text := DecodeTextFile(data)
	if len([]rune(text)) != len(data) {
		t.Errorf("Expected %d runes, got %d", len(data), len([]rune(text)))
	}
}
