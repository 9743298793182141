package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"profilecut/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(config.Config{HTTPAddr: ":0", MaxUploadMB: 1, PreviewRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	body := bytes.NewBuffer(nil)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestIndexPage(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Batch") {
		t.Fatal("index page missing title")
	}
}

func TestConvertUpload(t *testing.T) {
	csv := "Group;Material;Length;Qty;ItemID\n1;ABC;100;2;X1\n2;DEF;200;1;X2\n"
	rec := httptest.NewRecorder()
	testServer(t).Router().ServeHTTP(rec, uploadRequest(t, "batch.csv", csv))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Pages generated: 2") {
		t.Fatalf("missing success banner:\n%s", page)
	}
	if !strings.Contains(page, "data:text/csv;base64,") {
		t.Fatal("missing download link")
	}
	if !strings.Contains(page, "batch_profile.csv") {
		t.Fatal("missing download filename")
	}
}

func TestConvertUploadMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).Router().ServeHTTP(rec, uploadRequest(t, "batch.xlsx", "not a workbook"))

	page := rec.Body.String()
	if !strings.Contains(page, "Error:") {
		t.Fatalf("missing error banner:\n%s", page)
	}
	if strings.Contains(page, "data:text/csv;base64,") {
		t.Fatal("error page must not offer a download")
	}
}

func TestConvertUploadLegacyXLS(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).Router().ServeHTTP(rec, uploadRequest(t, "batch.xls", "whatever"))

	page := rec.Body.String()
	if !strings.Contains(page, "legacy .xls workbooks are not supported") {
		t.Fatalf("missing .xls error banner:\n%s", page)
	}
	if strings.Contains(page, "data:text/csv;base64,") {
		t.Fatal("error page must not offer a download")
	}
}

func TestConvertUploadMissingFile(t *testing.T) {
	body := bytes.NewBuffer(nil)
	mw := multipart.NewWriter(body)
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	testServer(t).Router().ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), "no file in request") {
		t.Fatal("missing error banner")
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}
