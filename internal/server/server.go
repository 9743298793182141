package server

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"profilecut/internal"
	"profilecut/internal/config"
	"profilecut/internal/pipeline"
)

//go:embed templates/index.html
var templateFiles embed.FS

type Server struct {
	cfg       config.Config
	converter *pipeline.Converter
	templates *template.Template
}

func New(cfg config.Config) (*Server, error) {
	tpl, err := template.ParseFS(templateFiles, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		cfg:       cfg,
		converter: pipeline.NewConverter(cfg),
		templates: tpl,
	}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Post("/convert", s.handleConvert)
	r.Get("/healthz", s.handleHealth)
	return r
}

func (s *Server) ListenAndServe() error {
	log.Printf("profilecut server listening on %s", s.cfg.HTTPAddr)
	return http.ListenAndServe(s.cfg.HTTPAddr, s.Router())
}

type pageData struct {
	Error        string
	Converted    bool
	NumPages     int
	MaxItems     int
	Filename     string
	DownloadName string
	DownloadHref template.URL
	Preview      internal.Table
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleConvert runs one upload through parse -> transform -> serialize and
// renders the result inline. The converted bytes travel back as a data URI,
// so nothing is kept server-side between requests.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.render(w, pageData{Error: fmt.Sprintf("upload failed: %v", err)})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.render(w, pageData{Error: "upload failed: no file in request"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		s.render(w, pageData{Error: fmt.Sprintf("upload failed: %v", err)})
		return
	}

	format, err := formatForFilename(header.Filename)
	if err != nil {
		s.render(w, pageData{Error: err.Error(), Filename: header.Filename})
		return
	}
	result, err := s.converter.Convert(raw, format)
	if err != nil {
		log.Printf("convert failed file=%s: %v", header.Filename, err)
		s.render(w, pageData{Error: err.Error(), Filename: header.Filename})
		return
	}

	log.Printf("converted file=%s pages=%d items=%d", header.Filename, result.NumPages, result.MaxItems)
	href := "data:text/csv;base64," + base64.StdEncoding.EncodeToString(result.Output)
	s.render(w, pageData{
		Converted:    true,
		NumPages:     result.NumPages,
		MaxItems:     result.MaxItems,
		Filename:     header.Filename,
		DownloadName: downloadName(header.Filename),
		DownloadHref: template.URL(href),
		Preview:      result.Preview,
	})
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("render failed: %v", err)
	}
}

func formatForFilename(name string) (internal.InputFormat, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return internal.FormatXLSX, nil
	case ".xls":
		return "", fmt.Errorf("legacy .xls workbooks are not supported, save the file as .xlsx or .csv")
	default:
		return internal.FormatCSV, nil
	}
}

func downloadName(uploaded string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		base = "converted"
	}
	return base + "_profile.csv"
}
