package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"RegRadar/internal/domain"
	"RegRadar/internal/ports"
)

// Server is the read-only browse layer over stored regulations, plus a
// trigger endpoint for a fresh aggregation run. It never writes to the
// regulations table itself.
type Server struct {
	reader   ports.RegulationReader
	runner   ports.AggregateRunner
	pageSize int
	logger   *slog.Logger
	tmpl     *template.Template
}

// NewServer wires the reader and the fetch trigger.
func NewServer(reader ports.RegulationReader, runner ports.AggregateRunner, pageSize int, logger *slog.Logger) *Server {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &Server{
		reader:   reader,
		runner:   runner,
		pageSize: pageSize,
		logger:   logger,
		tmpl:     template.Must(template.New("regradar").Parse(pageTemplates)),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /record/{id}", s.handleDetail)
	mux.HandleFunc("GET /fetch", s.handleFetchForm)
	mux.HandleFunc("POST /fetch", s.handleFetch)
	return mux
}

type indexView struct {
	Records []domain.Regulation
	Levels  []domain.Level
	Level   string
	Query   string
	Page    int
	HasNext bool
	Message string
}

func (v indexView) PrevPage() int { return v.Page - 1 }
func (v indexView) NextPage() int { return v.Page + 1 }

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	level := query.Get("level")
	if !domain.Level(level).Valid() {
		level = ""
	}

	// Fetch one extra row to detect a next page.
	records, err := s.reader.List(r.Context(), ports.ListFilter{
		Level:  level,
		Query:  query.Get("q"),
		Limit:  s.pageSize + 1,
		Offset: (page - 1) * s.pageSize,
	})
	if err != nil {
		s.fail(w, "list regulations", err)
		return
	}

	hasNext := len(records) > s.pageSize
	if hasNext {
		records = records[:s.pageSize]
	}

	s.render(w, "index", indexView{
		Records: records,
		Levels:  domain.Levels(),
		Level:   level,
		Query:   query.Get("q"),
		Page:    page,
		HasNext: hasNext,
		Message: query.Get("message"),
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	record, err := s.reader.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, "get regulation", err)
		return
	}
	if record == nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, "detail", record)
}

func (s *Server) handleFetchForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "fetch", nil)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		http.Error(w, "fetching is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := s.runner.RunAll(r.Context()); err != nil {
		s.fail(w, "aggregation run", err)
		return
	}

	http.Redirect(w, r, "/?message=Fetch+complete.", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil && s.logger != nil {
		s.logger.Error("render template", "template", name, "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	if s.logger != nil {
		s.logger.Error(what, "error", err)
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}
