// ABOUTME: Web UI server with embedded templates
// ABOUTME: Provides a read-only dashboard of local quote submissions at localhost:8080
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/harperreed/flagshop/db"
	"github.com/harperreed/flagshop/models"
)

//go:embed templates/*
var templatesFS embed.FS

// statsWindow is how many recent submissions the dashboard aggregates.
const statsWindow = 1000

type Server struct {
	db        *sql.DB
	templates *template.Template
}

// ProductCount is the number of submissions for one product.
type ProductCount struct {
	Product string
	Count   int
}

type DashboardStats struct {
	Total       int
	Businesses  int
	ByProduct   []ProductCount
	LastWeek    int
	LastUpdated *time.Time
}

func NewServer(database *sql.DB) (*Server, error) {
	funcMap := template.FuncMap{
		"timestamp": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
		"logo": func(d models.CustomizationDraft) string {
			if d.HasLogo() {
				return *d.LogoURL
			}
			return "none"
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{db: database, templates: tmpl}, nil
}

// Handler returns the routes of the dashboard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /submissions", s.handleSubmissions)

	// Partials for HTMX
	mux.HandleFunc("GET /partials/submission", s.handleSubmissionDetail)
	return mux
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting web server at http://localhost%s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// GenerateDashboardStats aggregates the most recent submissions.
func GenerateDashboardStats(database *sql.DB, now time.Time) (*DashboardStats, error) {
	subs, err := db.ListSubmissions(database, "", statsWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	stats := &DashboardStats{Total: len(subs)}
	byProduct := make(map[string]int)
	businesses := make(map[string]bool)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	for i, sub := range subs {
		if i == 0 {
			t := sub.SubmittedAt
			stats.LastUpdated = &t
		}
		byProduct[sub.Payload.ProductName]++
		businesses[sub.Payload.BusinessName] = true
		if sub.SubmittedAt.After(weekAgo) {
			stats.LastWeek++
		}
	}
	stats.Businesses = len(businesses)

	for product, count := range byProduct {
		stats.ByProduct = append(stats.ByProduct, ProductCount{Product: product, Count: count})
	}
	sort.Slice(stats.ByProduct, func(i, j int) bool {
		if stats.ByProduct[i].Count != stats.ByProduct[j].Count {
			return stats.ByProduct[i].Count > stats.ByProduct[j].Count
		}
		return stats.ByProduct[i].Product < stats.ByProduct[j].Product
	})

	return stats, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := GenerateDashboardStats(s.db, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recent, err := db.ListSubmissions(s.db, "", 10)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Stats":           stats,
		"Submissions":     recent,
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	subs, err := db.ListSubmissions(s.db, email, 200)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Submissions":     subs,
		"Email":           email,
		"Title":           "Submissions",
		"ContentTemplate": "submissions-content",
	}

	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleSubmissionDetail(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	sub, err := db.GetSubmission(s.db, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sub == nil {
		http.Error(w, "Submission not found", http.StatusNotFound)
		return
	}

	s.renderTemplate(w, "submission-detail.html", sub)
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		log.Printf("Template error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
