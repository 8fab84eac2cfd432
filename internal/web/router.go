package web

import (
	"net/http"

	webembed "github.com/reclaimit/reclaimit/web"
)

// Server holds the dependencies for the page handlers. The pages are thin
// shells: all board data is loaded client-side through the JSON API, so the
// handlers only pick a template and a title.
type Server struct {
	Templates *Templates
}

// NewRouter creates the web page router. Pages are served under plain
// .html paths so bookmarked links keep working.
func NewRouter() (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{Templates: templates}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.HandleFunc("GET /{$}", s.page("index.html", "Reclaimit"))
	mux.HandleFunc("GET /index.html", s.page("index.html", "Reclaimit"))
	mux.HandleFunc("GET /list.html", s.page("list.html", "All Items"))
	mux.HandleFunc("GET /report.html", s.page("report.html", "Report an Item"))
	mux.HandleFunc("GET /item.html", s.page("item.html", "Item Details"))
	mux.HandleFunc("GET /login.html", s.page("login.html", "Log In"))
	mux.HandleFunc("GET /register.html", s.page("register.html", "Sign Up"))
	mux.HandleFunc("GET /reset.html", s.page("reset.html", "Reset Password"))

	return mux, nil
}

// page returns a handler that renders one template.
func (s *Server) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Templates.Render(w, name, &PageData{Title: title})
	}
}
