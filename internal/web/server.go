package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os/exec"
	"runtime"
)

//go:embed static
var staticFiles embed.FS

// Server exposes the inference engine over a JSON API with an embedded
// input form. It holds no mutable state, so every handler is safe for
// concurrent requests.
type Server struct {
	addr string
}

func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

func (s *Server) Start(openBrowser bool) error {
	mux := http.NewServeMux()

	appFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(appFS)))

	mux.HandleFunc("/api/interval", s.handleInterval)
	mux.HandleFunc("/api/test", s.handleTest)
	mux.HandleFunc("/api/plan", s.handlePlan)
	mux.HandleFunc("/api/plan/curve.svg", s.handleCurveSVG)
	mux.HandleFunc("/api/regression", s.handleRegression)
	mux.HandleFunc("/api/regression/residuals.svg", s.handleResidualsSVG)

	if openBrowser {
		url := fmt.Sprintf("http://localhost%s", s.addr)
		go openURL(url)
	}

	fmt.Printf("Starting server at http://localhost%s\n", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
