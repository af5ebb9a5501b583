package rest

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/index.html
var templates embed.FS

type PageHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
}

type pageHandler struct {
	logger     *slog.Logger
	tmpl       *template.Template
	socketPort string
}

type pageData struct {
	SocketPort string
}

// NewPageHandler serves the game page. The page connects to the WebSocket
// server on socketPort of the host it was loaded from.
func NewPageHandler(logger *slog.Logger, socketPort string) (PageHandler, error) {
	tmpl, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &pageHandler{
		logger:     logger.With("component", "page"),
		tmpl:       tmpl,
		socketPort: socketPort,
	}, nil
}

func (that *pageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := that.tmpl.Execute(&buf, pageData{SocketPort: that.socketPort}); err != nil {
		that.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		that.logger.Error("failed to write page", "error", err)
	}
}
