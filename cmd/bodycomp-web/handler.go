package main

import (
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/gorilla/mux"
)

const (
	BaseFilename = "_base.html"
)

//go:embed templates
var embeddedTemplates embed.FS

// handler provides global values that must be safe for concurrent use
// from multiple goroutines to each handler method.
type handler struct {
	*Global

	router *mux.Router

	// Mutex protected values
	mu       sync.RWMutex
	template map[string]*template.Template
}

// Template returns the parsed template for the given page, building
// and caching it on first use. Each page template is parsed against
// its own clone of the base layout so that one page's `define` blocks
// do not contaminate another's.
func (h *handler) Template(templateFilename string) *template.Template {
	h.mu.RLock()
	if tpl, ok := h.template[templateFilename]; ok {
		h.mu.RUnlock()
		return tpl
	}
	h.mu.RUnlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	if tpl, ok := h.template[templateFilename]; ok {
		return tpl
	}

	if h.template == nil {
		h.Global.log.Println("Initializing HTML templates")
		h.template = make(map[string]*template.Template)
	}

	h.Global.log.Println("Initializing HTML template for", templateFilename)

	base := template.Must(template.New(BaseFilename).ParseFS(embeddedTemplates, "templates/"+BaseFilename))

	tpl, err := base.ParseFS(embeddedTemplates, "templates/"+templateFilename)
	if err != nil {
		panic(fmt.Errorf(`handler.go:Template: %s`, err))
	}

	h.template[templateFilename] = tpl

	return tpl
}
