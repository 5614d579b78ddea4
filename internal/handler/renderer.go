package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
)

// Renderer manages template parsing and rendering with isolated template sets.
//
// Templates are organized as:
//   - layouts/public.html - base layout for all pages
//   - components/*.html - reusable sections (hero, plans, systems, footer, ...)
//   - partials/*.html - standalone fragments for htmx responses
//   - pages/public/*.html - pages rendered inside the public layout
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
	isDev     bool
	mu        sync.RWMutex

	// For dev mode hot-reload
	templatesDir string
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	TemplatesDir string
	Logger       *slog.Logger
	IsDev        bool
}

// NewRenderer creates a new template renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		templates:    make(map[string]*template.Template),
		logger:       cfg.Logger,
		isDev:        cfg.IsDev,
		templatesDir: cfg.TemplatesDir,
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadTemplates() error {
	templatesDir := r.templatesDir

	// Component templates shared by every page, recursively from all subdirs
	var componentFiles []string
	componentsDir := filepath.Join(templatesDir, "components")
	err := filepath.WalkDir(componentsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".html") {
			componentFiles = append(componentFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk components dir: %w", err)
	}

	// Partial templates (standalone fragments for htmx)
	partialsPattern := filepath.Join(templatesDir, "partials", "*.html")
	partialFiles, err := filepath.Glob(partialsPattern)
	if err != nil {
		return fmt.Errorf("failed to glob partials: %w", err)
	}

	// Parse each partial as a standalone template
	for _, partial := range partialFiles {
		partialTmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFiles(partial)
		if err != nil {
			return fmt.Errorf("failed to parse partial %s: %w", partial, err)
		}

		// Store with base name as key (e.g., "checkout" for "checkout.html")
		partialName := filepath.Base(partial)
		partialName = strings.TrimSuffix(partialName, filepath.Ext(partialName))
		r.templates["partial/"+partialName] = partialTmpl
	}

	// Parse the public layout
	publicLayoutPath := filepath.Join(templatesDir, "layouts", "public.html")
	publicBaseTmpl, err := template.New("public").Funcs(TemplateFuncs()).ParseFiles(publicLayoutPath)
	if err != nil {
		return fmt.Errorf("failed to parse public layout: %w", err)
	}

	if len(componentFiles) > 0 {
		publicBaseTmpl, err = publicBaseTmpl.ParseFiles(componentFiles...)
		if err != nil {
			return fmt.Errorf("failed to parse components into public layout: %w", err)
		}
	}

	// Parse partials into the layout so pages can inline them on full loads
	if len(partialFiles) > 0 {
		publicBaseTmpl, err = publicBaseTmpl.ParseFiles(partialFiles...)
		if err != nil {
			return fmt.Errorf("failed to parse partials into public layout: %w", err)
		}
	}

	// Parse pages (home, contato, ...)
	publicPages, err := filepath.Glob(filepath.Join(templatesDir, "pages", "public", "*.html"))
	if err != nil {
		return fmt.Errorf("failed to glob public pages: %w", err)
	}

	for _, page := range publicPages {
		pageTmpl, err := publicBaseTmpl.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone public template for %s: %w", page, err)
		}

		pageTmpl, err = pageTmpl.ParseFiles(page)
		if err != nil {
			return fmt.Errorf("failed to parse public page %s: %w", page, err)
		}

		// Store as "public/home", "public/contato", etc.
		pageName := filepath.Base(page)
		pageName = strings.TrimSuffix(pageName, filepath.Ext(pageName))
		r.templates["public/"+pageName] = pageTmpl
	}

	r.logger.Info("templates loaded", "count", len(r.templates))
	return nil
}

// Reload reloads all templates from disk. Useful for development.
func (r *Renderer) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates = make(map[string]*template.Template)
	return r.loadTemplates()
}

// Render renders a template to an io.Writer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	// In dev mode, reload templates on each request
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	execName := r.getBaseTemplateName(name)

	return tmpl.ExecuteTemplate(w, execName, data)
}

// RenderHTML renders a template and returns the HTML as a string.
func (r *Renderer) RenderHTML(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderHTTP renders a template directly to an http.ResponseWriter.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data interface{}) {
	// In dev mode, reload templates on each request
	if r.isDev {
		if err := r.Reload(); err != nil {
			r.logger.Error("template reload failed", "error", err)
			http.Error(w, "Template reload failed", http.StatusInternalServerError)
			return
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		r.logger.Error("template not found", "name", name)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	execName := r.getBaseTemplateName(name)

	// Render to buffer first to catch errors before writing headers
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		r.logger.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// RenderPartial renders a partial template (for htmx responses).
// The partial file should contain {{define "name"}}...{{end}} where name
// matches the file name. Nothing is written on error, so the caller can
// still send an error response.
func (r *Renderer) RenderPartial(w http.ResponseWriter, name string, data interface{}) error {
	// In dev mode, reload templates on each request
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	fullName := "partial/" + name

	r.mu.RLock()
	tmpl, ok := r.templates[fullName]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("partial template %q not found", name)
	}

	// Render to buffer first to catch errors before writing headers
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("partial %q execution failed: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
	return nil
}

// getBaseTemplateName determines which base template to execute.
func (r *Renderer) getBaseTemplateName(name string) string {
	if strings.HasPrefix(name, "partial/") {
		return strings.TrimPrefix(name, "partial/")
	}
	return "public"
}

// ListTemplates returns a list of all loaded template names.
// Useful for debugging.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}
