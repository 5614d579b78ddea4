// Package handler contains the HTTP handlers for the MAVIK site.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/mavikdigital/site/internal/catalog"
	"github.com/mavikdigital/site/internal/whatsapp"
)

// PageHandler serves the full marketing pages.
type PageHandler struct {
	renderer *Renderer
	logger   *slog.Logger
	number   string
}

// NewPageHandler creates a new PageHandler. number is the WhatsApp
// destination used for the direct-contact links outside the wizard.
func NewPageHandler(renderer *Renderer, logger *slog.Logger, number string) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		logger:   logger,
		number:   number,
	}
}

// RegisterRoutes registers the page routes with the provided mux.
//
// Routes:
// - GET /{$}     -> Home
// - GET /contato -> Contato
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /contato", h.Contato)
}

// pageData is the shared payload for full page renders. Every page carries
// the catalog sections so the layout can compose them, plus the direct
// WhatsApp contact link used by the floating button and the contact section.
type pageData struct {
	Title          string
	Description    string
	Products       []catalog.SaasProduct
	Plans          []catalog.MaintenancePlan
	Systems        []catalog.SystemItem
	Projects       []projectView
	ProjectSteps   []string
	Customizations []string
	WhatsAppLink   string
	Checkout       *checkoutView
}

// projectView pairs a custom-project offer with its quote link. Projects
// skip the wizard; the card's CTA opens WhatsApp directly.
type projectView struct {
	catalog.ProjectOffer
	Link string
}

// Home renders the landing page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "public/home", h.newPageData(
		"MAVIK | Sistemas, sites e automações",
		"Sistemas prontos, sites e automações para o seu negócio. Assine, licencie ou mantenha com a MAVIK.",
	))
}

// Contato renders the contact page.
func (h *PageHandler) Contato(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "public/contato", h.newPageData(
		"Contato | MAVIK",
		"Fale com a MAVIK pelo WhatsApp ou e-mail.",
	))
}

func (h *PageHandler) newPageData(title, description string) pageData {
	projects := make([]projectView, 0, len(catalog.Projects))
	for _, p := range catalog.Projects {
		projects = append(projects, projectView{
			ProjectOffer: p,
			Link:         whatsapp.Link(h.number, p.Greeting),
		})
	}

	return pageData{
		Title:          title,
		Description:    description,
		Products:       catalog.SaasProducts,
		Plans:          catalog.MaintenancePlans,
		Systems:        catalog.Systems,
		Projects:       projects,
		ProjectSteps:   catalog.ProjectSteps,
		Customizations: catalog.CustomizationOptions,
		WhatsAppLink:   whatsapp.Link(h.number, directGreeting),
		Checkout:       &checkoutView{},
	}
}
