package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mavikdigital/site/internal/catalog"
	"github.com/mavikdigital/site/internal/checkout"
	"github.com/mavikdigital/site/internal/domain"
	"github.com/mavikdigital/site/internal/metrics"
)

// sessionCookie names the cookie carrying the checkout session id.
const sessionCookie = "mavik_checkout"

// CheckoutHandler drives the guided checkout wizard over htmx. Every
// mutation re-renders the "checkout" partial from server-side session state.
type CheckoutHandler struct {
	store    *checkout.Store
	renderer *Renderer
	logger   *slog.Logger
	number   string
	secure   bool
}

// NewCheckoutHandler creates a new CheckoutHandler. number is the WhatsApp
// destination in international digits-only form; secure controls the
// session cookie's Secure flag.
func NewCheckoutHandler(store *checkout.Store, renderer *Renderer, logger *slog.Logger, number string, secure bool) *CheckoutHandler {
	return &CheckoutHandler{
		store:    store,
		renderer: renderer,
		logger:   logger,
		number:   number,
		secure:   secure,
	}
}

// RegisterRoutes registers the checkout routes with the provided mux.
//
// Routes:
// - POST /checkout/open    -> Open (from any section's selection form)
// - POST /checkout/update  -> Update (single-field change, re-render)
// - POST /checkout/next    -> Next (apply step fields, validate, advance)
// - POST /checkout/back    -> Back
// - POST /checkout/cancel  -> Cancel
// - POST /checkout/submit  -> Submit (compose message, hand off to wa.me)
// - GET  /checkout/summary -> Summary (plain-text message for clipboard)
func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /checkout/open", h.Open)
	mux.HandleFunc("POST /checkout/update", h.Update)
	mux.HandleFunc("POST /checkout/next", h.Next)
	mux.HandleFunc("POST /checkout/back", h.Back)
	mux.HandleFunc("POST /checkout/cancel", h.Cancel)
	mux.HandleFunc("POST /checkout/submit", h.Submit)
	mux.HandleFunc("GET /checkout/summary", h.Summary)
}

// session resolves the visitor's wizard session from the cookie, creating
// one (and setting the cookie) on first contact or after a sweep.
func (h *CheckoutHandler) session(w http.ResponseWriter, r *http.Request) *checkout.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := h.store.Get(c.Value); ok {
			return sess
		}
	}

	id, sess := h.store.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Open starts the wizard for a mode, resetting any previous state. The
// posting form may preselect a catalog entity.
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("checkout.open", "Requisição inválida."))
		return
	}

	mode := checkout.Mode(r.PostFormValue("mode"))
	if !checkout.ValidMode(mode) {
		ErrorResponse(w, r, h.logger, domain.Invalid("checkout.open", "Modo de contratação desconhecido."))
		return
	}

	sess := h.session(w, r)
	sess.Open(checkout.OpenRequest{
		Mode:        mode,
		ProductID:   r.PostFormValue("product_id"),
		Plan:        r.PostFormValue("plan"),
		SystemID:    r.PostFormValue("system_id"),
		SystemModel: checkout.SystemModel(r.PostFormValue("model")),
	})

	metrics.CheckoutOpened.WithLabelValues(string(mode)).Inc()
	h.logger.Info("checkout opened", "mode", mode)

	h.renderWizard(w, r, sess)
}

// Update applies posted fields without moving steps. It backs live controls
// that re-render the dialog, like the system acquisition model radios.
func (h *CheckoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("checkout.update", "Requisição inválida."))
		return
	}

	sess := h.session(w, r)
	sess.Apply(r.PostForm)
	h.renderWizard(w, r, sess)
}

// Next applies the posted step fields and advances when the step validates.
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("checkout.next", "Requisição inválida."))
		return
	}

	sess := h.session(w, r)
	sess.Apply(r.PostForm)
	if !sess.Next() {
		step := sess.Current()
		metrics.CheckoutStepBlocked.WithLabelValues(string(sess.Mode()), string(step.ID)).Inc()
	}
	h.renderWizard(w, r, sess)
}

// Back applies the posted fields, so nothing typed is lost, and steps back.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("checkout.back", "Requisição inválida."))
		return
	}

	sess := h.session(w, r)
	sess.Apply(r.PostForm)
	sess.Back()
	h.renderWizard(w, r, sess)
}

// Cancel closes the wizard and discards everything entered.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Cancel()
	h.renderWizard(w, r, sess)
}

// Submit composes the final message and hands the wa.me link to the client
// through an HX-Trigger event; the page script opens it in a new tab. A
// session whose catalog entity cannot be resolved submits nothing.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid("checkout.submit", "Requisição inválida."))
		return
	}

	sess := h.session(w, r)
	sess.Apply(r.PostForm)

	link, ok := sess.Submit(h.number)
	if ok {
		metrics.CheckoutSubmitted.WithLabelValues(string(sess.Mode())).Inc()
		h.logger.Info("checkout submitted", "mode", sess.Mode())
		w.Header().Set("HX-Trigger", fmt.Sprintf(`{"checkout:submit":{"link":%q}}`, link))
	} else {
		h.logger.Warn("checkout submit skipped, unresolved selection", "mode", sess.Mode())
	}

	h.renderWizard(w, r, sess)
}

// Summary returns the composed message as plain text. The page script uses
// it for the copy action and for the clipboard fallback after a submit.
// Unlike the wizard routes it never creates a session: a copy request
// without one means the session was swept, and 410 tells the client so.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Gone("checkout.summary", "Sessão de checkout expirada."))
		return
	}
	sess, ok := h.store.Get(c.Value)
	if !ok {
		ErrorResponse(w, r, h.logger, domain.Gone("checkout.summary", "Sessão de checkout expirada."))
		return
	}

	msg := sess.Message()
	if msg == "" {
		NotFoundResponse(w, r, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(msg))
}

func (h *CheckoutHandler) renderWizard(w http.ResponseWriter, r *http.Request, sess *checkout.Session) {
	if err := h.renderer.RenderPartial(w, "checkout", newCheckoutView(sess)); err != nil {
		InternalErrorResponse(w, r, h.logger, err)
	}
}

// stepView is one entry of the progress header.
type stepView struct {
	ID     checkout.StepID
	Label  string
	Active bool
	Done   bool
}

// checkoutView is the render model for the "checkout" partial. Its zero
// value renders the closed dialog shell.
type checkoutView struct {
	Open       bool
	Mode       checkout.Mode
	Steps      []stepView
	StepIndex  int
	StepCount  int
	Step       checkout.StepID
	Progress   int
	Error      string
	Submitting bool

	Saas        checkout.SaasForm
	Maintenance checkout.MaintenanceForm
	System      checkout.SystemForm

	Product catalog.SaasProduct
	Plan    catalog.MaintenancePlan
	SysItem catalog.SystemItem

	Products       []catalog.SaasProduct
	Plans          []catalog.MaintenancePlan
	Systems        []catalog.SystemItem
	Customizations []string

	Message string
}

func newCheckoutView(sess *checkout.Session) *checkoutView {
	v := &checkoutView{
		Open:           sess.IsOpen(),
		Mode:           sess.Mode(),
		Products:       catalog.SaasProducts,
		Plans:          catalog.MaintenancePlans,
		Systems:        catalog.Systems,
		Customizations: catalog.CustomizationOptions,
	}
	if !v.Open {
		return v
	}

	steps := sess.Steps()
	idx := sess.StepIndex()
	v.StepIndex = idx
	v.StepCount = len(steps)
	v.Step = steps[idx].ID
	v.Progress = sess.Progress()
	v.Error = sess.StepError()
	v.Submitting = sess.Submitting()
	for i, s := range steps {
		v.Steps = append(v.Steps, stepView{
			ID:     s.ID,
			Label:  s.Label,
			Active: i == idx,
			Done:   i < idx,
		})
	}

	v.Saas = sess.Saas()
	v.Maintenance = sess.Maintenance()
	v.System = sess.System()

	switch v.Mode {
	case checkout.ModeSaas:
		v.Product, _ = catalog.ProductByID(v.Saas.ProductID)
	case checkout.ModeMaintenance:
		v.Plan, _ = catalog.PlanByKey(catalog.PlanKey(v.Maintenance.Plan))
	case checkout.ModeSystem:
		v.SysItem, _ = catalog.SystemByID(v.System.SystemID)
		if v.System.Model == checkout.SystemModelLicense {
			v.Plan, _ = catalog.PlanByKey(catalog.PlanKey(v.System.MaintenancePlan))
		}
	}

	// The summary screen previews the exact message that will be sent.
	if v.Step == checkout.StepSummary {
		v.Message = sess.Message()
	}

	return v
}

// directGreeting pre-fills the direct-contact link used by the floating
// button and the contact section, outside the wizard flow.
const directGreeting = "Olá! Vim pelo site da MAVIK e quero mais informações."
