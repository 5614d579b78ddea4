package checkout

import (
	"net/url"
	"sync"
	"time"

	"github.com/mavikdigital/site/internal/catalog"
	"github.com/mavikdigital/site/internal/whatsapp"
)

// DefaultSubmitReset is how long the submitting flag stays set after a
// submission fires. It only disables the submit button while the external
// link opens; a stale reset after the session closed is harmless.
const DefaultSubmitReset = 600 * time.Millisecond

// OpenRequest asks the wizard to open for a mode, optionally preselecting a
// catalog entity. It is the explicit capability presentational sections use
// instead of an ambient broadcast.
type OpenRequest struct {
	Mode        Mode
	ProductID   string
	Plan        string
	SystemID    string
	SystemModel SystemModel
}

// Session is one visitor's wizard. It owns the three per-mode form records
// and the open/step/error flags; catalog data is read-only and shared.
//
// All methods are safe for concurrent use, though in practice a session is
// driven by one browser tab issuing one request at a time.
type Session struct {
	mu sync.Mutex

	open          bool
	mode          Mode
	stepIdx       int
	errorsVisible bool
	submitting    bool
	submitSeq     int

	saas        SaasForm
	maintenance MaintenanceForm
	system      SystemForm

	submitReset time.Duration
}

// NewSession returns a closed session.
func NewSession() *Session {
	return &Session{mode: ModeSaas, submitReset: DefaultSubmitReset}
}

// Open resets every form to its defaults, applies the preselection and
// opens the wizard at the first step. Nothing entered in a previous
// open/close cycle survives.
func (s *Session) Open(req OpenRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ValidMode(req.Mode) {
		return
	}

	s.saas = SaasForm{}
	s.maintenance = MaintenanceForm{}
	s.system = SystemForm{}

	switch req.Mode {
	case ModeSaas:
		s.saas.ProductID = req.ProductID
	case ModeMaintenance:
		s.maintenance.Plan = req.Plan
	case ModeSystem:
		s.system.SystemID = req.SystemID
		s.system.Model = req.SystemModel
	}

	s.mode = req.Mode
	s.stepIdx = 0
	s.errorsVisible = false
	s.submitting = false
	s.open = true
}

// Cancel closes the wizard immediately, discarding in-progress state.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.saas = SaasForm{}
	s.maintenance = MaintenanceForm{}
	s.system = SystemForm{}
	s.stepIdx = 0
	s.errorsVisible = false
	s.submitting = false
}

// IsOpen reports whether the wizard dialog is showing.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Mode returns the active checkout mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Steps returns the step sequence for the active mode and sub-model.
func (s *Session) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps()
}

func (s *Session) steps() []Step {
	return StepsFor(s.mode, s.system.Model)
}

// clampedIdx keeps the index inside the current sequence; the sequence can
// shrink when the system sub-model changes.
func (s *Session) clampedIdx() int {
	steps := s.steps()
	if s.stepIdx > len(steps)-1 {
		return len(steps) - 1
	}
	if s.stepIdx < 0 {
		return 0
	}
	return s.stepIdx
}

// StepIndex returns the active step index, clamped to the sequence.
func (s *Session) StepIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clampedIdx()
}

// Current returns the active step.
func (s *Session) Current() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps()[s.clampedIdx()]
}

// Progress returns how far along the sequence the visitor is, 0-100.
func (s *Session) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	steps := s.steps()
	if len(steps) <= 1 {
		return 0
	}
	return s.clampedIdx() * 100 / (len(steps) - 1)
}

// ErrorsVisible reports whether a failed Next left errors showing.
func (s *Session) ErrorsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorsVisible
}

// StepError returns the inline error for the active step when errors are
// visible, or "".
func (s *Session) StepError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.errorsVisible {
		return ""
	}
	return s.validateStep(s.steps()[s.clampedIdx()].ID)
}

// Submitting reports whether a submission just fired.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Apply funnels posted form values into the active mode's form through its
// Set dispatcher. Checkbox groups that belong to the current step are
// normalized first: an unchecked box posts nothing, which means false or an
// empty list. Unknown fields are ignored.
func (s *Session) Apply(values url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.steps()[s.clampedIdx()].ID {
	case StepTerm:
		if !values.Has("min_term") {
			values.Set("min_term", "false")
		}
	case StepScope:
		for _, f := range []string{"scope_site", "scope_sistema", "scope_automacoes"} {
			if !values.Has(f) {
				values.Set(f, "false")
			}
		}
	case StepCustom:
		s.system.ClearCustomizations()
	}

	for field, vals := range values {
		for _, value := range vals {
			s.setField(field, value)
		}
	}
}

// SetField applies a single field update to the active mode's form.
func (s *Session) SetField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setField(field, value)
}

func (s *Session) setField(field, value string) error {
	switch s.mode {
	case ModeMaintenance:
		return s.maintenance.Set(field, value)
	case ModeSystem:
		return s.system.Set(field, value)
	default:
		return s.saas.Set(field, value)
	}
}

// Next validates the active step. When it passes, the index advances (capped
// at the last step) and errors are hidden; when it fails, the index stays
// and the inline error becomes visible. Returns whether it advanced.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	steps := s.steps()
	idx := s.clampedIdx()
	if msg := s.validateStep(steps[idx].ID); msg != "" {
		s.errorsVisible = true
		return false
	}

	s.errorsVisible = false
	if idx < len(steps)-1 {
		s.stepIdx = idx + 1
	} else {
		s.stepIdx = idx
	}
	return true
}

// Back moves one step back, floored at the first step, and clears error
// visibility without re-validating.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.clampedIdx() - 1
	if idx < 0 {
		idx = 0
	}
	s.stepIdx = idx
	s.errorsVisible = false
}

// Message derives the composed WhatsApp text from the active mode's form.
// It returns "" when the selected catalog entity cannot be resolved, which
// turns Submit into a no-op.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message()
}

func (s *Session) message() string {
	switch s.mode {
	case ModeMaintenance:
		m := s.maintenance
		return whatsapp.BuildMaintenanceMessage(whatsapp.MaintenanceQuote{
			Plan:            m.Plan,
			Scope:           m.Scope.Labels(),
			Urgency:         m.Urgency,
			CustomDomain:    m.CustomDomain != nil && *m.CustomDomain,
			Hosting:         hostingOrDefault(m.Hosting),
			MinTermAccepted: m.MinTermAccepted,
			Client:          m.Client.Quote(),
		})

	case ModeSystem:
		system, ok := catalog.SystemByID(s.system.SystemID)
		if !ok {
			return ""
		}
		f := s.system
		if f.Model == SystemModelLicense {
			return whatsapp.BuildSystemLicenseMessage(whatsapp.SystemLicenseQuote{
				SystemName:      system.Name,
				Customizations:  f.Customizations,
				MaintenancePlan: f.MaintenancePlan,
				CustomDomain:    f.CustomDomain != nil && *f.CustomDomain,
				Hosting:         hostingOrDefault(f.Hosting),
				MinTermAccepted: f.MinTermAccepted,
				Client:          f.Client.Quote(),
			})
		}
		return whatsapp.BuildSystemSaasMessage(whatsapp.SystemSaasQuote{
			SystemName:      system.Name,
			Users:           parseQuantity(f.Users),
			Units:           parseQuantity(f.Units),
			CustomDomain:    f.CustomDomain != nil && *f.CustomDomain,
			Hosting:         hostingOrDefault(f.Hosting),
			MinTermAccepted: f.MinTermAccepted,
			Client:          f.Client.Quote(),
		})

	default:
		product, ok := catalog.ProductByID(s.saas.ProductID)
		if !ok {
			return ""
		}
		f := s.saas
		return whatsapp.BuildSaasMessage(whatsapp.SaasQuote{
			Product:         product.Name,
			Users:           parseQuantity(f.Users),
			Units:           parseQuantity(f.Units),
			CustomDomain:    f.CustomDomain != nil && *f.CustomDomain,
			Hosting:         hostingOrDefault(f.Hosting),
			MinTermAccepted: f.MinTermAccepted,
			Client:          f.Client.Quote(),
		})
	}
}

func hostingOrDefault(h whatsapp.HostingOption) whatsapp.HostingOption {
	if h == "" {
		return whatsapp.HostingCliente
	}
	return h
}

// Submit composes the final message and returns the deep link to open. When
// the message is empty (missing entity) it returns ok=false and changes
// nothing. Otherwise the submitting flag is set and auto-clears after the
// configured delay; the wizard stays open and reusable.
func (s *Session) Submit(number string) (link string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.message()
	if msg == "" {
		return "", false
	}

	s.submitting = true
	s.submitSeq++
	seq := s.submitSeq
	time.AfterFunc(s.submitReset, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.submitSeq == seq {
			s.submitting = false
		}
	})

	return whatsapp.Link(number, msg), true
}

// Saas returns a copy of the subscription form for rendering.
func (s *Session) Saas() SaasForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saas
}

// Maintenance returns a copy of the maintenance form for rendering.
func (s *Session) Maintenance() MaintenanceForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maintenance
}

// System returns a copy of the system form for rendering.
func (s *Session) System() SystemForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.system
}
