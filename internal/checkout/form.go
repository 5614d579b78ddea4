// Package checkout implements the guided checkout wizard: per-mode form
// state, named step sequences, per-step validation and the state machine
// that walks a visitor from product selection to a pre-filled WhatsApp
// message.
package checkout

import (
	"errors"
	"strings"

	"github.com/mavikdigital/site/internal/phone"
	"github.com/mavikdigital/site/internal/whatsapp"
)

// Mode is the top-level product category the wizard is configured for.
type Mode string

const (
	ModeSaas        Mode = "saas"
	ModeMaintenance Mode = "maintenance"
	ModeSystem      Mode = "system"
)

// ValidMode reports whether m is one of the three checkout modes.
func ValidMode(m Mode) bool {
	return m == ModeSaas || m == ModeMaintenance || m == ModeSystem
}

// SystemModel says how a pre-built system is acquired: as a hosted
// subscription or as a one-time license with separate maintenance.
type SystemModel string

const (
	SystemModelSaas    SystemModel = "SAAS"
	SystemModelLicense SystemModel = "LICENSE"
)

// ErrUnknownField is returned by the Set dispatchers for field names the
// active form does not own.
var ErrUnknownField = errors.New("checkout: unknown form field")

// ClientForm is the contact block shared by all three modes. The WhatsApp
// field is stored already masked; validation works on the digits.
type ClientForm struct {
	Name     string
	Company  string
	WhatsApp string
	Email    string
	City     string
	BestTime string
}

func (f *ClientForm) set(field, value string) (bool, error) {
	switch field {
	case "name":
		f.Name = value
	case "company":
		f.Company = value
	case "whatsapp":
		f.WhatsApp = phone.FormatBR(value)
	case "email":
		f.Email = value
	case "city":
		f.City = value
	case "best_time":
		f.BestTime = value
	default:
		return false, nil
	}
	return true, nil
}

// Quote converts the form into the composer's client payload, trimming
// whitespace and dropping empty optionals.
func (f ClientForm) Quote() whatsapp.Client {
	return whatsapp.Client{
		Name:     strings.TrimSpace(f.Name),
		Company:  strings.TrimSpace(f.Company),
		WhatsApp: strings.TrimSpace(f.WhatsApp),
		Email:    strings.TrimSpace(f.Email),
		City:     strings.TrimSpace(f.City),
		BestTime: strings.TrimSpace(f.BestTime),
	}
}

// SaasForm holds the hosted-system subscription answers.
type SaasForm struct {
	ProductID       string
	Users           string
	Units           string
	CustomDomain    *bool
	Hosting         whatsapp.HostingOption
	Client          ClientForm
	MinTermAccepted bool
}

// Set applies one field update. Every mutation of the form goes through
// here so each transition is a single traceable call site.
func (f *SaasForm) Set(field, value string) error {
	if done, err := f.Client.set(field, value); done || err != nil {
		return err
	}
	switch field {
	case "product_id":
		f.ProductID = value
	case "users":
		f.Users = value
	case "units":
		f.Units = value
	case "custom_domain":
		f.CustomDomain = parseBoolChoice(value)
	case "hosting":
		f.Hosting = parseHosting(value)
	case "min_term":
		f.MinTermAccepted = parseCheckbox(value)
	default:
		return ErrUnknownField
	}
	return nil
}

// ScopeFlags marks what a maintenance plan will cover.
type ScopeFlags struct {
	Site       bool
	Sistema    bool
	Automacoes bool
}

// Any reports whether at least one scope item is flagged.
func (s ScopeFlags) Any() bool {
	return s.Site || s.Sistema || s.Automacoes
}

// Labels returns the display labels of the flagged items in fixed order.
func (s ScopeFlags) Labels() []string {
	var out []string
	if s.Site {
		out = append(out, "Site")
	}
	if s.Sistema {
		out = append(out, "Sistema")
	}
	if s.Automacoes {
		out = append(out, "Automações")
	}
	return out
}

// MaintenanceForm holds the maintenance-plan answers.
type MaintenanceForm struct {
	Plan            string
	Scope           ScopeFlags
	CustomDomain    *bool
	Hosting         whatsapp.HostingOption
	Urgency         whatsapp.Urgency
	Client          ClientForm
	MinTermAccepted bool
}

// Set applies one field update.
func (f *MaintenanceForm) Set(field, value string) error {
	if done, err := f.Client.set(field, value); done || err != nil {
		return err
	}
	switch field {
	case "plan":
		f.Plan = value
	case "scope_site":
		f.Scope.Site = parseCheckbox(value)
	case "scope_sistema":
		f.Scope.Sistema = parseCheckbox(value)
	case "scope_automacoes":
		f.Scope.Automacoes = parseCheckbox(value)
	case "custom_domain":
		f.CustomDomain = parseBoolChoice(value)
	case "hosting":
		f.Hosting = parseHosting(value)
	case "urgency":
		f.Urgency = parseUrgency(value)
	case "min_term":
		f.MinTermAccepted = parseCheckbox(value)
	default:
		return ErrUnknownField
	}
	return nil
}

// SystemForm holds the pre-built system answers for both sub-models.
type SystemForm struct {
	SystemID        string
	Model           SystemModel
	Users           string
	Units           string
	Customizations  []string
	MaintenancePlan string
	CustomDomain    *bool
	Hosting         whatsapp.HostingOption
	Client          ClientForm
	MinTermAccepted bool
}

// Set applies one field update. "customizations" appends the value if it is
// not already selected; ClearCustomizations resets the list before a
// checkbox group is re-applied.
func (f *SystemForm) Set(field, value string) error {
	if done, err := f.Client.set(field, value); done || err != nil {
		return err
	}
	switch field {
	case "system_id":
		f.SystemID = value
	case "model":
		f.Model = parseModel(value)
	case "users":
		f.Users = value
	case "units":
		f.Units = value
	case "customizations":
		if value != "" && !contains(f.Customizations, value) {
			f.Customizations = append(f.Customizations, value)
		}
	case "maintenance_plan":
		f.MaintenancePlan = value
	case "custom_domain":
		f.CustomDomain = parseBoolChoice(value)
	case "hosting":
		f.Hosting = parseHosting(value)
	case "min_term":
		f.MinTermAccepted = parseCheckbox(value)
	default:
		return ErrUnknownField
	}
	return nil
}

// ClearCustomizations empties the selected customization list.
func (f *SystemForm) ClearCustomizations() {
	f.Customizations = nil
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1", "sim":
		return true
	}
	return false
}

// parseBoolChoice keeps the tri-state nature of a yes/no radio group:
// empty input leaves the question unanswered.
func parseBoolChoice(value string) *bool {
	switch strings.ToLower(value) {
	case "true", "sim":
		b := true
		return &b
	case "false", "nao", "não":
		b := false
		return &b
	}
	return nil
}

func parseHosting(value string) whatsapp.HostingOption {
	switch whatsapp.HostingOption(value) {
	case whatsapp.HostingMavik, whatsapp.HostingCliente:
		return whatsapp.HostingOption(value)
	}
	return ""
}

func parseUrgency(value string) whatsapp.Urgency {
	switch whatsapp.Urgency(value) {
	case whatsapp.UrgencyBaixa, whatsapp.UrgencyMedia, whatsapp.UrgencyAlta:
		return whatsapp.Urgency(value)
	}
	return ""
}

func parseModel(value string) SystemModel {
	switch SystemModel(value) {
	case SystemModelSaas, SystemModelLicense:
		return SystemModel(value)
	}
	return ""
}
