package checkout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mavikdigital/site/internal/phone"
)

var emailRx = regexp.MustCompile(`\S+@\S+\.\S+`)

func emailValid(value string) bool {
	return emailRx.MatchString(strings.TrimSpace(value))
}

func phoneValid(value string) bool {
	return len(phone.Digits(value)) >= 10
}

// quantityOK accepts an empty field or a positive whole number. The counts
// are optional; only nonsense is rejected.
func quantityOK(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	n, err := strconv.Atoi(trimmed)
	return err == nil && n > 0
}

// parseQuantity returns the positive count or 0 when the field is empty or
// invalid; 0 means "not informed" and is omitted from the message.
func parseQuantity(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func clientValid(c ClientForm) bool {
	return strings.TrimSpace(c.Name) != "" &&
		strings.TrimSpace(c.WhatsApp) != "" &&
		phoneValid(c.WhatsApp) &&
		strings.TrimSpace(c.Email) != "" &&
		emailValid(c.Email)
}

// Inline error messages shown when a step blocks advancement.
const (
	msgSelectProduct = "Selecione um sistema para continuar."
	msgSelectPlan    = "Selecione um plano para continuar."
	msgSelectScope   = "Selecione ao menos um item."
	msgFillContext   = "Preencha domínio, hospedagem e urgência."
	msgChooseSystem  = "Escolha o sistema e o modelo."
	msgChoosePlan    = "Escolha a manutenção mensal."
	msgDomainHosting = "Selecione dominio e hospedagem."
	msgQuantities    = "Informe valores positivos para usuarios e unidades."
	msgClient        = "Preencha nome, WhatsApp e e-mail válidos."
	msgConfirmTerm   = "Confirme a vigência para continuar."
)

// validateStep checks the named step against the active mode's form and
// returns the inline error message, or "" when the step passes. Steps not
// listed here (the summary) are always passable.
func (s *Session) validateStep(id StepID) string {
	switch id {
	case StepProduct:
		if s.saas.ProductID == "" {
			return msgSelectProduct
		}
	case StepPlan:
		if s.maintenance.Plan == "" {
			return msgSelectPlan
		}
	case StepScope:
		if !s.maintenance.Scope.Any() {
			return msgSelectScope
		}
	case StepContext:
		if s.maintenance.CustomDomain == nil || s.maintenance.Hosting == "" || s.maintenance.Urgency == "" {
			return msgFillContext
		}
	case StepModel:
		if s.system.SystemID == "" || s.system.Model == "" {
			return msgChooseSystem
		}
	case StepCustom:
		if s.system.MaintenancePlan == "" {
			return msgChoosePlan
		}
	case StepDomainHosting:
		if s.system.CustomDomain == nil || s.system.Hosting == "" {
			return msgDomainHosting
		}
	case StepIncluded:
		users, units := s.operationalCounts()
		if !quantityOK(users) || !quantityOK(units) {
			return msgQuantities
		}
	case StepClient:
		if !clientValid(*s.activeClient()) {
			return msgClient
		}
	case StepTerm:
		if !s.activeMinTerm() {
			return msgConfirmTerm
		}
	}
	return ""
}

// operationalCounts returns the raw user/unit fields of whichever form owns
// the included-domain step in the current mode.
func (s *Session) operationalCounts() (users, units string) {
	if s.mode == ModeSystem {
		return s.system.Users, s.system.Units
	}
	return s.saas.Users, s.saas.Units
}

func (s *Session) activeClient() *ClientForm {
	switch s.mode {
	case ModeMaintenance:
		return &s.maintenance.Client
	case ModeSystem:
		return &s.system.Client
	default:
		return &s.saas.Client
	}
}

func (s *Session) activeMinTerm() bool {
	switch s.mode {
	case ModeMaintenance:
		return s.maintenance.MinTermAccepted
	case ModeSystem:
		return s.system.MinTermAccepted
	default:
		return s.saas.MinTermAccepted
	}
}
