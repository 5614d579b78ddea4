// Package whatsapp composes the quote messages sent to the MAVIK WhatsApp
// number and builds the deep links that open them in a conversation.
//
// The builders are pure: the same payload always produces the same text, and
// the label strings are fixed because the messages are read by humans on the
// other side of the chat.
package whatsapp

import (
	"fmt"
	"strings"
)

// HostingOption says who hosts the delivered site or system.
type HostingOption string

const (
	HostingMavik   HostingOption = "MAVIK"
	HostingCliente HostingOption = "CLIENTE"
)

// Urgency is the maintenance request urgency chosen by the client.
type Urgency string

const (
	UrgencyBaixa Urgency = "baixa"
	UrgencyMedia Urgency = "media"
	UrgencyAlta  Urgency = "alta"
)

// Client is the contact block appended to every quote. Optional fields are
// omitted from the message entirely when empty.
type Client struct {
	Name     string
	Company  string
	WhatsApp string
	Email    string
	City     string
	BestTime string
}

// SaasQuote is the payload for a hosted-system subscription request.
type SaasQuote struct {
	Product         string
	Users           int
	Units           int
	CustomDomain    bool
	Hosting         HostingOption
	MinTermAccepted bool
	Client          Client
}

// MaintenanceQuote is the payload for a maintenance-plan request.
type MaintenanceQuote struct {
	Plan            string
	Scope           []string
	Urgency         Urgency
	CustomDomain    bool
	Hosting         HostingOption
	MinTermAccepted bool
	Client          Client
}

// SystemSaasQuote is the payload for a pre-built system acquired as a
// hosted subscription.
type SystemSaasQuote struct {
	SystemName      string
	Users           int
	Units           int
	CustomDomain    bool
	Hosting         HostingOption
	MinTermAccepted bool
	Client          Client
}

// SystemLicenseQuote is the payload for a pre-built system acquired as a
// one-time license with monthly maintenance.
type SystemLicenseQuote struct {
	SystemName      string
	Customizations  []string
	MaintenancePlan string
	CustomDomain    bool
	Hosting         HostingOption
	MinTermAccepted bool
	Client          Client
}

const (
	greeting    = "Olá! Quero contratar com a MAVIK."
	closingLine = "Pode me enviar o contrato e as formas de pagamento?"
)

// message accumulates output lines. Optional lines are simply not appended.
type message struct {
	lines []string
}

func (m *message) add(s string) {
	m.lines = append(m.lines, s)
}

func (m *message) blank() {
	m.lines = append(m.lines, "")
}

func (m *message) field(label, value string) {
	m.add(fmt.Sprintf("*%s:* %s", label, value))
}

func (m *message) optional(label, value string) {
	if value != "" {
		m.field(label, value)
	}
}

func (m *message) optionalCount(label string, value int) {
	if value > 0 {
		m.field(label, fmt.Sprintf("%d", value))
	}
}

func (m *message) bulletList(label string, items []string) {
	if len(items) == 0 {
		return
	}
	m.add(fmt.Sprintf("*%s:*", label))
	for _, item := range items {
		m.add("- " + item)
	}
}

func (m *message) minTerm(accepted bool) {
	if accepted {
		m.field("Contrato mínimo", "12 meses (ciente ✅)")
	} else {
		m.field("Contrato mínimo", "não confirmado")
	}
}

func (m *message) client(c Client) {
	name := c.Name
	if c.Company != "" {
		name = c.Name + " / " + c.Company
	}
	m.field("Cliente", name)
	m.field("WhatsApp", c.WhatsApp)
	m.field("E-mail", c.Email)
	m.optional("Cidade", c.City)
	m.optional("Melhor horário", c.BestTime)
}

func (m *message) String() string {
	return strings.Join(m.lines, "\n")
}

func yesNo(v bool) string {
	if v {
		return "sim"
	}
	return "não"
}

func hostingLabel(v HostingOption) string {
	if v == HostingMavik {
		return "Inclusa pela MAVIK"
	}
	return "Por conta do cliente"
}

// BuildSaasMessage renders the hosted-system subscription quote.
func BuildSaasMessage(q SaasQuote) string {
	var m message
	m.add(greeting)
	m.blank()
	m.field("Tipo", "Sistema online")
	m.field("Sistema", q.Product)
	m.field("Valor", "mensal fixo")
	m.minTerm(q.MinTermAccepted)
	m.field("Inclui", "domínio, hospedagem, suporte e atualizações")
	m.optionalCount("Usuários", q.Users)
	m.optionalCount("Unidades", q.Units)
	m.blank()
	m.client(q.Client)
	m.blank()
	m.add(closingLine)
	return m.String()
}

// BuildMaintenanceMessage renders the maintenance-plan quote.
func BuildMaintenanceMessage(q MaintenanceQuote) string {
	var m message
	m.add(greeting)
	m.blank()
	m.field("Tipo", "Manutenção")
	m.field("Plano", q.Plan)
	m.minTerm(q.MinTermAccepted)
	m.bulletList("O que será mantido", q.Scope)
	m.field("Domínio personalizado", yesNo(q.CustomDomain))
	m.field("Hospedagem", hostingLabel(q.Hosting))
	m.field("Urgência", string(q.Urgency))
	m.blank()
	m.client(q.Client)
	m.blank()
	m.add(closingLine)
	return m.String()
}

// BuildSystemSaasMessage renders the quote for a pre-built system acquired
// as a hosted subscription. The shape matches the subscription quote.
func BuildSystemSaasMessage(q SystemSaasQuote) string {
	return BuildSaasMessage(SaasQuote{
		Product:         q.SystemName,
		Users:           q.Users,
		Units:           q.Units,
		CustomDomain:    q.CustomDomain,
		Hosting:         q.Hosting,
		MinTermAccepted: q.MinTermAccepted,
		Client:          q.Client,
	})
}

// BuildSystemLicenseMessage renders the quote for a licensed system with
// monthly maintenance.
func BuildSystemLicenseMessage(q SystemLicenseQuote) string {
	var m message
	m.add(greeting)
	m.blank()
	m.field("Tipo", "Sistema próprio + manutenção")
	m.field("Sistema", q.SystemName)
	m.field("Manutenção mensal", q.MaintenancePlan)
	m.minTerm(q.MinTermAccepted)
	m.bulletList("Alterações sob demanda", q.Customizations)
	m.field("Domínio personalizado", yesNo(q.CustomDomain))
	m.field("Hospedagem", hostingLabel(q.Hosting))
	m.blank()
	m.client(q.Client)
	m.blank()
	m.add(closingLine)
	return m.String()
}
