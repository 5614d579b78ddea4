// Package catalog holds the static MAVIK product catalog: hosted systems
// offered as subscriptions, maintenance plans and the library of pre-built
// systems. The data is read-only and shared by reference; everything that
// renders a price, a feature list or a delivery estimate reads from here.
package catalog

// PlanKey identifies a plan tier shared between subscription products and
// maintenance plans.
type PlanKey string

const (
	PlanStart     PlanKey = "START"
	PlanPro       PlanKey = "PRO"
	PlanEvolution PlanKey = "EVOLUTION"
)

// SaasPlanTier is one pricing tier of a subscription product.
type SaasPlanTier struct {
	Key          PlanKey
	Label        string
	PriceMonthly int
	Highlights   []string
}

// SaasProduct is a hosted system sold as a monthly subscription.
type SaasProduct struct {
	ID               string
	Name             string
	Tagline          string
	FromPriceMonthly int
	Plans            []SaasPlanTier
	Features         []string
	Limits           []string
}

// MaintenancePlan is a monthly support plan for an existing site or system.
type MaintenancePlan struct {
	Key          PlanKey
	Name         string
	PriceMonthly string
	Includes     []string
	SLA          string
}

// SystemItem is an entry in the pre-built system library. Each system can be
// acquired as a hosted subscription, as a one-time license with separate
// maintenance, or both.
type SystemItem struct {
	ID                   string
	Name                 string
	Description          string
	Features             []string
	Includes             []string
	PlanSuggested        PlanKey
	Delivery             string
	CustomDomain         bool
	HostingOptions       string
	Setup                string
	Training             string
	Support              string
	SaasAvailable        bool
	SaasFromPriceMonthly int
	SaasPlanSuggested    PlanKey
	LicenseAvailable     bool
	Notes                string
}

var defaultSaasPlans = []SaasPlanTier{
	{
		Key:          PlanStart,
		Label:        "Start",
		PriceMonthly: 189,
		Highlights:   []string{"Essencial para começar", "Configuração rápida", "Suporte comercial"},
	},
	{
		Key:          PlanPro,
		Label:        "Pro",
		PriceMonthly: 289,
		Highlights:   []string{"Mais usuários", "Automatizações básicas", "Suporte prioritário"},
	},
	{
		Key:          PlanEvolution,
		Label:        "Evolution",
		PriceMonthly: 389,
		Highlights:   []string{"Operação robusta", "Evolução contínua", "Tempo de resposta prioritário"},
	},
}

// SaasProducts lists every hosted system available for subscription.
var SaasProducts = []SaasProduct{
	{
		ID:               "saas-agendamentos",
		Name:             "ArenaCalendar",
		Tagline:          "Arenas de Esportes de Areia",
		FromPriceMonthly: 249,
		Plans:            defaultSaasPlans,
		Features: []string{
			"Agenda por reserva",
			"Página de agendamento rápido",
			"Painel administrativo",
			"Controle de disponibilidade",
		},
		Limits: []string{"Unidades conforme plano", "Mais recursos sob demanda"},
	},
}

// MaintenancePlans lists the monthly maintenance plans, cheapest first.
var MaintenancePlans = []MaintenancePlan{
	{
		Key:          PlanStart,
		Name:         "Start",
		PriceMonthly: "R$ 99/mês",
		Includes: []string{
			"Correções simples",
			"Atualizações pontuais",
			"Backup mensal",
			"Suporte comercial",
		},
		SLA: "Tempo de resposta em até 48h úteis",
	},
	{
		Key:          PlanPro,
		Name:         "Pro",
		PriceMonthly: "R$ 189/mês",
		Includes: []string{
			"Atualizações de conteúdo",
			"Pequenas automações",
			"Monitoramento básico",
			"Backup semanal",
			"Suporte prioritário",
		},
		SLA: "Tempo de resposta em até 24h úteis",
	},
	{
		Key:          PlanEvolution,
		Name:         "Evolution",
		PriceMonthly: "R$ 349/mês",
		Includes: []string{
			"Evolução contínua",
			"Correções urgentes",
			"Monitoramento ativo",
			"Backup diário",
			"Consultoria técnica",
		},
		SLA: "Tempo de resposta em até 12h úteis",
	},
}

var systemIncludes = []string{
	"Publicação guiada + início acompanhado",
	"Domínio personalizado incluso (ex: suaempresa.com.br)",
	"Hospedagem inclusa",
	"Atualizações contínuas",
	"Treinamento da equipe",
	"Suporte via WhatsApp",
}

const systemHostingOptions = "Hospedagem inclusa pela MAVIK ou hospedagem por conta do cliente."

const systemNotes = "Domínio personalizado incluso, hospedagem inclusa e publicação guiada pela MAVIK."

// Systems lists the pre-built system library in display order.
var Systems = []SystemItem{
	{
		ID:          "clinicas",
		Name:        "Sistema para Clínicas",
		Description: "Agende pacientes, registre evoluções e acompanhe tudo em um painel simples.",
		Features: []string{
			"Cadastro de pacientes",
			"Agendamentos",
			"Prontuário simples",
			"Relatórios básicos",
			"Perfis de usuário",
		},
		Includes:             systemIncludes,
		PlanSuggested:        PlanPro,
		Delivery:             "7-14 dias",
		CustomDomain:         true,
		HostingOptions:       systemHostingOptions,
		Setup:                "Publicação e configuração do sistema",
		Training:             "Treinamento e início acompanhado",
		Support:              "Suporte via WhatsApp",
		SaasAvailable:        true,
		SaasFromPriceMonthly: 299,
		SaasPlanSuggested:    PlanPro,
		LicenseAvailable:     true,
		Notes:                systemNotes,
	},
	{
		ID:          "ecommerce",
		Name:        "Loja Virtual (E-commerce)",
		Description: "Vitrine, carrinho e finalização de pedidos para vender rápido.",
		Features: []string{
			"Catálogo e vitrine",
			"Carrinho e finalização de pedidos",
			"Cupons (opcional)",
			"Área do cliente",
			"Gestão de pedidos",
		},
		Includes:             systemIncludes,
		PlanSuggested:        PlanPro,
		Delivery:             "7-14 dias",
		CustomDomain:         true,
		HostingOptions:       systemHostingOptions,
		Setup:                "Publicação e configuração do sistema",
		Training:             "Treinamento e início acompanhado",
		Support:              "Suporte via WhatsApp",
		SaasAvailable:        true,
		SaasFromPriceMonthly: 359,
		SaasPlanSuggested:    PlanPro,
		LicenseAvailable:     true,
		Notes:                systemNotes,
	},
	{
		ID:          "agendamentos",
		Name:        "Sistema de Agendamentos",
		Description: "Agenda por recurso, horários fixos/avulsos e painel admin.",
		Features: []string{
			"Agenda por recurso",
			"Horários fixos e avulsos",
			"Painel administrativo",
			"Relatórios básicos",
			"Notificações configuráveis",
		},
		Includes:             systemIncludes,
		PlanSuggested:        PlanPro,
		Delivery:             "5-10 dias",
		CustomDomain:         true,
		HostingOptions:       systemHostingOptions,
		Setup:                "Publicação e configuração do sistema",
		Training:             "Treinamento e início acompanhado",
		Support:              "Suporte via WhatsApp",
		SaasAvailable:        true,
		SaasFromPriceMonthly: 249,
		SaasPlanSuggested:    PlanStart,
		LicenseAvailable:     true,
		Notes:                systemNotes,
	},
}

// ProjectOffer is a custom-project card. Projects are quoted over WhatsApp
// instead of going through the wizard, so each card carries its own
// pre-filled greeting.
type ProjectOffer struct {
	Name     string
	Price    string
	Greeting string
	Features []string
}

// Projects lists the custom-project offers in display order.
var Projects = []ProjectOffer{
	{
		Name:     "Sistema sob medida",
		Price:    "Orçamento sob consulta",
		Greeting: "Olá! Quero orçamento para um sistema sob medida. Pode me orientar sobre prazos e próximos passos?",
		Features: []string{
			"Mapeamento de processos",
			"Dashboard e perfis de acesso",
			"Fluxos personalizados",
			"Integrações sob consulta",
		},
	},
	{
		Name:     "Site estratégico",
		Price:    "Orçamento sob consulta",
		Greeting: "Olá! Quero orçamento para um site estratégico com foco em conversão.",
		Features: []string{
			"Design premium e responsivo",
			"SEO e performance",
			"Integração com WhatsApp e formulários",
			"Entrega orientada a metas",
		},
	},
	{
		Name:     "Automações",
		Price:    "Orçamento sob consulta",
		Greeting: "Olá! Quero orçamento para automações e integrações de processos.",
		Features: []string{
			"Integrações com ferramentas",
			"Rotinas inteligentes",
			"Alertas e notificações",
			"Monitoramento básico",
		},
	},
}

// ProjectSteps describes how a custom project runs, in order.
var ProjectSteps = []string{
	"Briefing rápido",
	"Escopo e cronograma",
	"Desenvolvimento",
	"Entrega + manutenção opcional",
}

// CustomizationOptions lists the on-demand changes offered for licensed
// systems. The wizard stores the selected labels verbatim.
var CustomizationOptions = []string{
	"Integrações com outras ferramentas",
	"Relatórios personalizados",
	"Fluxos específicos da operação",
	"Automatizações adicionais",
}

// ProductByID looks up a subscription product by its stable id.
func ProductByID(id string) (SaasProduct, bool) {
	for _, p := range SaasProducts {
		if p.ID == id {
			return p, true
		}
	}
	return SaasProduct{}, false
}

// PlanByKey looks up a maintenance plan by its key.
func PlanByKey(key PlanKey) (MaintenancePlan, bool) {
	for _, p := range MaintenancePlans {
		if p.Key == key {
			return p, true
		}
	}
	return MaintenancePlan{}, false
}

// SystemByID looks up a pre-built system by its stable id.
func SystemByID(id string) (SystemItem, bool) {
	for _, s := range Systems {
		if s.ID == id {
			return s, true
		}
	}
	return SystemItem{}, false
}
