package checkout

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mavikdigital/site/internal/whatsapp"
)

func stepIDs(steps []Step) []StepID {
	ids := make([]StepID, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}

func TestStepsFor(t *testing.T) {
	testCases := []struct {
		name  string
		mode  Mode
		model SystemModel
		want  []StepID
	}{
		{
			name: "saas",
			mode: ModeSaas,
			want: []StepID{StepProduct, StepIncluded, StepClient, StepTerm, StepSummary},
		},
		{
			name: "maintenance",
			mode: ModeMaintenance,
			want: []StepID{StepPlan, StepScope, StepContext, StepClient, StepTerm, StepSummary},
		},
		{
			name:  "system licensed",
			mode:  ModeSystem,
			model: SystemModelLicense,
			want:  []StepID{StepModel, StepCustom, StepDomainHosting, StepClient, StepTerm, StepSummary},
		},
		{
			name:  "system hosted",
			mode:  ModeSystem,
			model: SystemModelSaas,
			want:  []StepID{StepModel, StepIncluded, StepClient, StepTerm, StepSummary},
		},
		{
			name: "system before model chosen",
			mode: ModeSystem,
			want: []StepID{StepModel, StepIncluded, StepClient, StepTerm, StepSummary},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stepIDs(StepsFor(tc.mode, tc.model)))
		})
	}
}

func TestOpen_PreselectionAndDefaults(t *testing.T) {
	s := NewSession()

	// Dirty every form, then reopen: nothing may leak.
	s.Open(OpenRequest{Mode: ModeSaas})
	s.Apply(url.Values{"users": {"7"}, "name": {"Zé"}})
	s.Open(OpenRequest{Mode: ModeMaintenance, Plan: "PRO"})
	s.Apply(url.Values{"name": {"Maria"}})

	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-agendamentos"})

	require.True(t, s.IsOpen())
	assert.Equal(t, ModeSaas, s.Mode())
	assert.Equal(t, 0, s.StepIndex())
	assert.False(t, s.ErrorsVisible())

	form := s.Saas()
	assert.Equal(t, "saas-agendamentos", form.ProductID)
	assert.Empty(t, form.Users)
	assert.Empty(t, form.Units)
	assert.Nil(t, form.CustomDomain)
	assert.Empty(t, form.Hosting)
	assert.Equal(t, ClientForm{}, form.Client)
	assert.False(t, form.MinTermAccepted)

	assert.Equal(t, MaintenanceForm{}, s.Maintenance())
	assert.Equal(t, SystemForm{}, s.System())
}

func TestOpen_InvalidModeIgnored(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: "banana"})
	assert.False(t, s.IsOpen())
}

func TestNext_BlocksOnInvalidStep(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSaas})

	// No product selected: Next must not advance and must surface errors.
	assert.False(t, s.Next())
	assert.Equal(t, 0, s.StepIndex())
	assert.True(t, s.ErrorsVisible())
	assert.Equal(t, "Selecione um sistema para continuar.", s.StepError())

	require.NoError(t, s.SetField("product_id", "saas-agendamentos"))
	assert.True(t, s.Next())
	assert.Equal(t, 1, s.StepIndex())
	assert.False(t, s.ErrorsVisible())
}

func TestBack_DecrementsAndClearsErrors(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-agendamentos"})
	require.True(t, s.Next())

	// Provoke a visible error on the second step.
	s.Apply(url.Values{"users": {"-1"}})
	assert.False(t, s.Next())
	assert.True(t, s.ErrorsVisible())

	s.Back()
	assert.Equal(t, 0, s.StepIndex())
	assert.False(t, s.ErrorsVisible())

	// Back floors at zero.
	s.Back()
	assert.Equal(t, 0, s.StepIndex())
}

func TestNext_InvalidEmailRejected(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-agendamentos"})
	require.True(t, s.Next()) // product -> included
	require.True(t, s.Next()) // included -> client

	s.Apply(url.Values{
		"name":     {"Ana"},
		"whatsapp": {"93992270000"},
		"email":    {"ana.example.com"},
	})
	assert.False(t, s.Next())
	assert.Equal(t, "Preencha nome, WhatsApp e e-mail válidos.", s.StepError())

	s.Apply(url.Values{"email": {"ana@x.com"}})
	assert.True(t, s.Next())
}

func TestNext_ShortPhoneRejected(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-agendamentos"})
	require.True(t, s.Next())
	require.True(t, s.Next())

	s.Apply(url.Values{
		"name":     {"Ana"},
		"whatsapp": {"939922"},
		"email":    {"ana@x.com"},
	})
	assert.False(t, s.Next())
}

func TestScenarioA_SaasEndToEnd(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-agendamentos"})

	require.True(t, s.Next()) // product
	require.True(t, s.Next()) // included, users/units left empty

	s.Apply(url.Values{
		"name":     {"Ana"},
		"whatsapp": {"93992270000"},
		"email":    {"ana@x.com"},
	})
	require.True(t, s.Next()) // client

	s.Apply(url.Values{"min_term": {"on"}})
	require.True(t, s.Next()) // term -> summary
	assert.Equal(t, StepSummary, s.Current().ID)

	msg := s.Message()
	assert.Contains(t, msg, "*Sistema:* ArenaCalendar")
	assert.Contains(t, msg, "*Contrato mínimo:* 12 meses (ciente ✅)")
	assert.NotContains(t, msg, "Usuários")
	assert.NotContains(t, msg, "Unidades")

	link, ok := s.Submit(whatsapp.DefaultNumber)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/"+whatsapp.DefaultNumber+"?text="))
}

func TestScenarioB_MaintenanceEndToEnd(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeMaintenance})

	s.Apply(url.Values{"plan": {"PRO"}})
	require.True(t, s.Next())

	s.Apply(url.Values{"scope_sistema": {"on"}})
	require.True(t, s.Next())

	s.Apply(url.Values{
		"custom_domain": {"false"},
		"hosting":       {"CLIENTE"},
		"urgency":       {"alta"},
	})
	require.True(t, s.Next())

	s.Apply(url.Values{
		"name":     {"Bruno"},
		"whatsapp": {"93992270000"},
		"email":    {"bruno@x.com"},
	})
	require.True(t, s.Next())

	s.Apply(url.Values{"min_term": {"on"}})
	require.True(t, s.Next())

	msg := s.Message()
	assert.Contains(t, msg, "*Plano:* PRO")
	assert.Contains(t, msg, "*O que será mantido:*\n- Sistema")
	assert.NotContains(t, msg, "- Site")
	assert.NotContains(t, msg, "- Automações")
	assert.Contains(t, msg, "*Domínio personalizado:* não")
	assert.Contains(t, msg, "*Hospedagem:* Por conta do cliente")
	assert.Contains(t, msg, "*Urgência:* alta")
}

func TestSystemLicensedFlow(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSystem, SystemID: "clinicas", SystemModel: SystemModelLicense})

	require.True(t, s.Next()) // model preselected

	// Licensed branch: maintenance plan required, customizations optional.
	assert.False(t, s.Next())
	assert.Equal(t, "Escolha a manutenção mensal.", s.StepError())
	s.Apply(url.Values{
		"customizations":   {"Relatórios personalizados", "Automatizações adicionais"},
		"maintenance_plan": {"PRO"},
	})
	require.True(t, s.Next())

	assert.False(t, s.Next())
	s.Apply(url.Values{"custom_domain": {"true"}, "hosting": {"MAVIK"}})
	require.True(t, s.Next())

	s.Apply(url.Values{
		"name":     {"Carla"},
		"whatsapp": {"93992270000"},
		"email":    {"carla@x.com"},
	})
	require.True(t, s.Next())

	s.Apply(url.Values{"min_term": {"on"}})
	require.True(t, s.Next())

	msg := s.Message()
	assert.Contains(t, msg, "*Tipo:* Sistema próprio + manutenção")
	assert.Contains(t, msg, "*Sistema:* Sistema para Clínicas")
	assert.Contains(t, msg, "*Manutenção mensal:* PRO")
	assert.Contains(t, msg, "*Alterações sob demanda:*\n- Relatórios personalizados\n- Automatizações adicionais")
	assert.Contains(t, msg, "*Domínio personalizado:* sim")
	assert.Contains(t, msg, "*Hospedagem:* Inclusa pela MAVIK")
}

func TestSystemHostedFlow(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSystem, SystemID: "agendamentos", SystemModel: SystemModelSaas})

	require.True(t, s.Next())
	s.Apply(url.Values{"users": {"5"}, "units": {"2"}})
	require.True(t, s.Next())

	s.Apply(url.Values{
		"name":     {"Davi"},
		"whatsapp": {"93992270000"},
		"email":    {"davi@x.com"},
	})
	require.True(t, s.Next())
	s.Apply(url.Values{"min_term": {"on"}})
	require.True(t, s.Next())

	msg := s.Message()
	assert.Contains(t, msg, "*Tipo:* Sistema online")
	assert.Contains(t, msg, "*Sistema:* Sistema de Agendamentos")
	assert.Contains(t, msg, "*Usuários:* 5")
	assert.Contains(t, msg, "*Unidades:* 2")
}

func TestModelSwitchReclampsStep(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSystem, SystemID: "clinicas", SystemModel: SystemModelLicense})

	// Licensed sequence has six steps; hosted has five. Walking forward and
	// then switching models must keep the index inside the new sequence.
	require.True(t, s.Next())
	s.Apply(url.Values{"maintenance_plan": {"PRO"}})
	require.True(t, s.Next())
	s.Apply(url.Values{"custom_domain": {"true"}, "hosting": {"MAVIK"}})
	require.True(t, s.Next())
	assert.Equal(t, StepClient, s.Current().ID)

	require.NoError(t, s.SetField("model", string(SystemModelSaas)))
	steps := s.Steps()
	assert.Less(t, s.StepIndex(), len(steps))
	assert.Equal(t, steps[s.StepIndex()].ID, s.Current().ID)
}

func TestSubmit_MissingEntityIsNoOp(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-desconhecido"})

	assert.Empty(t, s.Message())
	link, ok := s.Submit(whatsapp.DefaultNumber)
	assert.False(t, ok)
	assert.Empty(t, link)
	assert.False(t, s.Submitting())
}

func TestSubmit_FlagAutoClears(t *testing.T) {
	s := NewSession()
	s.submitReset = 10 * time.Millisecond
	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-agendamentos"})
	s.Apply(url.Values{
		"name":     {"Ana"},
		"whatsapp": {"93992270000"},
		"email":    {"ana@x.com"},
		"min_term": {"on"},
	})

	_, ok := s.Submit(whatsapp.DefaultNumber)
	require.True(t, ok)
	assert.True(t, s.Submitting())

	assert.Eventually(t, func() bool { return !s.Submitting() }, time.Second, 5*time.Millisecond)
}

func TestCancel_DiscardsState(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeMaintenance, Plan: "PRO"})
	s.Apply(url.Values{"name": {"Maria"}, "scope_site": {"on"}})

	s.Cancel()
	assert.False(t, s.IsOpen())

	s.Open(OpenRequest{Mode: ModeMaintenance})
	form := s.Maintenance()
	assert.Empty(t, form.Plan)
	assert.Empty(t, form.Client.Name)
	assert.False(t, form.Scope.Site)
}

func TestApply_UncheckedBoxesClear(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeMaintenance, Plan: "PRO"})
	require.True(t, s.Next())

	s.Apply(url.Values{"scope_site": {"on"}, "scope_sistema": {"on"}})
	require.True(t, s.Next())
	s.Back()

	// Re-posting the scope step with only one box checked unchecks the rest.
	s.Apply(url.Values{"scope_sistema": {"on"}})
	form := s.Maintenance()
	assert.False(t, form.Scope.Site)
	assert.True(t, form.Scope.Sistema)
	assert.False(t, form.Scope.Automacoes)
}

func TestApply_MasksPhone(t *testing.T) {
	s := NewSession()
	s.Open(OpenRequest{Mode: ModeSaas, ProductID: "saas-agendamentos"})
	s.Apply(url.Values{"whatsapp": {"93992273046"}})
	assert.Equal(t, "(93) 9 9227-3046", s.Saas().Client.WhatsApp)
}
