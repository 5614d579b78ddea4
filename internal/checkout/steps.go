package checkout

// StepID names a wizard screen. Steps are addressed by identity, never by
// position, so mode-dependent sequences cannot drift out of sync with the
// validator.
type StepID string

const (
	// StepProduct picks the hosted system to subscribe to.
	StepProduct StepID = "produto"
	// StepModel picks a pre-built system and its acquisition model.
	StepModel StepID = "modelo"
	// StepPlan picks a maintenance plan.
	StepPlan StepID = "plano"
	// StepScope flags what will be maintained.
	StepScope StepID = "escopo"
	// StepContext collects domain, hosting and urgency for maintenance.
	StepContext StepID = "contexto"
	// StepCustom collects on-demand changes and the maintenance plan for a
	// licensed system.
	StepCustom StepID = "custom"
	// StepIncluded shows what the hosted offer includes and collects the
	// optional operational counts.
	StepIncluded StepID = "incluso"
	// StepDomainHosting collects domain and hosting for a licensed system.
	StepDomainHosting StepID = "dominio"
	// StepClient collects contact information.
	StepClient StepID = "cliente"
	// StepTerm asks for the minimum-term acknowledgement.
	StepTerm StepID = "confirmacao"
	// StepSummary reviews the composed request. Always passable.
	StepSummary StepID = "resumo"
)

// Step is one wizard screen: a stable identifier plus its display label.
type Step struct {
	ID    StepID
	Label string
}

var stepLabels = map[StepID]string{
	StepProduct:       "Sistema online",
	StepModel:         "Modelo",
	StepPlan:          "Plano",
	StepScope:         "O que será mantido",
	StepContext:       "Contexto",
	StepCustom:        "Alterações sob demanda",
	StepIncluded:      "Domínio incluso",
	StepDomainHosting: "Domínio e hospedagem",
	StepClient:        "Dados do cliente",
	StepTerm:          "Confirmação",
	StepSummary:       "Resumo",
}

func makeSteps(ids ...StepID) []Step {
	steps := make([]Step, len(ids))
	for i, id := range ids {
		steps[i] = Step{ID: id, Label: stepLabels[id]}
	}
	return steps
}

// StepsFor derives the ordered step list for a mode. For system mode the
// sequence depends on the acquisition model; until a model is chosen the
// hosted sequence applies, matching what the first screen offers.
func StepsFor(mode Mode, model SystemModel) []Step {
	switch mode {
	case ModeMaintenance:
		return makeSteps(StepPlan, StepScope, StepContext, StepClient, StepTerm, StepSummary)
	case ModeSystem:
		if model == SystemModelLicense {
			return makeSteps(StepModel, StepCustom, StepDomainHosting, StepClient, StepTerm, StepSummary)
		}
		return makeSteps(StepModel, StepIncluded, StepClient, StepTerm, StepSummary)
	default:
		return makeSteps(StepProduct, StepIncluded, StepClient, StepTerm, StepSummary)
	}
}
