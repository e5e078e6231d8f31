package proposal

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrUnknownModal = errors.New("proposal: unknown modal")
	ErrInvalidSub   = errors.New("proposal: invalid modal selection")
)

// ModalKind names a detail panel of the page.
type ModalKind string

const (
	ModalSolution     ModalKind = "solution"
	ModalCRM          ModalKind = "crm"
	ModalDashboard    ModalKind = "dashboard"
	ModalPhases       ModalKind = "phases"
	ModalValueInfo    ModalKind = "valueinfo"
	ModalConquistas   ModalKind = "conquistas"
	ModalInteligencia ModalKind = "inteligencia"
	ModalInsights     ModalKind = "insights"
	ModalRelatorios   ModalKind = "relatorios"
	ModalEtapa        ModalKind = "etapa"
	ModalROI          ModalKind = "roi"
	ModalBenefits     ModalKind = "benefits"
)

var modalTitles = map[ModalKind]string{
	ModalSolution:     "Fluxo",
	ModalCRM:          "CRM Integrado",
	ModalDashboard:    "Painel Executivo",
	ModalPhases:       "Detalhamento",
	ModalValueInfo:    "Composição de Valor",
	ModalConquistas:   "Ganhos Operacionais",
	ModalInteligencia: "Inteligência de Dados",
	ModalInsights:     "Insights de Negócio",
	ModalRelatorios:   "Relatórios Gerenciais",
	ModalEtapa:        "Etapa",
	ModalROI:          "Simulador de ROI",
	ModalBenefits:     "Benefícios Tangíveis",
}

var etapaTitles = map[int]string{1: "Recepção", 2: "Agente SDR", 3: "Triagem", 4: "Atendimento"}

var solutionTitles = map[string]string{
	PlanScheduling: "SDR & Agendamento",
	PlanFAQ:        "FAQ Educacional",
	PlanTriage:     "Anti No-Show",
}

var benefitKeys = map[string]bool{PlanScheduling: true, PlanFAQ: true, PlanTriage: true, "pesquisa": true}

// ParseModal validates a query value. The empty string is no modal.
func ParseModal(s string) (ModalKind, error) {
	if s == "" {
		return "", nil
	}
	k := ModalKind(s)
	if _, ok := modalTitles[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModal, s)
	}
	return k, nil
}

// ViewState tracks which panel is open. The zero value has none open.
type ViewState struct {
	modal ModalKind
	sub   string
}

// Open shows kind. Phases and etapa take a step 1-4, solution and benefits
// take a plan key; an empty sub picks the first.
func (v *ViewState) Open(kind ModalKind, sub string) error {
	if _, ok := modalTitles[kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModal, kind)
	}
	sub, err := normalizeSub(kind, sub)
	if err != nil {
		return err
	}
	v.modal, v.sub = kind, sub
	return nil
}

// Close hides any open panel.
func (v *ViewState) Close() {
	v.modal, v.sub = "", ""
}

// Active reports the open panel, if any.
func (v ViewState) Active() (ModalKind, string, bool) {
	return v.modal, v.sub, v.modal != ""
}

// Is reports whether kind is the open panel.
func (v ViewState) Is(kind ModalKind) bool {
	return v.modal == kind
}

// Title is the heading of the open panel.
func (v ViewState) Title() string {
	switch v.modal {
	case "":
		return ""
	case ModalPhases:
		return fmt.Sprintf("Fase %s: Detalhamento", v.sub)
	case ModalEtapa:
		n, _ := strconv.Atoi(v.sub)
		return fmt.Sprintf("Etapa %d - %s", n, etapaTitles[n])
	case ModalSolution:
		return solutionTitles[v.sub]
	}
	return modalTitles[v.modal]
}

func normalizeSub(kind ModalKind, sub string) (string, error) {
	switch kind {
	case ModalPhases, ModalEtapa:
		if sub == "" {
			return "1", nil
		}
		n, err := strconv.Atoi(sub)
		if err != nil || n < 1 || n > 4 {
			return "", fmt.Errorf("%w: %s %q", ErrInvalidSub, kind, sub)
		}
		return strconv.Itoa(n), nil
	case ModalSolution:
		if sub == "" {
			return PlanScheduling, nil
		}
		if _, ok := solutionTitles[sub]; !ok {
			return "", fmt.Errorf("%w: %s %q", ErrInvalidSub, kind, sub)
		}
		return sub, nil
	case ModalBenefits:
		if sub == "" {
			return PlanScheduling, nil
		}
		if !benefitKeys[sub] {
			return "", fmt.Errorf("%w: %s %q", ErrInvalidSub, kind, sub)
		}
		return sub, nil
	}
	if sub != "" {
		return "", fmt.Errorf("%w: %s takes no selection", ErrInvalidSub, kind)
	}
	return "", nil
}
