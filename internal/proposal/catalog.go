// Package proposal holds the commercial proposal shown to the clinic: the
// pricing catalog, the validity window and the page that renders them.
package proposal

import "time"

// Plan IDs. BundleID selects the full ecosystem offer.
const (
	PlanFAQ        = "faq"
	PlanScheduling = "agendamento"
	PlanTriage     = "triagem-noshow"
	PlanAfterSales = "pos-venda"
	BundleID       = "ecossistema-full"
)

const (
	defaultPreparedFor  = "CM Remédios"
	defaultProposalDate = "Outubro 2025"
)

// Finding is one item of the operational diagnosis.
type Finding struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Details []string `json:"details"`
}

// Gain is a headline expected outcome.
type Gain struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Note  string `json:"note"`
}

// Plan is an individually priced agent.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	SetupCost   float64  `json:"setup_cost"`
	MonthlyCost float64  `json:"monthly_cost"`
	Features    []string `json:"features"`
	Highlight   string   `json:"highlight,omitempty"`
}

// Bundle is the discounted package of every plan. The anchors are the
// list prices the discount is measured against.
type Bundle struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Items         []string `json:"items"`
	AnchorSetup   float64  `json:"anchor_setup"`
	Setup         float64  `json:"setup"`
	AnchorMonthly float64  `json:"anchor_monthly"`
	Monthly       float64  `json:"monthly"`
}

func (b Bundle) SetupSavings() float64   { return b.AnchorSetup - b.Setup }
func (b Bundle) MonthlySavings() float64 { return b.AnchorMonthly - b.Monthly }

// Milestone is one step of the rollout schedule.
type Milestone struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Proposal is the full commercial offer.
type Proposal struct {
	PreparedFor  string      `json:"prepared_for"`
	ProposalDate string      `json:"proposal_date"`
	ValidUntil   time.Time   `json:"valid_until"`
	Objectives   []string    `json:"objectives"`
	Diagnosis    []Finding   `json:"diagnosis"`
	Gains        []Gain      `json:"gains"`
	Plans        []Plan      `json:"plans"`
	Bundle       Bundle      `json:"bundle"`
	Schedule     []Milestone `json:"schedule"`
}

// Plan looks up a plan by ID.
func (p Proposal) Plan(id string) (Plan, bool) {
	for _, pl := range p.Plans {
		if pl.ID == id {
			return pl, true
		}
	}
	return Plan{}, false
}

// Offers reports whether id names a plan or the bundle.
func (p Proposal) Offers(id string) bool {
	if id == p.Bundle.ID {
		return true
	}
	_, ok := p.Plan(id)
	return ok
}

// Option customizes the catalog.
type Option func(*Proposal)

func WithPreparedFor(name string) Option {
	return func(p *Proposal) {
		if name != "" {
			p.PreparedFor = name
		}
	}
}

func WithValidUntil(t time.Time) Option {
	return func(p *Proposal) { p.ValidUntil = t }
}

// WithBundlePrice overrides the discounted bundle price. Anchors stay at
// the sum of the individual plans.
func WithBundlePrice(setup, monthly float64) Option {
	return func(p *Proposal) {
		p.Bundle.Setup = setup
		p.Bundle.Monthly = monthly
	}
}

// New builds the catalog. Bundle anchors are derived from the plans.
func New(opts ...Option) Proposal {
	plans := []Plan{
		{
			ID: PlanFAQ, Name: "Agente FAQ + Informações Gerais",
			SetupCost: 10000, MonthlyCost: 2000,
			Features: []string{
				"Desenvolvimento e Suporte",
				"Implementação sistema de OCR (extrai dados de documentos)",
				"Acesso ao Banco de Conhecimento personalizado",
			},
		},
		{
			ID: PlanScheduling, Name: "Agendamento Inteligente",
			SetupCost: 45000, MonthlyCost: 5000, Highlight: "Mais Popular",
			Features: []string{
				"Qualificação e Agendamento",
				"Desenvolvimento Personalizado",
				"Implementação e Treinamentos",
				"Suporte + Otimizações",
			},
		},
		{
			ID: PlanTriage, Name: "Agente Pré-triagem + Anti No-Show",
			SetupCost: 15000, MonthlyCost: 2000,
			Features: []string{
				"Desenvolvimento e Suporte",
				"Acesso ao Banco de Conhecimento",
				"Agente ativo (inicia as conversas)",
			},
		},
		{
			ID: PlanAfterSales, Name: "Agente Pós-venda",
			SetupCost: 10000, MonthlyCost: 2000,
			Features: []string{
				"Entra em contato com os pacientes e realiza pesquisa de satisfação",
				"Leitura e Análise de Sentimentos",
				"Sentimento positivo → envia link do Google",
				"Sentimento negativo → rapport + insight interno",
			},
		},
	}

	var anchorSetup, anchorMonthly float64
	for _, pl := range plans {
		anchorSetup += pl.SetupCost
		anchorMonthly += pl.MonthlyCost
	}

	p := Proposal{
		PreparedFor:  defaultPreparedFor,
		ProposalDate: defaultProposalDate,
		ValidUntil:   time.Date(2025, time.October, 31, 23, 59, 59, 0, time.UTC),
		Objectives: []string{
			"Atender 100% dos leads em segundos, 24 horas por dia",
			"Aumentar a conversão de leads em agendamentos",
			"Reduzir a taxa de no-show com confirmações ativas",
			"Dar visibilidade total do funil comercial",
		},
		Diagnosis: []Finding{
			{
				Title:   "Atendimento ineficiente",
				Summary: "Atendimento online sobrecarregado",
				Details: []string{
					"Não consegue qualificar ou agendar corretamente.",
					"Não consegue buscar de forma eficiente as dúvidas e informações.",
					"Atendimento presencial fica limitado porque são muitas tarefas a serem executadas.",
				},
			},
			{
				Title:   "Alto volume sem atendimento",
				Summary: "61% do tempo total da semana não tem atendimento humano (101 horas)",
				Details: []string{
					"50% a 70% dos usuários que iniciam contato fora do horário comercial e só recebem resposta no dia seguinte não dão continuidade à conversa.",
					"Se o volume mensal é de 1000 pessoas, isso representa uma perda de ao menos 500 possíveis agendamentos.",
				},
			},
			{
				Title:   "Múltiplos gaps",
				Summary: "Com alto volume de atendimento presencial e online, não é possível conferir corretamente",
				Details: []string{
					"Taxa de no-show e remarcação.",
					"Informações sobre exames e procedimentos.",
				},
			},
		},
		Gains: []Gain{
			{Value: "+40%", Label: "Conversão de Leads", Note: "Resposta imediata aumenta o aproveitamento."},
			{Value: "-60%", Label: "Taxa de No-Show", Note: "Confirmações multicanal e fila de espera ativa."},
			{Value: "24h", Label: "Operação Comercial", Note: "Captura de pacientes noturnos e finais de semana."},
			{Value: "100%", Label: "Visibilidade", Note: "Dados estruturados para tomada de decisão."},
		},
		Plans: plans,
		Bundle: Bundle{
			ID:   BundleID,
			Name: "Ecossistema Full",
			Items: []string{
				"SDR + Agendamento",
				"FAQ Inteligente",
				"Pré-triagem + Anti No-Show",
				"Pós-venda + Pesquisa",
				"CRM + Dashboard Executivo",
				"Integração ERP Completa",
			},
			AnchorSetup:   anchorSetup,
			Setup:         60000,
			AnchorMonthly: anchorMonthly,
			Monthly:       7000,
		},
		Schedule: []Milestone{
			{Step: 1, Title: "Kick-off", Description: "Reunião de alinhamento e acessos"},
			{Step: 2, Title: "Desenvolvimento", Description: "Configuração dos fluxos e integrações"},
			{Step: 3, Title: "Validação", Description: "Testes assistidos com a equipe"},
			{Step: 4, Title: "Go-Live", Description: "Virada de chave oficial"},
		},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
