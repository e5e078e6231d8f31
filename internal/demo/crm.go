// Package demo holds the sample CRM and dashboard data shown in the
// proposal's demonstration panels. Nothing here is persisted.
package demo

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPipeline is returned for a pipeline key outside ia, humano and followup.
	ErrUnknownPipeline = errors.New("demo: unknown pipeline")
	// ErrUnknownSegment is returned for a contact segment not in Segments.
	ErrUnknownSegment = errors.New("demo: unknown segment")
)

// Temperature ranks how warm a lead is.
type Temperature string

const (
	Hot  Temperature = "quente"
	Warm Temperature = "morno"
	Cold Temperature = "frio"
)

// Deal is a card on a pipeline board.
type Deal struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Interest    string      `json:"interest"`
	Channel     string      `json:"channel"`
	Value       float64     `json:"value"`
	Score       int         `json:"score"`
	Temperature Temperature `json:"temperature"`
	Owner       string      `json:"owner"`
}

// Stage is one column of a pipeline.
type Stage struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
	Deals []Deal `json:"deals"`
}

// Pipeline groups stages worked by the same team.
type Pipeline struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Stages      []Stage `json:"stages"`
}

// StageTotal is the pipeline value sitting in one stage.
type StageTotal struct {
	Stage string  `json:"stage"`
	Deals int     `json:"deals"`
	Value float64 `json:"value"`
}

// Totals sums deal values per stage, in board order.
func (p Pipeline) Totals() []StageTotal {
	out := make([]StageTotal, 0, len(p.Stages))
	for _, s := range p.Stages {
		total := StageTotal{Stage: s.Key, Deals: len(s.Deals)}
		for _, d := range s.Deals {
			total.Value += d.Value
		}
		out = append(out, total)
	}
	return out
}

// Value is the sum of every deal on the board.
func (p Pipeline) Value() float64 {
	var v float64
	for _, t := range p.Totals() {
		v += t.Value
	}
	return v
}

var pipelines = []Pipeline{
	{
		Key: "ia", Label: "Atendimento IA", Description: "SDR e triagem automatizada",
		Stages: []Stage{
			{Key: "novo", Label: "Novo", Hint: "Entrada 24/7", Deals: []Deal{
				{ID: 1, Name: "Maria Silva", Interest: "Cirurgia LCA", Channel: "WhatsApp", Value: 4200, Score: 82, Temperature: Hot, Owner: "IA SDR"},
				{ID: 2, Name: "Joao Santos", Interest: "Artroscopia", Channel: "Instagram", Value: 1800, Score: 68, Temperature: Warm, Owner: "IA SDR"},
			}},
			{Key: "triagem", Label: "Triagem IA", Hint: "Qualificacao rapida", Deals: []Deal{
				{ID: 3, Name: "Carla Mendes", Interest: "Dor no joelho", Channel: "Google", Value: 780, Score: 61, Temperature: Warm, Owner: "IA SDR"},
				{ID: 4, Name: "Pedro Costa", Interest: "Artroplastia", Channel: "Indicacao", Value: 9200, Score: 91, Temperature: Hot, Owner: "IA SDR"},
			}},
			{Key: "qualificado", Label: "Qualificado", Hint: "Lead aprovado", Deals: []Deal{
				{ID: 5, Name: "Camila Rocha", Interest: "Menisco", Channel: "WhatsApp", Value: 1500, Score: 74, Temperature: Warm, Owner: "IA SDR"},
			}},
			{Key: "agendado", Label: "Agendamento", Hint: "Agenda integrada", Deals: []Deal{
				{ID: 6, Name: "Lucas Vieira", Interest: "Consulta premium", Channel: "Instagram", Value: 680, Score: 88, Temperature: Hot, Owner: "IA SDR"},
				{ID: 7, Name: "Juliana Alves", Interest: "Artroplastia", Channel: "WhatsApp", Value: 9800, Score: 93, Temperature: Hot, Owner: "IA SDR"},
			}},
		},
	},
	{
		Key: "humano", Label: "Atendimento humano", Description: "Time comercial e negociacao",
		Stages: []Stage{
			{Key: "repasse", Label: "Repasse", Hint: "Lead escalado", Deals: []Deal{
				{ID: 8, Name: "Rafael Silva", Interest: "Cirurgia LCA", Channel: "WhatsApp", Value: 6400, Score: 86, Temperature: Hot, Owner: "Ana (Closer)"},
				{ID: 9, Name: "Renata Gomes", Interest: "Artrose", Channel: "Google", Value: 2200, Score: 70, Temperature: Warm, Owner: "Carlos (Closer)"},
			}},
			{Key: "diagnostico", Label: "Diagnostico", Hint: "Descoberta", Deals: []Deal{
				{ID: 10, Name: "Priscila Luz", Interest: "Consulta premium", Channel: "Instagram", Value: 780, Score: 64, Temperature: Warm, Owner: "Ana (Closer)"},
			}},
			{Key: "proposta", Label: "Proposta", Hint: "Negociacao", Deals: []Deal{
				{ID: 11, Name: "Eduardo Lima", Interest: "Artroplastia", Channel: "Indicacao", Value: 11200, Score: 89, Temperature: Hot, Owner: "Carlos (Closer)"},
			}},
			{Key: "fechamento", Label: "Fechamento", Hint: "Deal fechado", Deals: []Deal{
				{ID: 12, Name: "Sofia Nunes", Interest: "Artroscopia", Channel: "WhatsApp", Value: 2400, Score: 78, Temperature: Warm, Owner: "Ana (Closer)"},
			}},
		},
	},
	{
		Key: "followup", Label: "Follow-up", Description: "Reativacao e recuperacao",
		Stages: []Stage{
			{Key: "sem-resposta", Label: "Sem resposta", Hint: "SLA expirado", Deals: []Deal{
				{ID: 13, Name: "Amanda Reis", Interest: "Dor no joelho", Channel: "Google", Value: 620, Score: 55, Temperature: Cold, Owner: "IA Follow-up"},
				{ID: 14, Name: "Thiago Souza", Interest: "Consulta premium", Channel: "Instagram", Value: 840, Score: 61, Temperature: Warm, Owner: "IA Follow-up"},
			}},
			{Key: "reativacao", Label: "Reativacao", Hint: "Sequencia IA", Deals: []Deal{
				{ID: 15, Name: "Natalia Porto", Interest: "Menisco", Channel: "WhatsApp", Value: 1350, Score: 69, Temperature: Warm, Owner: "IA Follow-up"},
			}},
			{Key: "recuperado", Label: "Recuperado", Hint: "Voltou ao funil", Deals: []Deal{
				{ID: 16, Name: "Bruno Silva", Interest: "Cirurgia LCA", Channel: "Indicacao", Value: 5200, Score: 84, Temperature: Hot, Owner: "IA Follow-up"},
			}},
			{Key: "perdido", Label: "Perdido", Hint: "Registrar motivo", Deals: []Deal{
				{ID: 17, Name: "Isabela Ramos", Interest: "Artrose", Channel: "Google", Value: 980, Score: 42, Temperature: Cold, Owner: "IA Follow-up"},
			}},
		},
	},
}

// Pipelines returns every board in display order.
func Pipelines() []Pipeline {
	return pipelines
}

// PipelineByKey returns the board for key ("" means the IA board).
func PipelineByKey(key string) (Pipeline, error) {
	if key == "" {
		return pipelines[0], nil
	}
	for _, p := range pipelines {
		if p.Key == key {
			return p, nil
		}
	}
	return Pipeline{}, fmt.Errorf("%w: %q", ErrUnknownPipeline, key)
}

// Contact is a row of the contact management view.
type Contact struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Stage       string      `json:"stage"`
	Channel     string      `json:"channel"`
	Score       int         `json:"score"`
	Temperature Temperature `json:"temperature"`
	Tags        []string    `json:"tags"`
	LastContact string      `json:"last_contact"`
	Owner       string      `json:"owner"`
	Specialty   string      `json:"specialty"`
}

var contacts = []Contact{
	{ID: 201, Name: "Marina Duarte", Stage: "Qualificado", Channel: "WhatsApp", Score: 88, Temperature: Hot, Tags: []string{"Cirurgia", "Convênio"}, LastContact: "Hoje 10:12", Owner: "IA SDR", Specialty: "Artroplastia"},
	{ID: 202, Name: "Rafaela Souza", Stage: "Proposta", Channel: "Instagram", Score: 74, Temperature: Warm, Tags: []string{"Consulta", "Particular"}, LastContact: "Hoje 09:42", Owner: "Ana (Closer)", Specialty: "Artroscopia"},
	{ID: 203, Name: "Helio Lima", Stage: "Sem resposta", Channel: "Google", Score: 54, Temperature: Cold, Tags: []string{"Follow-up"}, LastContact: "Ontem 18:10", Owner: "IA Follow-up", Specialty: "Dor no joelho"},
	{ID: 204, Name: "Isadora Pinto", Stage: "Agendado", Channel: "WhatsApp", Score: 91, Temperature: Hot, Tags: []string{"Cirurgia", "Alta prioridade"}, LastContact: "Hoje 08:55", Owner: "IA SDR", Specialty: "Reconstrucao LCA"},
	{ID: 205, Name: "Paulo Cesar", Stage: "Diagnostico", Channel: "Indicacao", Score: 79, Temperature: Warm, Tags: []string{"Consulta", "Indicacao"}, LastContact: "Hoje 08:20", Owner: "Carlos (Closer)", Specialty: "Artrose"},
}

// Contact segments offered by the contact view.
const (
	SegmentAll          = "Todos"
	SegmentQualified    = "Qualificados"
	SegmentHighPriority = "Alta prioridade"
	SegmentScheduled    = "Agendados"
	SegmentNoReply      = "Sem resposta"
)

// Segments lists the filters in display order.
func Segments() []string {
	return []string{SegmentAll, SegmentQualified, SegmentHighPriority, SegmentScheduled, SegmentNoReply}
}

const (
	qualifiedMinScore    = 70
	highPriorityMinScore = 85
)

// FilterContacts returns the contacts in segment ("" means all).
func FilterContacts(segment string) ([]Contact, error) {
	var match func(Contact) bool
	switch segment {
	case "", SegmentAll:
		match = func(Contact) bool { return true }
	case SegmentQualified:
		match = func(c Contact) bool { return c.Stage != "Sem resposta" && c.Score >= qualifiedMinScore }
	case SegmentHighPriority:
		match = func(c Contact) bool {
			return hasTag(c, "Alta prioridade") || (c.Temperature == Hot && c.Score >= highPriorityMinScore)
		}
	case SegmentScheduled:
		match = func(c Contact) bool { return c.Stage == "Agendado" }
	case SegmentNoReply:
		match = func(c Contact) bool { return c.Stage == "Sem resposta" }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSegment, segment)
	}

	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if match(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

func hasTag(c Contact, tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
