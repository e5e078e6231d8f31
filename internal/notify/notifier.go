package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/wolfman30/clinic-proposal/internal/leads"
	"github.com/wolfman30/clinic-proposal/pkg/logging"
)

const leadSubjectTmpl = `Proposta aprovada: {{.Lead.Name}} ({{.PlanName}})`

const leadBodyTmpl = `Nova solicitação de aprovação da proposta.

Nome: {{.Lead.Name}}
{{- if .Lead.Email}}
E-mail: {{.Lead.Email}}
{{- end}}
{{- if .Lead.Phone}}
Telefone: {{.Lead.Phone}}
{{- end}}
Plano: {{.PlanName}}
Recebido em: {{.Lead.CreatedAt.Format "02/01/2006 15:04"}} UTC
{{- if .Lead.Message}}

Mensagem:
{{.Lead.Message}}
{{- end}}
{{- if .AdminURL}}

Detalhes: {{.AdminURL}}
{{- end}}
`

var (
	leadSubject = template.Must(template.New("lead_subject").Option("missingkey=error").Parse(leadSubjectTmpl))
	leadBody    = template.Must(template.New("lead_body").Option("missingkey=error").Parse(leadBodyTmpl))
)

// NotifierConfig configures who hears about new leads.
type NotifierConfig struct {
	To        string
	BaseURL   string
	PlanNames map[string]string
}

// Notifier emails the sales team when a prospect approves the proposal.
type Notifier struct {
	sender    EmailSender
	to        string
	baseURL   string
	planNames map[string]string
	logger    *logging.Logger
}

func NewNotifier(sender EmailSender, cfg NotifierConfig, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Notifier{
		sender:    sender,
		to:        cfg.To,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		planNames: cfg.PlanNames,
		logger:    logger,
	}
}

type leadEmailData struct {
	Lead     *leads.Lead
	PlanName string
	AdminURL string
}

// LeadCreated sends the sales alert for lead. Without a sender or a
// recipient it only logs.
func (n *Notifier) LeadCreated(ctx context.Context, lead *leads.Lead) error {
	if lead == nil {
		return fmt.Errorf("notify: lead required")
	}
	if n.sender == nil || n.to == "" {
		n.logger.Debug("notify: sales email not configured, skipping", "lead_id", lead.ID)
		return nil
	}

	data := leadEmailData{Lead: lead, PlanName: lead.Plan}
	if name, ok := n.planNames[lead.Plan]; ok {
		data.PlanName = name
	}
	if n.baseURL != "" {
		data.AdminURL = n.baseURL + "/admin/leads/" + lead.ID
	}

	subject, err := render(leadSubject, data)
	if err != nil {
		return err
	}
	body, err := render(leadBody, data)
	if err != nil {
		return err
	}

	if err := n.sender.Send(ctx, EmailMessage{To: n.to, Subject: subject, Body: body}); err != nil {
		return fmt.Errorf("notify: lead email: %w", err)
	}
	return nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

var _ leads.Notifier = (*Notifier)(nil)
