package proposal

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/clinic-proposal/internal/demo"
	"github.com/wolfman30/clinic-proposal/internal/engagement"
	"github.com/wolfman30/clinic-proposal/internal/roi"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("page.html").ParseFS(templatesFS, "templates/*.html"))

var proposalTracer = otel.Tracer("proposal.internal.proposal")

// Query parameters read by the page.
const (
	paramLeads  = "leads"
	paramRate   = "rate"
	paramTicket = "ticket"
	paramModal  = "modal"
	paramSub    = "sub"
)

var paramFields = map[string]string{
	paramLeads:  roi.FieldMonthlyLeads,
	paramRate:   roi.FieldCurrentConversionRatePct,
	paramTicket: roi.FieldAverageTicket,
}

type priceView struct {
	Plan
	Setup   string
	Monthly string
}

type bundleView struct {
	Bundle
	AnchorSetupText   string
	SetupText         string
	AnchorMonthlyText string
	MonthlyText       string
	SetupSavingsText  string
	MonthlySavings    string
}

type controlView struct {
	roi.Range
	Param string
	Value float64
	Fill  float64
}

type roiPanel struct {
	Input     roi.Input
	Result    roi.Result
	Formatted roi.Formatted
	Controls  []controlView
	Errors    []roi.FieldError
}

type pageData struct {
	Proposal   Proposal
	TimeLeft   TimeLeft
	Plans      []priceView
	Bundle     bundleView
	ROI        roiPanel
	View       ViewState
	ModalTitle string
	ModalError string
	Dashboard  demo.Dashboard
	CRM        demo.Pipeline
}

// RenderPage handles GET /
func (h *Handler) RenderPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := proposalTracer.Start(r.Context(), "proposal.render_page")
	defer span.End()

	q := r.URL.Query()
	data := pageData{
		Proposal: h.proposal,
		TimeLeft: Countdown(h.proposal.ValidUntil, h.now()),
		Plans:    h.prices(),
		Bundle:   h.bundle(),
	}

	panel, err := h.simulate(q)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("roi panel failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	data.ROI = panel

	if kind, err := ParseModal(q.Get(paramModal)); err != nil {
		data.ModalError = err.Error()
	} else if kind != "" {
		if err := data.View.Open(kind, q.Get(paramSub)); err != nil {
			data.ModalError = err.Error()
		} else {
			data.ModalTitle = data.View.Title()
			engagement.Record(ctx, h.engagement, h.logger, engagement.ModalOpen(string(kind)))
			span.SetAttributes(attribute.String("proposal.modal", string(kind)))
		}
	}
	switch {
	case data.View.Is(ModalDashboard):
		data.Dashboard = demo.SampleDashboard()
	case data.View.Is(ModalCRM):
		data.CRM, _ = demo.PipelineByKey("")
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		span.RecordError(err)
		h.logger.Error("failed to render proposal page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.metrics.ObservePageView("proposal")
	engagement.Record(ctx, h.engagement, h.logger, engagement.EventPageView)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// simulate projects the query's scenario. Unparseable or out-of-range
// values are reported and the default scenario is shown instead.
func (h *Handler) simulate(q url.Values) (roiPanel, error) {
	d := roi.DefaultInput()
	in := h.roiCfg.Input(d.MonthlyLeads, d.CurrentConversionRatePct, d.AverageTicket)

	var fieldErrs []roi.FieldError
	if v := q.Get(paramLeads); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fieldErrs = append(fieldErrs, roi.FieldError{Field: paramFields[paramLeads], Reason: "must be a whole number"})
		} else {
			in.MonthlyLeads = n
		}
	}
	for _, p := range []string{paramRate, paramTicket} {
		v := q.Get(p)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fieldErrs = append(fieldErrs, roi.FieldError{Field: paramFields[p], Reason: "must be a number"})
			continue
		}
		if p == paramRate {
			in.CurrentConversionRatePct = f
		} else {
			in.AverageTicket = f
		}
	}

	res, err := roi.Project(in, h.roiCfg)
	var invalid *roi.InvalidInputError
	if errors.As(err, &invalid) {
		fieldErrs = append(fieldErrs, invalid.Fields...)
	} else if err != nil {
		return roiPanel{}, err
	}
	if len(fieldErrs) > 0 {
		in = h.roiCfg.Input(d.MonthlyLeads, d.CurrentConversionRatePct, d.AverageTicket)
		if res, err = roi.Project(in, h.roiCfg); err != nil {
			return roiPanel{}, err
		}
	}

	controls := roi.Controls()
	views := make([]controlView, 0, len(controls))
	for _, c := range controls {
		var value float64
		var param string
		switch c.Field {
		case roi.FieldMonthlyLeads:
			value, param = float64(in.MonthlyLeads), paramLeads
		case roi.FieldCurrentConversionRatePct:
			value, param = in.CurrentConversionRatePct, paramRate
		case roi.FieldAverageTicket:
			value, param = in.AverageTicket, paramTicket
		}
		views = append(views, controlView{Range: c, Param: param, Value: value, Fill: c.FillPct(value)})
	}

	return roiPanel{
		Input:     in,
		Result:    res,
		Formatted: roi.Format(h.format, res),
		Controls:  views,
		Errors:    fieldErrs,
	}, nil
}

func (h *Handler) prices() []priceView {
	out := make([]priceView, 0, len(h.proposal.Plans))
	for _, p := range h.proposal.Plans {
		out = append(out, priceView{
			Plan:    p,
			Setup:   h.format.Currency(p.SetupCost),
			Monthly: h.format.Currency(p.MonthlyCost),
		})
	}
	return out
}

func (h *Handler) bundle() bundleView {
	b := h.proposal.Bundle
	return bundleView{
		Bundle:            b,
		AnchorSetupText:   h.format.Currency(b.AnchorSetup),
		SetupText:         h.format.Currency(b.Setup),
		AnchorMonthlyText: h.format.Currency(b.AnchorMonthly),
		MonthlyText:       h.format.Currency(b.Monthly),
		SetupSavingsText:  h.format.Currency(b.SetupSavings()),
		MonthlySavings:    h.format.Currency(b.MonthlySavings()),
	}
}
