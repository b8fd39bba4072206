package handler

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/ternarybob/arbor"
	"github.com/valyala/fasthttp"

	"coffee-engine/internal/config"
	"coffee-engine/internal/costschedule"
	"coffee-engine/internal/engine"
	"coffee-engine/internal/model"
	"coffee-engine/internal/report"
)

// Handler serves the calculation API over fasthttp.
type Handler struct {
	logger    arbor.ILogger
	renderer  *report.Renderer
	schedules *costschedule.Registry
	report    config.ReportConfig
	now       func() time.Time
}

func New(logger arbor.ILogger, renderer *report.Renderer, schedules *costschedule.Registry, reportCfg config.ReportConfig) *Handler {
	return &Handler{
		logger:    logger,
		renderer:  renderer,
		schedules: schedules,
		report:    reportCfg,
		now:       time.Now,
	}
}

// HandleRequest routes ctx to the matching endpoint.
func (h *Handler) HandleRequest(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case "/calculate":
		h.post(ctx, h.handleCalculation)
	case "/report":
		h.post(ctx, h.handleReport)
	case "/compare":
		h.post(ctx, h.handleCompare)
	case "/defaults":
		h.get(ctx, h.handleDefaults)
	case "/schedules":
		h.get(ctx, h.handleSchedules)
	case "/health":
		h.get(ctx, h.handleHealth)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
	}

	h.logger.Debug().
		Str("method", string(ctx.Method())).
		Str("path", path).
		Int("status", ctx.Response.StatusCode()).
		Int("duration_ms", int(time.Since(start).Milliseconds())).
		Msg("Request handled")
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) get(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) handleCalculation(ctx *fasthttp.RequestCtx) {
	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp := engine.Process(&req)
	if resp.CalculationMetadata.CalculationOutcome == model.OutcomeFailure {
		h.logger.Warn().
			Str("tenant_id", req.TenantID).
			Int("messages", len(resp.Messages)).
			Msg("Calculation rejected")
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleReport(ctx *fasthttp.RequestCtx) {
	format, err := report.ParseFormat(string(ctx.QueryArgs().Peek("format")))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Inputs == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Scenario inputs are required")
		return
	}

	res, err := engine.Compute(*req.Inputs)
	if err != nil {
		writeInputError(ctx, err)
		return
	}

	doc := report.Build(res, report.Options{
		Title:       h.report.Title,
		Subtitle:    h.report.Subtitle,
		Footer:      h.report.Footer,
		Author:      h.report.Author,
		Disclaimer:  h.report.Disclaimer,
		GeneratedAt: h.now(),
		Schedules:   h.schedules,
	})

	out, err := h.renderer.Render(doc, format)
	if err != nil {
		h.logger.Error().Err(err).Str("format", string(format)).Msg("Failed to render report")
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to render report")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(format.ContentType())
	if format == report.FormatPDF {
		ctx.Response.Header.Set("Content-Disposition", `attachment; filename="coffee-shop-plan.pdf"`)
	}
	ctx.SetBody(out)
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	var req model.CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := engine.Compare(&req)
	switch {
	case engine.IsMissingScenario(err):
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	case errors.Is(err, model.ErrInvalidInputs):
		writeInputError(ctx, err)
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("Failed to compare scenarios")
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to compare scenarios")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func (h *Handler) handleDefaults(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, model.DefaultInputs())
}

type scheduleView struct {
	costschedule.Schedule
	Total float64 `json:"total"`
}

func (h *Handler) handleSchedules(ctx *fasthttp.RequestCtx) {
	all := h.schedules.All()
	views := make([]scheduleView, 0, len(all))
	for _, name := range costschedule.Names() {
		s := all[name]
		views = append(views, scheduleView{Schedule: s, Total: s.Total()})
	}
	writeJSON(ctx, fasthttp.StatusOK, views)
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func writeInputError(ctx *fasthttp.RequestCtx, err error) {
	resp := model.ErrorResponse{
		Status:  fasthttp.StatusUnprocessableEntity,
		Message: err.Error(),
	}
	var ie *model.InputError
	if errors.As(err, &ie) {
		resp.Violations = ie.Violations
	}
	writeJSON(ctx, resp.Status, resp)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Failed to encode response: %v", err))
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
