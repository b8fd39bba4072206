package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"coffee-engine/internal/calculators"
	"coffee-engine/internal/jsonpatch"
	"coffee-engine/internal/model"
)

// ComputeScenario runs every calculation stage over in. It is pure and safe
// for concurrent use; inputs are assumed valid.
func ComputeScenario(in model.ScenarioInputs) model.ScenarioResult {
	res := model.ScenarioResult{Inputs: in}

	var findings []model.CalculationMessage
	for _, stage := range calculators.Pipeline() {
		findings = append(findings, stage.Apply(in, &res)...)
	}

	res.Findings = orderFindings(findings)
	return res
}

// Compute validates in before running the pipeline.
func Compute(in model.ScenarioInputs) (model.ScenarioResult, error) {
	if err := in.Validate(); err != nil {
		return model.ScenarioResult{}, err
	}
	return ComputeScenario(in), nil
}

// orderFindings sorts by level, keeps a capital shortfall ahead of every
// other critical finding and renumbers IDs by position.
func orderFindings(msgs []model.CalculationMessage) []model.CalculationMessage {
	out := make([]model.CalculationMessage, len(msgs))
	copy(out, msgs)

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := model.LevelRank(out[i].Level), model.LevelRank(out[j].Level)
		if ri != rj {
			return ri < rj
		}
		return out[i].Code == model.CodeCapitalShortfall && out[j].Code != model.CodeCapitalShortfall
	})

	for i := range out {
		out[i].ID = i
	}
	return out
}

func Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	var result *model.ScenarioResult
	var messages []model.CalculationMessage
	outcome := model.OutcomeSuccess

	if req.Inputs == nil {
		outcome = model.OutcomeFailure
		messages = []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeMissingInputs,
			Message: "Request carries no scenario inputs",
		}}
	} else if res, err := Compute(*req.Inputs); err != nil {
		outcome = model.OutcomeFailure
		messages = inputErrorMessages(err)
	} else {
		result = &res
		messages = res.Findings
	}

	if messages == nil {
		messages = []model.CalculationMessage{}
	}

	return &model.CalculationResponse{
		CalculationMetadata: metadata(req.TenantID, start, outcome),
		CalculationResult:   result,
		Messages:            messages,
	}
}

// Compare computes both scenarios and lists the result fields that differ.
func Compare(req *model.CompareRequest) (*model.CompareResponse, error) {
	start := time.Now()

	if req.Base == nil || req.Variant == nil {
		return nil, fmt.Errorf("compare: %w", errMissingScenario)
	}
	base, err := Compute(*req.Base)
	if err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}
	variant, err := Compute(*req.Variant)
	if err != nil {
		return nil, fmt.Errorf("variant scenario: %w", err)
	}

	changes, err := jsonpatch.Compare(base, variant)
	if err != nil {
		return nil, fmt.Errorf("diff scenarios: %w", err)
	}

	return &model.CompareResponse{
		CalculationMetadata: metadata(req.TenantID, start, model.OutcomeSuccess),
		Base:                &base,
		Variant:             &variant,
		Changes:             changes,
	}, nil
}

var errMissingScenario = errors.New("base and variant scenarios are required")

// IsMissingScenario reports whether err came from a compare request without
// both scenarios.
func IsMissingScenario(err error) bool {
	return errors.Is(err, errMissingScenario)
}

func inputErrorMessages(err error) []model.CalculationMessage {
	var ie *model.InputError
	if !errors.As(err, &ie) {
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidInput,
			Message: err.Error(),
		}}
	}

	msgs := make([]model.CalculationMessage, len(ie.Violations))
	for i, v := range ie.Violations {
		msgs[i] = model.CalculationMessage{
			ID:      i,
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidInput,
			Message: v.String(),
		}
	}
	return msgs
}

func metadata(tenantID string, start time.Time, outcome string) model.CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()

	return model.CalculationMetadata{
		CalculationID:          uuid.New().String(),
		TenantID:               tenantID,
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  elapsed.Milliseconds(),
		CalculationOutcome:     outcome,
	}
}
