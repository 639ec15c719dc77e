// internal/workers/assessment/validate-assessment-step/handler.go
package validateassessmentstep

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"maturity-assessment/internal/assessment/validation"
	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/common/logger"
	"maturity-assessment/internal/common/metrics"
	"maturity-assessment/internal/common/observability"
	schemavalidation "maturity-assessment/internal/common/validation"
	"maturity-assessment/internal/models"
)

const TaskType = "validate-assessment-step"

var schema = schemavalidation.MustCompile(TaskType, inputSchema)

type Handler struct {
	config       *Config
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.Int64("job.key", job.Key))
	defer span.End()

	output, err := h.process(ctx, []byte(job.Variables))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.fail(ctx, client, job, err, start)
		return
	}
	span.SetAttributes(attribute.Bool("step.valid", output.IsValid))

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.fail(ctx, client, job, errors.NewInvalidInputError(err), start)
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, TaskType, "completed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "completed")
}

func (h *Handler) process(ctx context.Context, variables []byte) (*Output, error) {
	input, err := parseInput(variables)
	if err != nil {
		return nil, err
	}
	return h.Execute(ctx, input)
}

// Execute validates the submitted step data. An unknown step is reported as
// an invalid result, not as an error; only undecodable data fails the job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError(fmt.Errorf("input cannot be nil"))
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	step := models.StepID(input.StepID)
	raw := []byte(input.Data)
	if len(raw) == 0 {
		raw = []byte("null")
	}

	data, err := validation.DecodeStepData(step, raw)
	if err != nil && !errors.HasCode(err, errors.ErrCodeInvalidStep) {
		return nil, err
	}

	result := validation.Validate(step, data)
	if !result.IsValid {
		metrics.ValidationFailures.WithLabelValues(input.StepID).Inc()
	}

	h.logger.Info("step validated", map[string]interface{}{
		"stepId":        input.StepID,
		"isValid":       result.IsValid,
		"invalidFields": result.Fields,
	})

	return &Output{
		IsValid: result.IsValid,
		Errors:  result.Errors,
		Fields:  result.Fields,
	}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	code := string(errors.ErrCodeInternal)
	if stdErr, ok := errors.AsStandardError(err); ok {
		code = string(stdErr.Code)
	}
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.obs.RecordJobProcessed(ctx, TaskType, "failed")
	h.obs.RecordJobDuration(ctx, TaskType, time.Since(start), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func parseInput(variables []byte) (*Input, error) {
	result, err := schema.ValidateBytes(variables)
	if err != nil {
		return nil, errors.NewInvalidInputError(err)
	}
	if !result.Valid {
		return nil, errors.NewInvalidInputError(fmt.Errorf("%v", result.GetErrorMessages()))
	}

	var input Input
	if err := json.Unmarshal(variables, &input); err != nil {
		return nil, errors.NewInvalidInputError(err)
	}
	return &input, nil
}
