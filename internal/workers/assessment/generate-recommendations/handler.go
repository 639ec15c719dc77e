// internal/workers/assessment/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"maturity-assessment/internal/assessment/recommendation"
	"maturity-assessment/internal/assessment/scoring"
	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/common/logger"
	"maturity-assessment/internal/common/metrics"
	"maturity-assessment/internal/common/observability"
	"maturity-assessment/internal/common/validation"
)

const TaskType = "generate-recommendations"

var schema = validation.MustCompile(TaskType, inputSchema)

type Handler struct {
	config       *Config
	recommender  *recommendation.Engine
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, scorer *scoring.Engine, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		recommender:  recommendation.New(scorer),
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
	span.SetAttributes(attribute.Int("recommendations.count", output.Count))

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.fail(ctx, client, job, errors.NewRecommendationFailedError(err), start)
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

// Execute builds the filtered recommendation list. The maturity level comes
// from the assessment's results when present, otherwise it is scored here.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidInputError(fmt.Errorf("input cannot be nil"))
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	a := input.Assessment.Clone()
	a.Normalize()

	level := h.recommender.Level(a)
	recs := h.recommender.Recommend(a)
	if h.config.MaxItems > 0 && len(recs) > h.config.MaxItems {
		recs = recs[:h.config.MaxItems]
	}

	h.logger.Info("recommendations generated", map[string]interface{}{
		"maturityLevel": level,
		"count":         len(recs),
		"goals":         len(a.SelectedGoals),
	})

	return &Output{
		Recommendations: recs,
		Count:           len(recs),
		MaturityLevel:   level,
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
