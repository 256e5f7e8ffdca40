package services

import (
	"context"
	"errors"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/apperrors"
	"github.com/Rajeshwar-203/fitness-ai-backend/metrics"
	"github.com/Rajeshwar-203/fitness-ai-backend/models"

	"go.uber.org/zap"
)

// AIPlanService builds prompts, calls the provider, normalizes the answer and
// records it when the caller supplied an identity.
type AIPlanService struct {
	gen     TextGenerator
	history *HistoryService
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewAIPlanService(gen TextGenerator, history *HistoryService, m *metrics.Metrics, log *zap.Logger) *AIPlanService {
	return &AIPlanService{gen: gen, history: history, metrics: m, log: log}
}

func (s *AIPlanService) GenerateMealPlan(ctx context.Context, req models.MealPlanRequest) (*models.MealPlan, error) {
	start := time.Now()
	text, err := s.generate(ctx, models.PlanKindMeal, BuildMealPlanPrompt(req))
	if err != nil {
		return nil, err
	}

	plan, err := NormalizeMealPlan(text)
	if err != nil {
		s.rejected(models.PlanKindMeal, start, err)
		return nil, err
	}
	s.metrics.ObserveAIRequest(string(models.PlanKindMeal), metrics.OutcomeOK, time.Since(start))

	s.record(ctx, models.PlanKindMeal, req.UserEmail, req, plan)
	return plan, nil
}

func (s *AIPlanService) GenerateWorkoutPlan(ctx context.Context, req models.WorkoutPlanRequest) (models.WorkoutPlan, error) {
	start := time.Now()
	text, err := s.generate(ctx, models.PlanKindWorkout, BuildWorkoutPlanPrompt(req))
	if err != nil {
		return nil, err
	}

	plan, err := NormalizeWorkoutPlan(text)
	if err != nil {
		s.rejected(models.PlanKindWorkout, start, err)
		return nil, err
	}
	s.metrics.ObserveAIRequest(string(models.PlanKindWorkout), metrics.OutcomeOK, time.Since(start))

	s.record(ctx, models.PlanKindWorkout, req.UserEmail, req, plan)
	return plan, nil
}

func (s *AIPlanService) generate(ctx context.Context, kind models.PlanKind, prompt string) (string, error) {
	start := time.Now()
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.ProviderUnavailable("AI provider request failed", err)
		}
		s.metrics.ObserveAIRequest(string(kind), outcomeOf(appErr), time.Since(start))
		s.log.Warn("ai provider call failed", zap.String("kind", string(kind)), zap.Error(err))
		return "", appErr
	}
	return text, nil
}

func (s *AIPlanService) rejected(kind models.PlanKind, start time.Time, err error) {
	s.metrics.ObserveAIRequest(string(kind), outcomeOf(err), time.Since(start))
	s.log.Warn("ai provider returned a malformed plan", zap.String("kind", string(kind)), zap.Error(err))
}

func outcomeOf(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeProviderUnavailable:
		return metrics.OutcomeProviderUnavailable
	case apperrors.CodeMalformedPlanResponse:
		return metrics.OutcomeMalformed
	}
	return metrics.OutcomeError
}

// record never fails the request; the plan was already generated.
func (s *AIPlanService) record(ctx context.Context, kind models.PlanKind, identity string, req, plan any) {
	if identity == "" {
		return
	}
	_, err := s.history.Record(ctx, kind, identity, req, plan)
	s.metrics.HistoryWrite(string(kind), err)
	if err != nil {
		s.log.Error("failed to record plan history",
			zap.String("kind", string(kind)),
			zap.String("email", identity),
			zap.Error(err),
		)
	}
}
