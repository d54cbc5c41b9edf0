package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "fitbuddy/backend/internal/errors"
	"fitbuddy/backend/internal/formula"
	"fitbuddy/backend/internal/ledger"
	"fitbuddy/backend/internal/metrics"
	"fitbuddy/backend/internal/model"
	"fitbuddy/backend/internal/storage"
)

// MaxWaterPerAdd caps a single water entry in ml.
const MaxWaterPerAdd = 10000

// ExerciseSource resolves catalog entries for completed workouts.
type ExerciseSource interface {
	Get(ctx context.Context, id string) model.Exercise
}

// TrackerService exposes one user's favorites, workout history and water
// intake. Writes that fail are logged and counted but never reported to the
// caller; the response carries the state the action produced.
type TrackerService struct {
	backend  storage.Backend
	catalog  ExerciseSource
	recorder metrics.Recorder
	logger   zerolog.Logger
	clock    func() time.Time
	locks    *userLocks
}

func NewTrackerService(
	backend storage.Backend,
	catalog ExerciseSource,
	recorder metrics.Recorder,
	logger zerolog.Logger,
	clock func() time.Time,
) *TrackerService {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if clock == nil {
		clock = time.Now
	}
	return &TrackerService{
		backend:  backend,
		catalog:  catalog,
		recorder: recorder,
		logger:   logger,
		clock:    clock,
		locks:    newUserLocks(),
	}
}

type HistoryView struct {
	History []model.WorkoutRecord `json:"history"`
	Stats   model.HistoryStats    `json:"stats"`
}

type WaterView struct {
	model.WaterState
	Progress float64 `json:"progress"`
}

type CompleteWorkoutInput struct {
	ExerciseID string   `json:"exerciseId"`
	WeightLbs  *float64 `json:"weightLbs"`
}

func (s *TrackerService) ledgerFor(userID string) *ledger.Ledger {
	logger := s.logger.With().Str("owner", userID).Logger()
	return ledger.New(s.backend.Namespace(userID), s.clock, logger)
}

func (s *TrackerService) reportPersist(userID, ledgerName string, err error) {
	if err == nil {
		return
	}
	s.recorder.IncPersistFailures(ledgerName)
	s.logger.Error().Err(err).Str("owner", userID).Str("ledger", ledgerName).Msg("failed to persist ledger")
}

func (s *TrackerService) Favorites(ctx context.Context, userID string) []model.Exercise {
	return s.ledgerFor(userID).LoadFavorites(ctx)
}

func (s *TrackerService) ToggleFavorite(ctx context.Context, userID string, exercise model.Exercise) ([]model.Exercise, *apperrors.APIError) {
	if strings.TrimSpace(exercise.ID) == "" {
		return nil, apperrors.BadRequest("invalid_exercise", "exercise id is required")
	}

	if exercise.Title == "" {
		// bare id: store the catalog copy when the catalog knows it
		if resolved := s.catalog.Get(ctx, exercise.ID); resolved.ID == exercise.ID {
			exercise = resolved
		}
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	items, err := s.ledgerFor(userID).ToggleFavorite(ctx, exercise)
	s.reportPersist(userID, "favorites", err)
	return items, nil
}

func (s *TrackerService) History(ctx context.Context, userID string) HistoryView {
	history := s.ledgerFor(userID).LoadHistory(ctx)
	return HistoryView{History: history, Stats: ledger.Stats(history)}
}

// LogWorkout records a client-built workout. Missing id and timestamp are
// filled in.
func (s *TrackerService) LogWorkout(ctx context.Context, userID string, record model.WorkoutRecord) (HistoryView, *apperrors.APIError) {
	if strings.TrimSpace(record.Title) == "" {
		return HistoryView{}, apperrors.BadRequest("invalid_workout", "title is required")
	}
	if record.Calories < 0 {
		return HistoryView{}, apperrors.InvalidInput("calories must not be negative")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp == 0 {
		record.Timestamp = s.clock().UnixMilli()
	}
	return s.appendWorkout(ctx, userID, record), nil
}

// CompleteWorkout logs a catalog exercise, estimating calories from its title
// and duration.
func (s *TrackerService) CompleteWorkout(ctx context.Context, userID string, in CompleteWorkoutInput) (model.WorkoutRecord, HistoryView, *apperrors.APIError) {
	if strings.TrimSpace(in.ExerciseID) == "" {
		return model.WorkoutRecord{}, HistoryView{}, apperrors.BadRequest("invalid_exercise", "exerciseId is required")
	}
	weight := formula.DefaultWeightLbs
	if in.WeightLbs != nil {
		weight = *in.WeightLbs
	}

	exercise := s.catalog.Get(ctx, in.ExerciseID)
	minutes := ledger.ParseDurationMinutes(exercise.Duration)
	if minutes < 0 {
		minutes = 0
	}
	calories, err := formula.CaloriesBurned(exercise.Title, float64(minutes), weight)
	if err != nil {
		return model.WorkoutRecord{}, HistoryView{}, apperrors.InvalidInput("weightLbs must be a finite, non-negative number")
	}

	record := model.WorkoutRecord{
		ID:         uuid.NewString(),
		ExerciseID: exercise.ID,
		Title:      exercise.Title,
		Timestamp:  s.clock().UnixMilli(),
		Duration:   exercise.Duration,
		Calories:   calories,
	}
	return record, s.appendWorkout(ctx, userID, record), nil
}

func (s *TrackerService) appendWorkout(ctx context.Context, userID string, record model.WorkoutRecord) HistoryView {
	unlock := s.locks.lock(userID)
	defer unlock()

	history, err := s.ledgerFor(userID).LogWorkout(ctx, record)
	s.reportPersist(userID, "history", err)
	return HistoryView{History: history, Stats: ledger.Stats(history)}
}

func (s *TrackerService) ClearHistory(ctx context.Context, userID string) HistoryView {
	unlock := s.locks.lock(userID)
	defer unlock()

	s.reportPersist(userID, "history", s.ledgerFor(userID).ClearHistory(ctx))
	return HistoryView{History: []model.WorkoutRecord{}, Stats: ledger.Stats(nil)}
}

func (s *TrackerService) Water(ctx context.Context, userID string) WaterView {
	return newWaterView(s.ledgerFor(userID).LoadWater(ctx))
}

func (s *TrackerService) AddWater(ctx context.Context, userID string, amount int) (WaterView, *apperrors.APIError) {
	if amount <= 0 {
		return WaterView{}, apperrors.InvalidInput("amount must be a positive number of millilitres")
	}
	if amount > MaxWaterPerAdd {
		return WaterView{}, apperrors.InvalidInput("amount must not exceed 10000 millilitres")
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	water, err := s.ledgerFor(userID).AddWater(ctx, amount)
	s.reportPersist(userID, "water", err)
	return newWaterView(water), nil
}

func (s *TrackerService) ResetWater(ctx context.Context, userID string) WaterView {
	unlock := s.locks.lock(userID)
	defer unlock()

	water, err := s.ledgerFor(userID).ResetWater(ctx)
	s.reportPersist(userID, "water", err)
	return newWaterView(water)
}

func (s *TrackerService) SetWaterGoal(ctx context.Context, userID string, goal int) (WaterView, *apperrors.APIError) {
	if goal <= 0 {
		return WaterView{}, apperrors.InvalidInput("goal must be a positive number of millilitres")
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	water, err := s.ledgerFor(userID).SetGoal(ctx, goal)
	s.reportPersist(userID, "water", err)
	return newWaterView(water), nil
}

func newWaterView(water model.WaterState) WaterView {
	return WaterView{WaterState: water, Progress: water.Progress()}
}

// userLocks serializes read-modify-write sequences per user.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
