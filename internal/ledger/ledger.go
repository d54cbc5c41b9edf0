package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fitbuddy/backend/internal/model"
	"fitbuddy/backend/internal/storage"
)

const (
	FavoritesKey = "favorites"
	HistoryKey   = "workout_history"
	WaterGoalKey = "water_goal"

	waterKeyPrefix = "water_"
	dayLayout      = "2006-01-02"
)

// WaterKey is the storage key of one UTC calendar day's intake.
func WaterKey(day string) string {
	return waterKeyPrefix + day
}

// Day formats t as the UTC calendar day used in water keys.
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// Ledger loads one owner's state from a store and runs the persistence effect
// of every dispatched action. Reads fail soft: anything missing or unreadable
// is logged and replaced by its default.
type Ledger struct {
	store  storage.Store
	clock  func() time.Time
	logger zerolog.Logger
}

func New(store storage.Store, clock func() time.Time, logger zerolog.Logger) *Ledger {
	if clock == nil {
		clock = time.Now
	}
	return &Ledger{store: store, clock: clock, logger: logger}
}

func (l *Ledger) Today() string {
	return Day(l.clock())
}

// Load reads all three ledgers.
func (l *Ledger) Load(ctx context.Context) State {
	state := NewState(l.Today())
	state = Reduce(state, SetFavorites{Items: l.LoadFavorites(ctx)})
	state = Reduce(state, SetHistory{Items: l.LoadHistory(ctx)})
	state.Water = l.LoadWater(ctx)
	return state
}

func (l *Ledger) LoadFavorites(ctx context.Context) []model.Exercise {
	var items []model.Exercise
	if !l.read(ctx, FavoritesKey, &items) || items == nil {
		return []model.Exercise{}
	}
	return items
}

func (l *Ledger) LoadHistory(ctx context.Context) []model.WorkoutRecord {
	var items []model.WorkoutRecord
	if !l.read(ctx, HistoryKey, &items) || items == nil {
		return []model.WorkoutRecord{}
	}
	return items
}

// LoadWater reads today's intake and the stored goal. A new day has no key
// yet and therefore starts at zero.
func (l *Ledger) LoadWater(ctx context.Context) model.WaterState {
	today := l.Today()
	state := NewState(today)

	var intake int
	if l.read(ctx, WaterKey(today), &intake) {
		state = Reduce(state, SetWaterIntake{Date: today, Amount: intake})
	}

	var goal int
	if l.read(ctx, WaterGoalKey, &goal) {
		state = Reduce(state, SetGoal{Goal: goal})
	}
	return state.Water
}

func (l *Ledger) read(ctx context.Context, key string, dst interface{}) bool {
	ok, err := storage.GetJSON(ctx, l.store, key, dst)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("stored value unreadable, using default")
		return false
	}
	return ok
}

// Dispatch applies action to state and persists the part of the state it
// touched. The returned state reflects the action even when persisting fails;
// the error is the outcome of the write and is left to the caller to report.
func (l *Ledger) Dispatch(ctx context.Context, state State, action Action) (State, error) {
	next := Reduce(state, action)

	var err error
	switch action.(type) {
	case ToggleFavorite:
		err = storage.SetJSON(ctx, l.store, FavoritesKey, next.Favorites)
	case LogWorkout:
		err = storage.SetJSON(ctx, l.store, HistoryKey, next.History)
	case ClearHistory:
		err = l.store.Remove(ctx, HistoryKey)
	case AddWater, ResetWater:
		err = storage.SetJSON(ctx, l.store, WaterKey(next.Water.Date), next.Water.CurrentIntake)
	case SetGoal:
		err = storage.SetJSON(ctx, l.store, WaterGoalKey, next.Water.DailyGoal)
	}
	return next, err
}

// ToggleFavorite loads the set, toggles exercise and writes the set back.
func (l *Ledger) ToggleFavorite(ctx context.Context, exercise model.Exercise) ([]model.Exercise, error) {
	state := Reduce(NewState(l.Today()), SetFavorites{Items: l.LoadFavorites(ctx)})
	next, err := l.Dispatch(ctx, state, ToggleFavorite{Exercise: exercise})
	return next.Favorites, err
}

// LogWorkout prepends record and rewrites the whole log, which costs O(n) per
// call in the size of the log.
func (l *Ledger) LogWorkout(ctx context.Context, record model.WorkoutRecord) ([]model.WorkoutRecord, error) {
	state := Reduce(NewState(l.Today()), SetHistory{Items: l.LoadHistory(ctx)})
	next, err := l.Dispatch(ctx, state, LogWorkout{Record: record})
	return next.History, err
}

func (l *Ledger) ClearHistory(ctx context.Context) error {
	_, err := l.Dispatch(ctx, NewState(l.Today()), ClearHistory{})
	return err
}

// AddWater adds amount to today's intake and returns the new water state.
func (l *Ledger) AddWater(ctx context.Context, amount int) (model.WaterState, error) {
	state := NewState(l.Today())
	state.Water = l.LoadWater(ctx)
	next, err := l.Dispatch(ctx, state, AddWater{Amount: amount})
	return next.Water, err
}

// ResetWater stores an explicit zero for today.
func (l *Ledger) ResetWater(ctx context.Context) (model.WaterState, error) {
	state := NewState(l.Today())
	state.Water = l.LoadWater(ctx)
	next, err := l.Dispatch(ctx, state, ResetWater{})
	return next.Water, err
}

func (l *Ledger) SetGoal(ctx context.Context, goal int) (model.WaterState, error) {
	state := NewState(l.Today())
	state.Water = l.LoadWater(ctx)
	next, err := l.Dispatch(ctx, state, SetGoal{Goal: goal})
	return next.Water, err
}
