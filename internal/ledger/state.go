// Package ledger holds the per-user fitness state (favorites, workout history,
// daily water) as pure transitions over State, plus the persistence effects
// that mirror each transition into a storage.Store.
package ledger

import (
	"math"

	"fitbuddy/backend/internal/model"
)

type State struct {
	Favorites []model.Exercise
	History   []model.WorkoutRecord
	Water     model.WaterState
}

// NewState is the state of a user with nothing stored, on the given day.
func NewState(day string) State {
	return State{
		Favorites: []model.Exercise{},
		History:   []model.WorkoutRecord{},
		Water: model.WaterState{
			Date:      day,
			DailyGoal: model.DefaultDailyWaterGoal,
		},
	}
}

// Action is one state transition. Reducers never mutate the state they are
// given.
type Action interface {
	reduce(State) State
}

func Reduce(state State, action Action) State {
	return action.reduce(state)
}

// ToggleFavorite removes the exercise when its id is already a favorite and
// appends it otherwise.
type ToggleFavorite struct {
	Exercise model.Exercise
}

func (a ToggleFavorite) reduce(s State) State {
	next := make([]model.Exercise, 0, len(s.Favorites)+1)
	found := false
	for _, item := range s.Favorites {
		if item.ID == a.Exercise.ID {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		next = append(next, a.Exercise)
	}
	s.Favorites = next
	return s
}

// SetFavorites replaces the set wholesale; used when hydrating from storage.
type SetFavorites struct {
	Items []model.Exercise
}

func (a SetFavorites) reduce(s State) State {
	s.Favorites = append(make([]model.Exercise, 0, len(a.Items)), a.Items...)
	return s
}

// LogWorkout prepends the record; the log stays newest first.
type LogWorkout struct {
	Record model.WorkoutRecord
}

func (a LogWorkout) reduce(s State) State {
	next := make([]model.WorkoutRecord, 0, len(s.History)+1)
	next = append(next, a.Record)
	s.History = append(next, s.History...)
	return s
}

type SetHistory struct {
	Items []model.WorkoutRecord
}

func (a SetHistory) reduce(s State) State {
	s.History = append(make([]model.WorkoutRecord, 0, len(a.Items)), a.Items...)
	return s
}

type ClearHistory struct{}

func (ClearHistory) reduce(s State) State {
	s.History = []model.WorkoutRecord{}
	return s
}

// AddWater adds ml to the day's intake; the total stays within [0, MaxInt].
type AddWater struct {
	Amount int
}

func (a AddWater) reduce(s State) State {
	total := s.Water.CurrentIntake + a.Amount
	if a.Amount > 0 && total < s.Water.CurrentIntake {
		total = math.MaxInt
	}
	s.Water.CurrentIntake = max(total, 0)
	return s
}

type ResetWater struct{}

func (ResetWater) reduce(s State) State {
	s.Water.CurrentIntake = 0
	return s
}

// SetWaterIntake hydrates the day's intake from storage.
type SetWaterIntake struct {
	Date   string
	Amount int
}

func (a SetWaterIntake) reduce(s State) State {
	s.Water.Date = a.Date
	s.Water.CurrentIntake = max(a.Amount, 0)
	return s
}

// SetGoal changes the daily goal; non-positive goals fall back to the default.
type SetGoal struct {
	Goal int
}

func (a SetGoal) reduce(s State) State {
	if a.Goal <= 0 {
		s.Water.DailyGoal = model.DefaultDailyWaterGoal
		return s
	}
	s.Water.DailyGoal = a.Goal
	return s
}
