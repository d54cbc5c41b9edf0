package service

import (
	"context"

	"fitbuddy/backend/internal/catalog"
	"fitbuddy/backend/internal/model"
)

// Catalog is the read side of the exercise catalog.
type Catalog interface {
	List(ctx context.Context) []model.Exercise
	Get(ctx context.Context, id string) model.Exercise
}

type ExerciseService struct {
	catalog Catalog
}

func NewExerciseService(c Catalog) *ExerciseService {
	return &ExerciseService{catalog: c}
}

func (s *ExerciseService) List(ctx context.Context, category, query string) []model.Exercise {
	return catalog.Filter(s.catalog.List(ctx), category, query)
}

func (s *ExerciseService) Get(ctx context.Context, id string) model.Exercise {
	return s.catalog.Get(ctx, id)
}

func (s *ExerciseService) Categories() []string {
	return catalog.Categories()
}

func (s *ExerciseService) DailyTip() model.Tip {
	return catalog.RandomTip()
}
