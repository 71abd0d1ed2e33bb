package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kaufy/projection-engine/internal/config"
	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/engine"
	"github.com/kaufy/projection-engine/internal/repository"
)

type ProjectionService struct {
	cache  repository.ProjectionCache
	config *config.Config
	logger *logrus.Logger
}

func NewProjectionService(
	cache repository.ProjectionCache,
	config *config.Config,
	logger *logrus.Logger,
) *ProjectionService {
	return &ProjectionService{
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Project validates input and returns its projection, served from the cache when possible
func (s *ProjectionService) Project(ctx context.Context, input domain.ProjectionInput, milestones []int) (*domain.ProjectionResult, error) {
	if err := engine.Validate(input); err != nil {
		return nil, err
	}
	return s.project(ctx, input, milestones), nil
}

// Combine merges a prospective acquisition into base and projects the result
func (s *ProjectionService) Combine(ctx context.Context, base domain.ProjectionInput, asset domain.NewAsset, milestones []int) (*domain.CombineResponse, error) {
	if err := engine.Validate(base); err != nil {
		return nil, err
	}
	if err := engine.ValidateAsset(asset); err != nil {
		return nil, err
	}

	combined := engine.CombineWithAdditionalAsset(base, asset)

	return &domain.CombineResponse{
		Combined:   combined,
		Projection: s.project(ctx, combined, milestones),
	}, nil
}

// project runs the engine behind the cache. Cache failures only cost the cache.
func (s *ProjectionService) project(ctx context.Context, input domain.ProjectionInput, milestones []int) *domain.ProjectionResult {
	key, err := repository.ProjectionCacheKey(input)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to derive projection cache key")
		return engine.Run(input, milestones)
	}

	snapshots, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Projection cache read failed")
	}
	if found {
		result := engine.Derive(input, snapshots, milestones)
		result.FromCache = true
		return result
	}

	result := engine.Run(input, milestones)
	if err := s.cache.Set(ctx, key, result.Snapshots, s.config.GetCacheTTL()); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Projection cache write failed")
	}

	s.logger.WithFields(logrus.Fields{
		"key":         key,
		"horizon":     result.Summary.HorizonYears,
		"fullyRepaid": result.Summary.FullyRepaid,
		"degenerate":  result.Degenerate,
	}).Debug("Projection computed")

	return result
}
