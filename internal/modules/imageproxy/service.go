// README: Image proxy service; validates prompts, consults the cache and delegates to a backend.
package imageproxy

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Service struct {
	generators map[Backend]Generator
	store      *Store
	logger     *zap.Logger
}

// NewService wires generators by backend. store may be nil to disable caching.
func NewService(generators map[Backend]Generator, store *Store, logger *zap.Logger) *Service {
	return &Service{
		generators: generators,
		store:      store,
		logger:     logger.With(zap.String("component", "imageproxy")),
	}
}

// Generate returns an image locator for prompt from backend.
// Cache errors are logged and never fail the request.
func (s *Service) Generate(ctx context.Context, backend Backend, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	gen, ok := s.generators[backend]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}

	if s.store != nil {
		url, hit, err := s.store.Get(ctx, backend, prompt)
		switch {
		case err != nil:
			s.logger.Warn("image cache read failed", zap.String("backend", string(backend)), zap.Error(err))
		case hit:
			s.logger.Debug("image cache hit", zap.String("backend", string(backend)))
			return url, nil
		}
	}

	url, err := gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		if err := s.store.Put(ctx, backend, prompt, url); err != nil {
			s.logger.Warn("image cache write failed", zap.String("backend", string(backend)), zap.Error(err))
		}
	}
	return url, nil
}

// For binds the service to one backend so it can stand in for a Generator.
func (s *Service) For(backend Backend) Generator {
	return boundGenerator{svc: s, backend: backend}
}

type boundGenerator struct {
	svc     *Service
	backend Backend
}

func (b boundGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return b.svc.Generate(ctx, b.backend, prompt)
}
