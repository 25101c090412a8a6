// Package pipeline runs expansion and generation over vault notes, both
// synchronously and as queued jobs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/notegen/notegen/internal/callout"
	"github.com/notegen/notegen/internal/config"
	"github.com/notegen/notegen/internal/expand"
	"github.com/notegen/notegen/internal/generate"
	"github.com/notegen/notegen/internal/vault"
)

// Request describes one expansion or generation over a vault note.
// Optional fields override configured defaults.
type Request struct {
	Path              string   `json:"path"`
	IncludeLinks      *bool    `json:"include_links,omitempty"`
	ExclusionPatterns []string `json:"exclusion_patterns,omitempty"`
	ExcludedCallouts  []string `json:"excluded_callouts,omitempty"`

	generate.Params
}

// Service ties the vault, the expander, the callout filter, and the
// generation backend together.
type Service struct {
	vault *vault.Vault
	exp   *expand.Expander
	gen   *generate.Client
	cfg   config.Config
	log   *slog.Logger
}

func NewService(v *vault.Vault, exp *expand.Expander, gen *generate.Client, cfg config.Config, log *slog.Logger) *Service {
	return &Service{vault: v, exp: exp, gen: gen, cfg: cfg, log: log}
}

// ExpandNote expands a note's link graph and strips excluded callouts.
func (s *Service) ExpandNote(ctx context.Context, req Request) (string, error) {
	f := s.vault.Resolve(req.Path, nil)
	if f == nil {
		return "", fmt.Errorf("note not found: %s", req.Path)
	}
	text, err := s.vault.Read(ctx, f)
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}

	include := s.cfg.IncludePlainLinks
	if req.IncludeLinks != nil {
		include = *req.IncludeLinks
	}
	patterns := append(append([]string{}, s.cfg.LinkExclusions...), req.ExclusionPatterns...)

	expanded := s.exp.Expand(ctx, f, text, expand.Options{
		IncludeLinks:    include,
		ExcludePatterns: expand.CompilePatterns(patterns),
	})

	types := s.cfg.ExcludedCallouts
	if req.ExcludedCallouts != nil {
		types = req.ExcludedCallouts
	}
	return callout.Filter(expanded, types), nil
}

// ResolveParams merges a request's overrides onto configured defaults.
func (s *Service) ResolveParams(req Request) generate.Params {
	system := s.cfg.SystemPrompt
	if system == "" {
		system = generate.DefaultSystem
	}
	return generate.ResolveParams(generate.Params{
		Model:       s.cfg.AnthropicModel,
		System:      system,
		MaxTokens:   s.cfg.GenMaxTokens,
		Temperature: s.cfg.Temperature,
	}, req.Params)
}

// GenerateFromText sends prepared context to the backend, retrying
// transient failures with backoff.
func (s *Service) GenerateFromText(ctx context.Context, path, expanded string, p generate.Params) (*generate.Result, error) {
	prompt := generate.BuildPrompt(path, generate.ClampToBudget(expanded, s.cfg.MaxPromptTokens))

	var result *generate.Result
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		result, lastErr = s.gen.Generate(ctx, generate.Request{
			Model:        p.Model,
			System:       p.System,
			Prompt:       prompt,
			MaxTokens:    p.MaxTokens,
			Temperature:  p.Temperature,
			Continuation: p.Continuation,
		})
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		s.log.Warn("retryable generation error", "path", path, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return result, nil
}

// Generate runs the full pipeline for one request: expand, filter,
// generate.
func (s *Service) Generate(ctx context.Context, req Request) (*generate.Result, error) {
	expanded, err := s.ExpandNote(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.GenerateFromText(ctx, req.Path, expanded, s.ResolveParams(req))
}
