package staticcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-book/internal/generator"
)

type buildCall struct {
	options generator.BuildOptions
}

type stubGenerator struct {
	buildCalls []buildCall
	cleanCalls int

	buildResult *generator.BuildResult
	buildErr    error
	cleanErr    error
}

func (s *stubGenerator) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	s.buildCalls = append(s.buildCalls, buildCall{options: opts})
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	return s.buildResult, nil
}

func (s *stubGenerator) Clean(ctx context.Context) error {
	s.cleanCalls++
	return s.cleanErr
}

func enabledGates() FeatureGates {
	return FeatureGates{GeneratorEnabled: func() bool { return true }}
}

func TestBuildSiteHandlerForwardsFilters(t *testing.T) {
	service := &stubGenerator{buildResult: &generator.BuildResult{PagesBuilt: 3}}
	handler := NewBuildSiteHandler(service, nil, enabledGates())

	var envelope ResultEnvelope
	msg := BuildSiteCommand{
		Parts:          []string{"basics", " basics ", "advanced"},
		Slugs:          []string{"variables"},
		DryRun:         true,
		ResultCallback: func(e ResultEnvelope) { envelope = e },
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(service.buildCalls) != 1 {
		t.Fatalf("expected one build call, got %d", len(service.buildCalls))
	}
	opts := service.buildCalls[0].options
	if len(opts.Parts) != 2 {
		t.Fatalf("expected deduplicated parts, got %v", opts.Parts)
	}
	if len(opts.Slugs) != 1 || opts.Slugs[0] != "variables" {
		t.Fatalf("unexpected slugs %v", opts.Slugs)
	}
	if !opts.DryRun {
		t.Fatal("expected dry run option")
	}
	if envelope.Result == nil || envelope.Result.PagesBuilt != 3 {
		t.Fatalf("expected build result in callback, got %+v", envelope.Result)
	}
}

func TestBuildSiteHandlerRejectsEmptyFilterValues(t *testing.T) {
	handler := NewBuildSiteHandler(&stubGenerator{}, nil, enabledGates())

	err := handler.Execute(context.Background(), BuildSiteCommand{Parts: []string{"  "}})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestBuildSiteHandlerDisabledGenerator(t *testing.T) {
	service := &stubGenerator{}
	handler := NewBuildSiteHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
	if len(service.buildCalls) != 0 {
		t.Fatal("expected no build calls")
	}
}

func TestBuildSiteHandlerPropagatesBuildError(t *testing.T) {
	service := &stubGenerator{buildErr: errors.New("render failed")}
	handler := NewBuildSiteHandler(service, nil, enabledGates())

	callbackInvoked := false
	err := handler.Execute(context.Background(), BuildSiteCommand{
		ResultCallback: func(ResultEnvelope) { callbackInvoked = true },
	})
	if err == nil {
		t.Fatal("expected build error")
	}
	if !callbackInvoked {
		t.Fatal("expected callback to run even when build fails")
	}
}

func TestCleanSiteHandlerInvokesClean(t *testing.T) {
	service := &stubGenerator{}
	handler := NewCleanSiteHandler(service, nil, enabledGates())

	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if service.cleanCalls != 1 {
		t.Fatalf("expected one clean call, got %d", service.cleanCalls)
	}
}

func TestCleanSiteHandlerDisabledGenerator(t *testing.T) {
	service := &stubGenerator{}
	handler := NewCleanSiteHandler(service, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), CleanSiteCommand{}); !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
	if service.cleanCalls != 0 {
		t.Fatal("expected no clean calls")
	}
}
