// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export runs document generation off the caller's goroutine and
// reports progress through a callback. The worker captures a snapshot of
// the project at start; edits made while an export runs do not affect the
// document being written.
// Implements: prd005-exportacion (R4, R5);
//
//	docs/ARCHITECTURE § Export.
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/escriba/internal/assemble"
	"github.com/pdiddy/escriba/internal/docx"
)

// Progress receives the export fraction in [0, 1]. It is called from the
// worker goroutine; a nil Progress is valid and reports nothing.
type Progress func(fraction float64)

// Steps of the export pipeline with their completion fractions. Assembly
// is cheap next to the container write, so the fractions front-load the
// bar the way the progress display expects.
const (
	stepValidated = 0.10
	stepAssembled = 0.40
	stepRendered  = 0.90
	stepDone      = 1.0
)

// Request bundles everything one export needs.
type Request struct {
	Path     string
	Input    assemble.Input
	Options  assemble.Options
	Progress Progress
}

// Result is delivered on the channel returned by Start.
type Result struct {
	Path   string
	Blocks int
	Err    error
}

// Start launches the export worker and returns its result channel. The
// channel is buffered; the worker never blocks on a caller that went away.
// Cancelling ctx abandons the export between steps.
func Start(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		out <- run(ctx, req)
	}()
	return out
}

// Run performs the export synchronously. CLI callers that have nothing to
// do meanwhile use it directly.
func Run(ctx context.Context, req Request) Result {
	return run(ctx, req)
}

func run(ctx context.Context, req Request) Result {
	report := req.Progress
	if report == nil {
		report = func(float64) {}
	}

	fail := func(err error) Result {
		// An aborted export resets the bar rather than freezing it
		// mid-flight.
		report(0)
		return Result{Path: req.Path, Err: err}
	}

	if strings.TrimSpace(req.Path) == "" {
		return fail(fmt.Errorf("ruta de salida vacía"))
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	report(stepValidated)

	blocks := assemble.Build(req.Input, req.Options)
	if len(blocks) == 0 {
		return fail(fmt.Errorf("el documento no tiene contenido que exportar"))
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	report(stepAssembled)

	if err := docx.Save(req.Path, blocks, req.Input.Format); err != nil {
		return fail(fmt.Errorf("writing %s: %w", req.Path, err))
	}
	report(stepRendered)

	report(stepDone)
	return Result{Path: req.Path, Blocks: len(blocks)}
}
