package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yasar2385/family-address-book/internal/domain/services"
	"github.com/yasar2385/family-address-book/internal/infrastructure/parsers"
)

// ImportHandler handles importing members from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "csv", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing members
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []services.ImportError
}

// Handle imports members from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return h.handle(ctx, parser, file, opts)
}

// HandleReader imports members read from r in the given format.
func (h *ImportHandler) HandleReader(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	parser := parsers.ForFormat(opts.Format)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format: %q", opts.Format)
	}
	return h.handle(ctx, parser, r, opts)
}

func (h *ImportHandler) handle(ctx context.Context, parser parsers.Parser, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	raw, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(raw) == 0 {
		return &ImportResult{}, nil
	}

	serviceOpts := services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	}

	serviceResult, err := h.service.Import(ctx, raw, serviceOpts)
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Imported: serviceResult.Imported,
		Skipped:  serviceResult.Skipped,
		Errors:   serviceResult.Errors,
	}, nil
}
