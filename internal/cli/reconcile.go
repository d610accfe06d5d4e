package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/thepsychonaut421/financio-recon/internal/adapters/bankcsv"
	"github.com/thepsychonaut421/financio-recon/internal/adapters/export"
	"github.com/thepsychonaut421/financio-recon/internal/adapters/invoicejson"
	"github.com/thepsychonaut421/financio-recon/internal/application/service"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/config"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/logging"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/storage"
)

// RunReconcile performs one batch reconciliation run from files.
func RunReconcile(cfg *config.Config, flags *ReconcileFlags) error {
	if flags.StatementPath == "" || flags.InvoicesPath == "" {
		return fmt.Errorf("both -statement and -invoices are required")
	}

	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "reconcile")

	transactions, err := bankcsv.ParseFile(flags.StatementPath)
	if err != nil {
		return fmt.Errorf("reading statement: %w", err)
	}

	invoices, err := invoicejson.LoadFile(flags.InvoicesPath)
	if err != nil {
		return fmt.Errorf("reading invoices: %w", err)
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer func() { _ = store.Close() }()

	svc := service.NewReconcileService(store, logger, cfg.Reconcile.Workers)
	result, err := svc.Reconcile(context.Background(), transactions, invoices)
	if err != nil {
		return err
	}

	report := export.BuildReport(result.RunID, result.StartedAt, result.Results)

	if flags.CSVOut != "" {
		if err := writeFile(flags.CSVOut, func(f *os.File) error {
			return export.WriteCSV(f, report)
		}); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
	}

	if flags.JSONOut != "" {
		if err := writeFile(flags.JSONOut, func(f *os.File) error {
			return export.WriteJSON(f, report)
		}); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	} else if flags.CSVOut == "" {
		// No output target: print the report to stdout.
		if err := export.WriteJSON(os.Stdout, report); err != nil {
			return err
		}
	}

	PrintSummary(os.Stderr, result)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
