// Package cli implements the command-line entry points: the API
// server and one-shot batch reconciliation.
package cli

import "flag"

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port       int
	ConfigPath string
	Verbose    bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ReconcileFlags holds the CLI flags for a batch reconciliation run.
type ReconcileFlags struct {
	StatementPath string
	InvoicesPath  string
	CSVOut        string
	JSONOut       string
	ConfigPath    string
	Verbose       bool
}

// ParseReconcileFlags parses command line flags for the reconcile command.
func ParseReconcileFlags() *ReconcileFlags {
	flags := &ReconcileFlags{}
	flag.StringVar(&flags.StatementPath, "statement", "", "Path to the bank statement CSV file (required)")
	flag.StringVar(&flags.InvoicesPath, "invoices", "", "Path to the extracted invoices JSON file (required)")
	flag.StringVar(&flags.CSVOut, "csv", "", "Write result rows to this CSV file")
	flag.StringVar(&flags.JSONOut, "json", "", "Write the full report to this JSON file (default: stdout)")
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
