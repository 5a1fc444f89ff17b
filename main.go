package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultConfigPath = "audit.yaml"
	previewRows       = 10
)

// AuditResult is everything one pipeline run produces: the fully
// cleaned, classified, and flagged tickets plus the aggregates and the
// loader diagnostics.
type AuditResult struct {
	Tickets           []Ticket
	Summary           Summary
	RowsLoaded        int
	DuplicatesRemoved int
	MedianResolution  float64
	MissingCounts     []ColumnMissing
}

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to optional YAML config")
	inputPath := flag.String("input", "", "Path to ticket CSV (overrides config)")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	jsonOut := flag.String("json", "", "Optional JSON report path")
	dbEnabled := flag.Bool("db", false, "Store audit run in Postgres (requires TICKET_QUALITY_AUDIT_DB_URL or DATABASE_URL)")
	dbSchema := flag.String("db-schema", "ticket_quality_audit", "Postgres schema for audit tables")
	dbTag := flag.String("db-tag", "", "Optional label for this audit run")
	initDB := flag.Bool("init-db", false, "Initialize database schema and seed data if empty")
	flag.Parse()

	cfg, err := loadAuditConfig(*configPath)
	if err != nil {
		exitWithError(err)
	}
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	result, err := runAudit(cfg.InputPath, cfg.issueRules(), cfg.flagRules())
	if err != nil {
		exitWithError(err)
	}

	printSummary(result.Summary)

	if err := writeOutputs(result, cfg.OutputDir); err != nil {
		exitWithError(err)
	}

	if *jsonOut != "" {
		report := AuditReport{Summary: result.Summary, Tickets: result.Tickets}
		if err := writeJSON(report, *jsonOut); err != nil {
			exitWithError(err)
		}
		fmt.Printf("JSON report saved to %s\n", *jsonOut)
	}

	if *dbEnabled || *initDB {
		dbURL := dbURLFromEnv()
		if dbURL == "" {
			exitWithError(errors.New("database URL missing; set TICKET_QUALITY_AUDIT_DB_URL or DATABASE_URL"))
		}
		dbCfg := DBConfig{
			URL:    dbURL,
			Schema: *dbSchema,
			Tag:    *dbTag,
		}
		seeded := false
		if *initDB {
			runID, err := seedDatabase(result, dbCfg)
			if err != nil {
				exitWithError(err)
			}
			if runID != "" {
				seeded = true
				fmt.Printf("Seeded Postgres with initial audit run (run_id=%s)\n", runID)
			}
		}
		if *dbEnabled {
			if seeded {
				fmt.Println("Skipped duplicate insert; current report already used for seed.")
			} else {
				runID, err := storeAuditInDB(result, dbCfg)
				if err != nil {
					exitWithError(err)
				}
				fmt.Printf("Stored audit run in Postgres (run_id=%s)\n", runID)
			}
		}
	}

	fmt.Println("\nProgram finished successfully.")
}

// runAudit executes the whole pipeline over one CSV file. Each stage
// takes the ticket slice from the previous one and returns a new slice;
// nothing feeds back.
func runAudit(path string, issueRules []issueRule, qualityRules flagRules) (AuditResult, error) {
	loaded, err := loadTickets(path)
	if err != nil {
		return AuditResult{}, err
	}
	printLoadDiagnostics(path, loaded)

	records, removed := dedupeRecords(loaded.Records)
	fmt.Printf("Duplicates removed: %d\n", removed)

	tickets := cleanTickets(records, loaded.Columns)
	tickets, median := imputeResolutionTimes(tickets)
	tickets = classifyTickets(tickets, issueRules)
	tickets = flagTickets(tickets, qualityRules)

	return AuditResult{
		Tickets:           tickets,
		Summary:           buildSummary(tickets),
		RowsLoaded:        len(loaded.Records),
		DuplicatesRemoved: removed,
		MedianResolution:  median,
		MissingCounts:     loaded.MissingCounts,
	}, nil
}

func printLoadDiagnostics(path string, loaded *LoadResult) {
	fmt.Println("Customer Support Ticket Quality Audit")
	fmt.Println(strings.Repeat("=", 38))
	fmt.Printf("Input: %s\n", filepath.Base(path))
	fmt.Printf("Rows loaded: %d\n", len(loaded.Records))

	fmt.Println("\nMissing values per column")
	fmt.Println(strings.Repeat("-", 38))
	for _, entry := range loaded.MissingCounts {
		fmt.Printf("%s: %d\n", entry.Column, entry.Missing)
	}

	fmt.Println("\nPreview")
	fmt.Println(strings.Repeat("-", 38))
	for i, record := range loaded.Records {
		if i >= previewRows {
			break
		}
		subject := getValue(record, loaded.Columns.subject)
		if subject == "" {
			subject = "(no subject)"
		}
		fmt.Printf("%d | %s\n", i+1, subject)
	}
	fmt.Println()
}

func writeOutputs(result AuditResult, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	reportPath := filepath.Join(outputDir, "report.txt")
	if err := writeReport(result.Summary, reportPath); err != nil {
		return err
	}
	fmt.Printf("\nReport saved to %s\n", reportPath)

	cleanedPath := filepath.Join(outputDir, "tickets_cleaned.csv")
	if err := exportTickets(result.Tickets, cleanedPath, false); err != nil {
		return err
	}
	fmt.Printf("Cleaned dataset saved to %s\n", cleanedPath)

	flaggedPath := filepath.Join(outputDir, "tickets_flagged.csv")
	if err := exportTickets(result.Tickets, flaggedPath, true); err != nil {
		return err
	}
	fmt.Printf("Flagged tickets saved to %s\n", flaggedPath)

	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
