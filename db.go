package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type DBConfig struct {
	URL    string
	Schema string
	Tag    string
}

func dbURLFromEnv() string {
	if value := strings.TrimSpace(os.Getenv("TICKET_QUALITY_AUDIT_DB_URL")); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}

func sanitizeSchema(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("db schema is required")
	}
	valid := regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	if !valid.MatchString(value) {
		return "", fmt.Errorf("invalid schema name: %s", value)
	}
	return value, nil
}

func seedDatabase(result AuditResult, cfg DBConfig) (string, error) {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", err
	}

	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", err
	}

	var count int
	if err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s.audit_runs`, schema)).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		fmt.Println("Audit data already present; skipping seed.")
		return "", nil
	}

	return storeAuditTx(ctx, db, result, schema, cfg.Tag)
}

func storeAuditInDB(result AuditResult, cfg DBConfig) (string, error) {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return "", err
	}

	if err := ensureSchema(ctx, db, schema); err != nil {
		return "", err
	}

	return storeAuditTx(ctx, db, result, schema, cfg.Tag)
}

func storeAuditTx(ctx context.Context, db *sql.DB, result AuditResult, schema string, tag string) (string, error) {
	runID := uuid.New()
	summary := result.Summary

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.audit_runs (
			id, total_tickets, flagged_tickets, flagged_percent,
			avg_resolution_hours, avg_resolution_flagged_hours,
			avg_resolution_not_flagged_hours, duplicates_removed, run_tag
		) VALUES (
			$1,$2,$3,$4,
			$5,$6,
			$7,$8,$9
		)`, schema),
		runID,
		summary.TotalTickets,
		summary.FlaggedTickets,
		summary.FlaggedPercent,
		summary.AvgResolutionHours,
		nullFloat(summary.AvgResolutionFlagged),
		nullFloat(summary.AvgResolutionNotFlagged),
		result.DuplicatesRemoved,
		nullString(tag),
	)
	if err != nil {
		_ = tx.Rollback()
		return "", err
	}

	insertIssueSQL := fmt.Sprintf(`
		INSERT INTO %s.audit_issue_counts (
			id, run_id, issue_type, ticket_count
		) VALUES (
			$1,$2,$3,$4
		)`, schema)

	for _, entry := range summary.IssueCounts {
		_, err = tx.ExecContext(ctx, insertIssueSQL,
			uuid.New(),
			runID,
			entry.IssueType,
			entry.Count,
		)
		if err != nil {
			_ = tx.Rollback()
			return "", err
		}
	}

	insertFlaggedSQL := fmt.Sprintf(`
		INSERT INTO %s.audit_flagged_tickets (
			id, run_id, priority, status, subject, message,
			resolution_time_hours, created_date, issue_type, flag_reason
		) VALUES (
			$1,$2,$3,$4,$5,$6,
			$7,$8,$9,$10
		)`, schema)

	for _, ticket := range result.Tickets {
		if !ticket.IsFlagged {
			continue
		}
		_, err = tx.ExecContext(ctx, insertFlaggedSQL,
			uuid.New(),
			runID,
			ticket.Priority,
			ticket.Status,
			nullString(ticket.Subject),
			nullString(ticket.Message),
			ticket.ResolutionTimeHours,
			nullDate(ticket.CreatedDate),
			ticket.IssueType,
			ticket.FlagReason,
		)
		if err != nil {
			_ = tx.Rollback()
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID.String(), nil
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema)); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.audit_runs (
			id uuid PRIMARY KEY,
			total_tickets integer NOT NULL,
			flagged_tickets integer NOT NULL,
			flagged_percent numeric(8,4) NOT NULL,
			avg_resolution_hours numeric(10,4) NOT NULL,
			avg_resolution_flagged_hours numeric(10,4),
			avg_resolution_not_flagged_hours numeric(10,4),
			duplicates_removed integer NOT NULL,
			run_tag text,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.audit_issue_counts (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.audit_runs(id) ON DELETE CASCADE,
			issue_type text NOT NULL,
			ticket_count integer NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.audit_flagged_tickets (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.audit_runs(id) ON DELETE CASCADE,
			priority text NOT NULL,
			status text NOT NULL,
			subject text,
			message text,
			resolution_time_hours numeric(10,4) NOT NULL,
			created_date date,
			issue_type text NOT NULL,
			flag_reason text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_audit_issue_counts_run_idx ON %s.audit_issue_counts (run_id)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_audit_flagged_tickets_run_idx ON %s.audit_flagged_tickets (run_id)`, schema, schema))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_audit_flagged_tickets_reason_idx ON %s.audit_flagged_tickets (flag_reason)`, schema, schema))
	return err
}

func nullString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullDate(value time.Time) sql.NullTime {
	if value.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: dateOnly(value), Valid: true}
}

func nullFloat(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}
