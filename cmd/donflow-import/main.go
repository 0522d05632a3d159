package main

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/donflow/donflow/internal/ledger"
	"github.com/donflow/donflow/internal/tabular"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("donflow-import")
	var (
		dbPath      = fs.StringLong("db", "donflow.db", "Database file path")
		file        = fs.StringLong("file", "", "CSV or XLSX statement to import")
		encoding    = fs.StringLong("encoding", "utf-8", "CSV text encoding: 'utf-8' or 'euc-kr'")
		notifFile   = fs.StringLong("notifications", "", "Notification paste to import ('-' for stdin)")
		accountID   = fs.IntLong("account", 1, "Account ID to attach imported transactions to")
		dateCol     = fs.StringLong("date-column", "", "Explicit date column (manual mapping)")
		merchantCol = fs.StringLong("merchant-column", "", "Explicit merchant column (manual mapping)")
		amountCol   = fs.StringLong("amount-column", "", "Explicit amount column (manual mapping)")
		listCats    = fs.BoolLong("list-categories", "Print the category set and exit")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("DONFLOW"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	db, err := ledger.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	service := ledger.NewService(db)
	if err := service.EnsureCategories(); err != nil {
		slog.Error("Failed to seed categories", "error", err)
		os.Exit(1)
	}

	if *listCats {
		categories, err := db.ListCategories()
		if err != nil {
			slog.Error("Failed to list categories", "error", err)
			os.Exit(1)
		}
		for _, cat := range categories {
			fmt.Printf("%3d  %s %s\n", cat.ID, cat.Icon, cat.Name)
		}
		return
	}

	switch {
	case *file != "":
		headers, rows, err := loadStatement(*file, *encoding)
		if err != nil {
			slog.Error("Failed to read statement", "file", *file, "error", err)
			os.Exit(1)
		}

		var result *ledger.ImportResult
		if *dateCol != "" && *amountCol != "" {
			cols := tabular.Columns{Date: *dateCol, Merchant: *merchantCol, Amount: *amountCol}
			result, err = service.ImportRowsWithColumns(rows, cols, int64(*accountID))
		} else {
			result, err = service.ImportRows(headers, rows, int64(*accountID))
		}
		if err != nil {
			var unrecognized *tabular.UnrecognizedFormatError
			if errors.As(err, &unrecognized) {
				slog.Error("Could not recognize the statement format; retry with explicit columns",
					"headers", unrecognized.Headers,
				)
				os.Exit(1)
			}
			slog.Error("Import failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Import finished",
			"imported", result.Imported,
			"skipped", result.Skipped,
			"duplicates", result.Duplicates,
		)

	case *notifFile != "":
		text, err := readNotifications(*notifFile)
		if err != nil {
			slog.Error("Failed to read notifications", "file", *notifFile, "error", err)
			os.Exit(1)
		}
		result, err := service.ImportNotifications(text, int64(*accountID))
		if err != nil {
			slog.Error("Import failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Import finished",
			"imported", result.Imported,
			"skipped", result.Skipped,
			"duplicates", result.Duplicates,
		)

	default:
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: one of --file or --notifications is required")
		os.Exit(1)
	}
}
