package ledger

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/donflow/donflow/internal/classify"
	"github.com/donflow/donflow/internal/model"
	"github.com/donflow/donflow/internal/notification"
	"github.com/donflow/donflow/internal/tabular"
)

// SourceCSV tags transactions imported from tabular statements; notification
// imports carry the provider tag instead.
const SourceCSV = "csv"

// IDGenerator generates unique IDs for transactions.
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.New().String()
}

type systemClock struct{}

func (t *systemClock) Now() time.Time {
	return time.Now()
}

// ImportResult tallies one import batch. Partial failures are per-row skips,
// never batch aborts.
type ImportResult struct {
	Imported     int
	Skipped      int
	Duplicates   int
	Transactions []*model.Transaction
}

// Service runs the ingestion pipeline: raw rows or pasted text in,
// categorized transactions in the store out.
type Service struct {
	db          DB
	classifier  *classify.Classifier
	parser      *notification.Parser
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a Service with the default ID generator and clock.
func NewService(db DB) *Service {
	return &Service{
		db:          db,
		classifier:  classify.New(db, db),
		parser:      notification.NewParser(),
		idGenerator: &uuidGenerator{},
		timeSource:  &systemClock{},
	}
}

// NewServiceWithDeps creates a Service with custom dependencies for testing.
func NewServiceWithDeps(db DB, parser *notification.Parser, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		classifier:  classify.New(db, db),
		parser:      parser,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// EnsureCategories seeds the default category set when the store has none.
func (s *Service) EnsureCategories() error {
	existing, err := s.db.ListCategories()
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, cat := range DefaultCategories() {
		if err := s.db.SaveCategory(cat); err != nil {
			return fmt.Errorf("seeding category %q: %w", cat.Name, err)
		}
	}
	slog.Info("seeded default categories", "count", len(DefaultCategories()))
	return nil
}

// ImportRows detects the column schema of a tabular source and imports its
// rows. When neither detection stage resolves date and amount columns it
// returns *tabular.UnrecognizedFormatError without converting any row; the
// caller can retry with ImportRowsWithColumns after manual mapping.
func (s *Service) ImportRows(headers []string, rows []tabular.Row, accountID int64) (*ImportResult, error) {
	cols, err := tabular.DetectColumns(headers, rows)
	if err != nil {
		return nil, err
	}
	return s.ImportRowsWithColumns(rows, cols, accountID)
}

// ImportRowsWithColumns replays the row conversion against an explicit
// column triple, then classifies and persists each record sequentially.
func (s *Service) ImportRowsWithColumns(rows []tabular.Row, cols tabular.Columns, accountID int64) (*ImportResult, error) {
	records, skipped := tabular.Convert(rows, cols)
	result := &ImportResult{Skipped: skipped}
	seen := make(map[string]struct{})

	for _, rec := range records {
		occurred, ok := recordTime(rec)
		if !ok {
			result.Skipped++
			continue
		}

		res, err := s.classifier.Classify(rec.Merchant, rec.Amount)
		if err != nil {
			return nil, err
		}

		tx := &model.Transaction{
			AccountID:    accountID,
			Amount:       rec.Amount,
			Type:         rec.Type,
			CategoryID:   res.CategoryID,
			MerchantName: rec.Merchant,
			Date:         occurred,
			SourceTag:    SourceCSV,
			Fingerprint:  model.Fingerprint(rec.Date, rec.Amount, rec.Merchant),
		}
		if err := s.persist(tx, seen, result); err != nil {
			return nil, err
		}
	}

	slog.Info("tabular import complete",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"duplicates", result.Duplicates,
	)
	return result, nil
}

// ImportNotifications parses a notification paste, classifies each candidate
// and persists the batch sequentially. Lines without an extractable amount or
// merchant are counted as skipped.
func (s *Service) ImportNotifications(text string, accountID int64) (*ImportResult, error) {
	parsed := s.parser.Parse(text)

	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}

	result := &ImportResult{Skipped: lines - len(parsed)}
	seen := make(map[string]struct{})

	for _, item := range parsed {
		res, err := s.classifier.Classify(item.Merchant, item.Amount)
		if err != nil {
			return nil, err
		}

		date := item.Occurred.Format("2006-01-02")
		tx := &model.Transaction{
			AccountID:    accountID,
			Amount:       item.Amount,
			Type:         model.TypeExpense,
			CategoryID:   res.CategoryID,
			MerchantName: item.Merchant,
			Date:         item.Occurred,
			Memo:         fmt.Sprintf("[%s카드]", item.SourceTag),
			SourceTag:    item.SourceTag,
			Fingerprint:  model.Fingerprint(date, item.Amount, item.Merchant),
		}
		if err := s.persist(tx, seen, result); err != nil {
			return nil, err
		}
	}

	slog.Info("notification import complete",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"duplicates", result.Duplicates,
	)
	return result, nil
}

// persist runs the classify-then-persist round trip for one candidate: dedup
// against the store and the current batch, then a single store write.
func (s *Service) persist(tx *model.Transaction, seen map[string]struct{}, result *ImportResult) error {
	if _, dup := seen[tx.Fingerprint]; dup {
		result.Duplicates++
		return nil
	}
	exists, err := s.db.TransactionExists(tx.Fingerprint)
	if err != nil {
		return fmt.Errorf("checking fingerprint: %w", err)
	}
	if exists {
		result.Duplicates++
		seen[tx.Fingerprint] = struct{}{}
		return nil
	}

	now := s.timeSource.Now()
	tx.ID = s.idGenerator.Generate()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.db.SaveTransaction(tx); err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}
	seen[tx.Fingerprint] = struct{}{}
	result.Imported++
	result.Transactions = append(result.Transactions, tx)
	return nil
}

// Classify exposes the classifier for preview flows that categorize before
// the user confirms an import.
func (s *Service) Classify(merchant string, amount int64) (classify.Result, error) {
	return s.classifier.Classify(merchant, amount)
}

// ConfirmCategory records a user's category correction as a learned rule.
// Amount matters for aggregator merchants; pass 0 when unknown.
func (s *Service) ConfirmCategory(merchant string, categoryID int64, amount int64, label string) error {
	return s.classifier.Learn(merchant, categoryID, classify.LearnOptions{Amount: amount, Label: label})
}

func recordTime(rec tabular.Record) (time.Time, bool) {
	layout := "2006-01-02"
	value := rec.Date
	if rec.Time != "" {
		if strings.Count(rec.Time, ":") == 2 {
			layout = "2006-01-02 15:04:05"
		} else {
			layout = "2006-01-02 15:04"
		}
		value = rec.Date + " " + rec.Time
	}
	t, err := time.ParseInLocation(layout, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
