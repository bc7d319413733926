package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	db "github.com/agrisurvey/portal/internal/database"
	"github.com/agrisurvey/portal/internal/tabular"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ImportTimeout is the maximum duration for an import operation.
var ImportTimeout = 10 * time.Minute

// ResetTimeout is the maximum duration for a reset operation.
var ResetTimeout = 30 * time.Second

// resultRetention is how long a finished import stays queryable.
var resultRetention = 5 * time.Minute

// Service provides the core business logic for survey data imports.
type Service struct {
	pool    *pgxpool.Pool
	logger  *slog.Logger
	limiter *ImportLimiter

	mu      sync.RWMutex
	imports map[string]*activeImport
}

type activeImport struct {
	ID         string
	TableKey   string
	FileName   string
	Cancel     context.CancelFunc
	Progress   ImportProgress
	Result     *ImportResult
	Done       chan struct{}
	Listeners  []chan ImportProgress
	ListenerMu sync.Mutex
}

// NewService creates a Service backed by the given connection pool.
func NewService(pool *pgxpool.Pool, logger *slog.Logger, maxConcurrent int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		pool:    pool,
		logger:  logger,
		limiter: NewImportLimiter(maxConcurrent, DefaultMaxWaitTime),
		imports: make(map[string]*activeImport),
	}
}

// LimiterStatus reports current import concurrency for monitoring.
func (s *Service) LimiterStatus() LimiterStatus {
	return s.limiter.Status()
}

// DrainImports blocks until all in-flight imports finish or ctx expires.
func (s *Service) DrainImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// StartImport begins an asynchronous import and returns its ID.
// Use SubscribeProgress or ImportProgress for updates, ImportResult for
// the final outcome. Imports into the same table are serialized. mapping
// optionally renames file headers to table columns; nil means headers
// already use the table's column names.
func (s *Service) StartImport(ctx context.Context, tableKey, fileName string, fileData []byte, mapping map[string]string) (string, error) {
	def, ok := Get(tableKey)
	if !ok {
		return "", fmt.Errorf("unknown table: %s", tableKey)
	}

	if int64(len(fileData)) > MaxFileSize {
		return "", fmt.Errorf("file exceeds %dMB limit", MaxFileSize/(1024*1024))
	}

	if err := s.limiter.Acquire(ctx, tableKey); err != nil {
		return "", err
	}

	importID := uuid.New().String()
	importCtx, cancel := context.WithTimeout(context.Background(), ImportTimeout)
	importCtx = ContextWithIPAddress(importCtx, GetIPAddressFromContext(ctx))
	importCtx = ContextWithUserAgent(importCtx, GetUserAgentFromContext(ctx))

	imp := &activeImport{
		ID:       importID,
		TableKey: tableKey,
		FileName: fileName,
		Cancel:   cancel,
		Progress: ImportProgress{
			ImportID: importID,
			TableKey: tableKey,
			Phase:    PhaseStarting,
			FileName: fileName,
		},
		Done: make(chan struct{}),
	}

	s.mu.Lock()
	s.imports[importID] = imp
	s.mu.Unlock()

	go s.processImport(importCtx, imp, def, fileData, mapping)

	return importID, nil
}

// processImport runs one import end to end: parse the file, open a
// transaction, validate and insert rows, commit, and record the outcome.
func (s *Service) processImport(ctx context.Context, imp *activeImport, def TableDefinition, fileData []byte, mapping map[string]string) {
	startTime := time.Now()

	defer func() {
		imp.closeListeners()
		close(imp.Done)
		s.limiter.Release(imp.TableKey)
		s.cleanup(imp.ID, resultRetention)
	}()

	fail := func(msg string) {
		imp.Progress.Phase = PhaseFailed
		imp.Progress.Error = msg
		imp.notifyProgress()
		imp.Result = &ImportResult{
			ImportID: imp.ID,
			TableKey: imp.TableKey,
			FileName: imp.FileName,
			Error:    msg,
			Duration: time.Since(startTime),
		}
		s.logger.Error("import failed",
			"importId", imp.ID,
			"table", imp.TableKey,
			"file", imp.FileName,
			"error", msg)
	}

	imp.Progress.Phase = PhaseReading
	imp.notifyProgress()

	records, err := tabular.Parse(imp.FileName, SanitizeUTF8(fileData))
	if err != nil {
		fail(fmt.Sprintf("parse %s: %v", imp.FileName, err))
		return
	}
	records = ApplyHeaderMapping(records, mapping, def.Info.Columns)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		fail(fmt.Sprintf("begin transaction: %v", err))
		return
	}
	defer tx.Rollback(ctx)

	result := runImport(ctx, tx, def, records, NewParentResolver(tx), func(p ImportProgress) {
		p.ImportID = imp.ID
		p.FileName = imp.FileName
		imp.Progress = p
		imp.notifyProgress()
	})
	result.ImportID = imp.ID
	result.FileName = imp.FileName

	if result.Error != "" {
		result.Duration = time.Since(startTime)
		imp.Result = result
		s.logger.Error("import aborted",
			"importId", imp.ID,
			"table", imp.TableKey,
			"file", imp.FileName,
			"error", result.Error)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		fail(fmt.Sprintf("commit: %v", err))
		return
	}

	result.Duration = time.Since(startTime)
	imp.Result = result

	s.recordImportRun(ctx, result)
	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionImport,
		TableKey:     imp.TableKey,
		Detail:       fmt.Sprintf("%s: %d inserted, %d duplicates, %d rejected", imp.FileName, result.Inserted, result.Duplicates, result.Skipped),
		RowsAffected: result.Inserted,
		IPAddress:    GetIPAddressFromContext(ctx),
		UserAgent:    GetUserAgentFromContext(ctx),
	})

	s.logger.Info("import complete",
		"importId", imp.ID,
		"table", imp.TableKey,
		"file", imp.FileName,
		"rows", result.TotalRows,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"rejected", result.Skipped,
		"duration", result.Duration)
}

// recordImportRun persists the run summary for the history endpoint.
func (s *Service) recordImportRun(ctx context.Context, result *ImportResult) {
	err := db.New(s.pool).InsertImportRun(ctx, db.InsertImportRunParams{
		ImportID:   ToPgUUID(result.ImportID),
		TableKey:   ToPgText(result.TableKey),
		FileName:   ToPgText(result.FileName),
		TotalRows:  pgInt4(result.TotalRows),
		Inserted:   pgInt4(result.Inserted),
		Skipped:    pgInt4(result.Skipped),
		Duplicates: pgInt4(result.Duplicates),
		Error:      ToPgText(result.Error),
	})
	if err != nil {
		s.logger.Warn("import run not recorded", "importId", result.ImportID, "error", err)
	}
}

// SubscribeProgress returns a channel receiving progress updates.
// The channel is closed when the import completes.
func (s *Service) SubscribeProgress(importID string) (<-chan ImportProgress, error) {
	s.mu.RLock()
	imp, ok := s.imports[importID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("import not found: %s", importID)
	}

	ch := make(chan ImportProgress, 10)

	imp.ListenerMu.Lock()
	imp.Listeners = append(imp.Listeners, ch)
	select {
	case ch <- imp.Progress:
	default:
	}
	imp.ListenerMu.Unlock()

	return ch, nil
}

// CancelImport cancels an in-progress import. All rows are rolled back.
func (s *Service) CancelImport(importID string) error {
	s.mu.RLock()
	imp, ok := s.imports[importID]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("import not found: %s", importID)
	}

	imp.Cancel()
	return nil
}

// ImportResult returns the result of an import, blocking until it
// completes if still in progress.
func (s *Service) ImportResult(importID string) (*ImportResult, error) {
	s.mu.RLock()
	imp, ok := s.imports[importID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("import not found: %s", importID)
	}

	<-imp.Done
	return imp.Result, nil
}

// ImportProgress returns the current progress without blocking.
func (s *Service) ImportProgress(importID string) (ImportProgress, error) {
	s.mu.RLock()
	imp, ok := s.imports[importID]
	s.mu.RUnlock()

	if !ok {
		return ImportProgress{}, fmt.Errorf("import not found: %s", importID)
	}

	return imp.Progress, nil
}

// Reset deletes all data from a table. Resetting the farmers table
// cascades to every child table.
func (s *Service) Reset(ctx context.Context, tableKey string) (int64, error) {
	def, ok := Get(tableKey)
	if !ok {
		return 0, fmt.Errorf("unknown table: %s", tableKey)
	}

	resetCtx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	deleted, err := def.Reset(resetCtx, s.pool)
	if err != nil {
		return 0, err
	}

	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionTableReset,
		TableKey:     tableKey,
		RowsAffected: int(deleted),
		IPAddress:    GetIPAddressFromContext(ctx),
		UserAgent:    GetUserAgentFromContext(ctx),
	})

	s.logger.Info("table reset", "table", tableKey, "rowsDeleted", deleted)
	return deleted, nil
}

// ResetAll deletes all data from every registered table, children first so
// counts reflect explicit deletes rather than cascades.
func (s *Service) ResetAll(ctx context.Context) (int64, error) {
	resetCtx, cancel := context.WithTimeout(ctx, ResetTimeout)
	defer cancel()

	defs := All()
	var total int64

	// All() sorts root first; walk in reverse to delete children first.
	for i := len(defs) - 1; i >= 0; i-- {
		def := defs[i]
		deleted, err := def.Reset(resetCtx, s.pool)
		if err != nil {
			return total, fmt.Errorf("reset %s: %w", def.Info.Key, err)
		}
		total += deleted

		s.LogAudit(ctx, AuditLogParams{
			Action:       ActionTableReset,
			TableKey:     def.Info.Key,
			RowsAffected: int(deleted),
			IPAddress:    GetIPAddressFromContext(ctx),
			UserAgent:    GetUserAgentFromContext(ctx),
		})
	}

	s.logger.Info("all tables reset", "rowsDeleted", total)
	return total, nil
}

// TableRowCount returns the current row count for a registered table.
func (s *Service) TableRowCount(ctx context.Context, tableKey string) (int64, error) {
	if _, ok := Get(tableKey); !ok {
		return 0, fmt.Errorf("unknown table: %s", tableKey)
	}

	// Table keys come from the registry, not user input, but quote anyway.
	var count int64
	query := "SELECT COUNT(*) FROM " + quoteIdentifier(tableKey)
	if err := s.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", tableKey, err)
	}
	return count, nil
}

// notifyProgress sends progress updates to all listeners.
func (imp *activeImport) notifyProgress() {
	imp.ListenerMu.Lock()
	defer imp.ListenerMu.Unlock()

	for _, ch := range imp.Listeners {
		select {
		case ch <- imp.Progress:
		default:
			// Listener is slow, skip this update
		}
	}
}

// closeListeners closes all listener channels.
func (imp *activeImport) closeListeners() {
	imp.ListenerMu.Lock()
	defer imp.ListenerMu.Unlock()

	for _, ch := range imp.Listeners {
		close(ch)
	}
	imp.Listeners = nil
}

// cleanup removes the import from tracking after a delay.
func (s *Service) cleanup(importID string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.imports, importID)
		s.mu.Unlock()
	})
}

// quoteIdentifier quotes a SQL identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func pgInt4(i int) pgtype.Int4 {
	return pgtype.Int4{Int32: int32(i), Valid: true}
}
