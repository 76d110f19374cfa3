// Package snapshot persists the analytics artifacts consumed by the
// website: the returns matrix, ticker lookup, stats list and per-fund
// detail files. The ingest job regenerates them wholesale; the HTTP
// layer only ever reads.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/marketfold/fund-analyzer/internal/analytics"
	"github.com/marketfold/fund-analyzer/internal/apperrors"
	"github.com/marketfold/fund-analyzer/internal/model"
)

const (
	matrixFile = "returns-matrix.json"
	lookupFile = "ticker-lookup.json"
	statsFile  = "stats.json"
	fundsDir   = "funds"
)

// Snapshot is the in-memory form of the persisted artifacts.
type Snapshot struct {
	Matrix *analytics.ReturnsMatrix
	Lookup map[string]model.Fund
	Stats  []model.FundStats
	Funds  map[string]*model.FundDetail
}

// UpsertStats replaces any existing stats entry for the same ticker and
// appends the new one (last write wins).
func (s *Snapshot) UpsertStats(st model.FundStats) {
	s.Stats = analytics.ReplaceStats(s.Stats, st)
}

// Store reads and writes snapshot artifacts under a single directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on
// first Save, not here.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads the matrix, lookup and stats artifacts, concurrently since
// they are independent files. Missing files yield empty defaults so a
// first ingest run starts from a clean snapshot. Per-fund detail files
// are not bulk-loaded; use LoadFund.
func (st *Store) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Matrix: analytics.NewReturnsMatrix(),
		Lookup: make(map[string]model.Fund),
		Stats:  []model.FundStats{},
		Funds:  make(map[string]*model.FundDetail),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return st.readJSON(matrixFile, snap.Matrix)
	})
	g.Go(func() error {
		return st.readJSON(lookupFile, &snap.Lookup)
	})
	g.Go(func() error {
		return st.readJSON(statsFile, &snap.Stats)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save writes every artifact: matrix, lookup, stats, then one detail
// file per fund. Callers run Save only at the very end of a successful
// batch; a crash before this point leaves previously persisted files
// untouched.
func (st *Store) Save(snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Join(st.dir, fundsDir), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if err := st.writeJSON(matrixFile, snap.Matrix); err != nil {
		return err
	}
	if err := st.writeJSON(lookupFile, snap.Lookup); err != nil {
		return err
	}
	if err := st.writeJSON(statsFile, snap.Stats); err != nil {
		return err
	}
	for ticker, detail := range snap.Funds {
		name := filepath.Join(fundsDir, strings.ToUpper(ticker)+".json")
		if err := st.writeJSON(name, detail); err != nil {
			return err
		}
	}
	return nil
}

// LoadStats reads stats.json alone.
func (st *Store) LoadStats() ([]model.FundStats, error) {
	stats := []model.FundStats{}
	if err := st.readJSON(statsFile, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// LoadMatrix reads returns-matrix.json alone.
func (st *Store) LoadMatrix() (*analytics.ReturnsMatrix, error) {
	m := analytics.NewReturnsMatrix()
	if err := st.readJSON(matrixFile, m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFund reads one per-fund detail file.
func (st *Store) LoadFund(ticker string) (*model.FundDetail, error) {
	path := filepath.Join(st.dir, fundsDir, strings.ToUpper(ticker)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrFundNotFound
		}
		return nil, fmt.Errorf("failed to read fund detail: %w", err)
	}
	var detail model.FundDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse fund detail: %w", err)
	}
	return &detail, nil
}

// readJSON decodes one artifact into out. A missing file is not an
// error; out keeps its zero/default value.
func (st *Store) readJSON(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(st.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// writeJSON writes one artifact with indentation, keeping persisted
// output diffable across runs.
func (st *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(st.dir, name), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
