// Package journal keeps a daily JSON-lines record of wizard recommendations.
package journal

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/types"
)

const fileExt = ".jsonl"

var ist = time.FixedZone("IST", 19800)

type Entry struct {
	ID             string               `json:"id"`
	Time           string               `json:"time"`
	Index          string               `json:"index"`
	RuleSet        string               `json:"rule_set"`
	Sentiment      types.SentimentInput `json:"sentiment"`
	Intraday       types.StrategyLabel  `json:"intraday"`
	Positional     types.StrategyLabel  `json:"positional"`
	OptionType     types.OptionType     `json:"option_type,omitempty"`
	Action         types.TradeAction    `json:"action,omitempty"`
	Market         *types.MarketParams  `json:"market,omitempty"`
	Premium        float64              `json:"premium,omitempty"`
	ImpliedVol     float64              `json:"implied_vol,omitempty"`
	Greeks         *types.Greeks        `json:"greeks,omitempty"`
	GreeksStrategy types.StrategyLabel  `json:"greeks_strategy,omitempty"`
}

// Journal appends entries to <dir>/<YYYY-MM-DD>.jsonl, one file per IST day.
type Journal struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// DefaultDir is used when New is given an empty dir.
const DefaultDir = "logs"

// New returns a journal rooted at dir, or DefaultDir when dir is empty.
func New(dir string) *Journal {
	if dir == "" {
		dir = DefaultDir
	}
	return &Journal{dir: dir, now: time.Now}
}

func (j *Journal) Dir() string {
	return j.dir
}

func (j *Journal) dailyFilepath(t time.Time) string {
	return filepath.Join(j.dir, t.In(ist).Format("2006-01-02")+fileExt)
}

// EntryFor flattens a request and its report into a journal entry. The
// market inputs are taken from the report when present so the entry carries
// the strike that was actually priced.
func EntryFor(req types.WizardRequest, report *types.WizardReport) Entry {
	e := Entry{
		Index:      report.Index,
		RuleSet:    report.Advice.RuleSet,
		Sentiment:  req.Sentiment,
		Intraday:   report.Advice.Intraday,
		Positional: report.Advice.Positional,
		OptionType: req.OptionType,
		Action:     req.Action,
		Market:     req.Market,
	}
	if report.Market != nil {
		m := *report.Market
		e.Market = &m
	}
	if q := report.Quote; q != nil {
		e.OptionType = q.OptionType
		e.Premium = q.Premium
		e.ImpliedVol = q.ImpliedVol
		e.GreeksStrategy = q.Strategy
		if q.GreeksAvailable {
			g := q.Greeks
			e.Greeks = &g
		}
	}
	return e
}

func (j *Journal) Append(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().In(ist)
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Time = now.Format("2006-01-02 15:04:05")
	p := j.dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips day files last modified more than retentionDays ago and
// removes the originals. Zero or negative retention disables it.
func (j *Journal) CompressOlder(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	cutoff := j.now().AddDate(0, 0, -retentionDays)
	compressed := 0
	err := filepath.WalkDir(j.dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(p) != fileExt {
			return nil
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}

		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			return os.Remove(p)
		}
		if err := gzipFile(p, gz); err != nil {
			return err
		}
		compressed++
		return os.Remove(p)
	})
	return compressed, err
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		_ = gw.Close()
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := gw.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// recordingEngine journals every successful evaluation of the wrapped engine.
type recordingEngine struct {
	next    interfaces.Engine
	journal *Journal
}

// Wrap returns an engine that records each report. Journal write failures are
// logged and never fail the evaluation.
func Wrap(next interfaces.Engine, j *Journal) interfaces.Engine {
	return &recordingEngine{next: next, journal: j}
}

func (r *recordingEngine) Evaluate(ctx context.Context, req types.WizardRequest) (*types.WizardReport, error) {
	report, err := r.next.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := r.journal.Append(EntryFor(req, report)); err != nil {
		logger.Warn(ctx, "Failed to journal recommendation", "dir", r.journal.dir, "error", err)
	}
	return report, nil
}
