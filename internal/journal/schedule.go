package journal

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"options-wizard/internal/logger"
)

// DefaultCompactionSpec runs compaction daily at 00:30 (seconds field first).
const DefaultCompactionSpec = "0 30 0 * * *"

// Compactor runs CompressOlder on a cron schedule for long-lived servers.
type Compactor struct {
	cron      *cron.Cron
	journal   *Journal
	retention int
	ctx       context.Context
}

func NewCompactor(ctx context.Context, j *Journal, spec string, retentionDays int) (*Compactor, error) {
	if spec == "" {
		spec = DefaultCompactionSpec
	}
	c := &Compactor{
		cron:      cron.New(cron.WithSeconds(), cron.WithLocation(ist)),
		journal:   j,
		retention: retentionDays,
		ctx:       ctx,
	}
	if _, err := c.cron.AddFunc(spec, c.run); err != nil {
		return nil, fmt.Errorf("register journal compaction %q: %w", spec, err)
	}
	return c, nil
}

func (c *Compactor) run() {
	n, err := c.journal.CompressOlder(c.retention)
	if err != nil {
		logger.ErrorWithErr(c.ctx, "Journal compaction failed", err, "dir", c.journal.dir)
		return
	}
	logger.Info(c.ctx, "Journal compaction finished", "dir", c.journal.dir, "compressed", n)
}

func (c *Compactor) Start() {
	c.cron.Start()
	logger.Info(c.ctx, "Journal compaction scheduled", "dir", c.journal.dir, "retention_days", c.retention)
}

// Stop stops the scheduler and waits for a running compaction to finish.
func (c *Compactor) Stop() {
	<-c.cron.Stop().Done()
}
