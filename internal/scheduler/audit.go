// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"time"
)

// AuditPruneJob is the name of the audit retention job.
const AuditPruneJob = "audit-prune"

// AuditPruner deletes audit entries older than a retention period.
type AuditPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// AddAuditPrune registers the retention job for the audit log.
func (s *Scheduler) AddAuditPrune(p AuditPruner, retention time.Duration, schedule string) error {
	if retention <= 0 {
		return fmt.Errorf("audit retention must be positive, got %s", retention)
	}
	return s.Add(AuditPruneJob, schedule, func(ctx context.Context) error {
		n, err := p.Prune(ctx, retention)
		if err != nil {
			return fmt.Errorf("pruning audit log: %w", err)
		}
		if n > 0 {
			s.logger.Info("pruned audit log", "deleted", n, "retention", retention)
		}
		return nil
	})
}
