package postgres

import (
	"fmt"

	"startupops-api/internal/domain/entity"
)

// AutoMigrate 同步全部业务表结构
func (c *Client) AutoMigrate() error {
	if err := c.db.AutoMigrate(
		&entity.Profile{},
		&entity.Startup{},
		&entity.StartupMember{},
		&entity.Task{},
		&entity.Milestone{},
		&entity.Feedback{},
		&entity.HistoryRecord{},
		&entity.IncomeRecord{},
		&entity.ExpenseRecord{},
		&entity.Investment{},
		&entity.Subscription{},
		&entity.InvestorSwipe{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
