package main

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/finance-dashboard/internal/config"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/simaogato/finance-dashboard/internal/metrics"
	"github.com/simaogato/finance-dashboard/internal/usecase/finance"
)

func TestNewRefreshScheduler_EmptySpecDisables(t *testing.T) {
	c, err := newRefreshScheduler("", nil, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewRefreshScheduler_InvalidSpec(t *testing.T) {
	_, err := newRefreshScheduler("whenever", nil, logging.NewNop())
	assert.Error(t, err)
}

func TestNewRefreshScheduler_RegistersJob(t *testing.T) {
	c, err := newRefreshScheduler("@every 1h", nil, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)
}

func TestOpenRepositories_MemoryWithBreaker(t *testing.T) {
	cfg := &config.Config{
		DataBackend:        config.BackendMemory,
		BreakerEnabled:     true,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: time.Second,
	}
	ctx := context.Background()
	logger := logging.NewNop()

	repos, err := openRepositories(ctx, cfg, logger)
	require.NoError(t, err)
	repos = withBreaker(repos, cfg, metrics.NoOpCollector{}, logger)
	defer func() { assert.NoError(t, repos.close()) }()

	store := finance.NewStore(repos.transactions, repos.categories)
	require.NoError(t, store.Initialize(ctx))

	_, err = store.AddTransaction(ctx, domain.TransactionDraft{
		Description: "Salary",
		Amount:      decimal.NewFromInt(1000),
		Type:        domain.TransactionTypeIncome,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	summary, err := repos.summary.GetFinancialSummary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(1000)))
}
