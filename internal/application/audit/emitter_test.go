package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/application/audit"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/confeitaria-api/internal/observability/metrics"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

const actor = "actor-1"

func TestLog_RegistraSnapshots(t *testing.T) {
	repo := memory.NewAuditRepo()
	em := audit.NewEmitter(repo, logger.Nop(), nil)

	em.Log(context.Background(), actor, entity.AuditCreate, entity.EntityClients, "c1", nil, map[string]string{"name": "Ana"})

	all := repo.All()
	require.Len(t, all, 1)
	assert.Equal(t, entity.AuditCreate, all[0].Action)
	assert.Equal(t, "c1", all[0].EntityID)
	assert.Nil(t, all[0].OldData)
	assert.JSONEq(t, `{"name":"Ana"}`, string(all[0].NewData))
}

func TestLog_ErrorSeDescartaYSeCuenta(t *testing.T) {
	repo := memory.NewAuditRepo()
	repo.Err = errors.New("audit caído")
	m := metrics.New("test", prometheus.NewRegistry())
	em := audit.NewEmitter(repo, logger.Nop(), m)

	assert.NotPanics(t, func() {
		em.Log(context.Background(), actor, entity.AuditDelete, entity.EntitySuppliers, "s1", json.RawMessage(`{"a":1}`), nil)
	})
	assert.Empty(t, repo.All())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditWritesTotal.WithLabelValues(entity.EntitySuppliers, metrics.ResultError)))
}

func TestLog_ContextoCanceladoIgualEscribe(t *testing.T) {
	repo := memory.NewAuditRepo()
	em := audit.NewEmitter(repo, logger.Nop(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	em.Log(ctx, actor, entity.AuditUpdate, entity.EntityClients, "c1", nil, nil)
	assert.Len(t, repo.All(), 1)
}

func TestQueryYSummarize(t *testing.T) {
	repo := memory.NewAuditRepo()
	em := audit.NewEmitter(repo, logger.Nop(), nil)
	ctx := context.Background()
	em.Log(ctx, actor, entity.AuditCreate, entity.EntityClients, "c1", nil, nil)
	em.Log(ctx, actor, entity.AuditCreate, entity.EntityIngredients, "i1", nil, nil)
	em.Log(ctx, actor, entity.AuditUpdate, entity.EntityClients, "c1", nil, nil)
	em.Log(ctx, "otro", entity.AuditDelete, entity.EntityClients, "c9", nil, nil)

	got, err := em.Query(ctx, actor, audit.Filter{EntityType: entity.EntityClients})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	sum, err := em.Summarize(ctx, actor, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.ByAction["create"])
	assert.Equal(t, 1, sum.ByAction["update"])
	assert.Equal(t, 2, sum.ByEntityType[entity.EntityClients])
	assert.Equal(t, 1, sum.ByEntityType[entity.EntityIngredients])
}
