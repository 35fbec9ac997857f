package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Caisse-api/internal/application/ledger"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

func TestProjectedBalance_CoincideConSaldoDenormalizado(t *testing.T) {
	uc, runner := newLedgerFixture(0, 0)
	query := ledger.NewStockQueryUseCase(runner.productRepo, runner.movRepo)

	inputs := []ledger.MovementInput{
		{ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 100},
		{ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 37},
		{ProductID: "p-1", Type: entity.MovementTypeAdjustment, Quantity: -3},
		{ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 12},
		{ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 50},
	}
	for _, in := range inputs {
		_, err := uc.RegisterMovement(context.Background(), in)
		require.NoError(t, err)
	}

	current, err := query.CurrentBalance(context.Background(), "p-1")
	require.NoError(t, err)
	projected, err := query.ProjectedBalance(context.Background(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, int64(22), current)
	assert.Equal(t, current, projected,
		"plegar el libro completo debe dar el mismo saldo que el denormalizado")
}

func TestProjectedBalance_PaginaElLibroCompleto(t *testing.T) {
	// Más movimientos que una página (50) para forzar la paginación del fold.
	uc, runner := newLedgerFixture(0, 0)
	query := ledger.NewStockQueryUseCase(runner.productRepo, runner.movRepo)

	for i := 0; i < 120; i++ {
		_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
			ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 2,
		})
		require.NoError(t, err)
	}

	projected, err := query.ProjectedBalance(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, int64(240), projected)
}

func TestHistory_MasRecientesPrimeroYFiltrado(t *testing.T) {
	uc, runner := newLedgerFixture(0, 0)
	query := ledger.NewStockQueryUseCase(runner.productRepo, runner.movRepo)

	for _, in := range []ledger.MovementInput{
		{ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 10, Reference: "OC-1"},
		{ProductID: "p-1", Type: entity.MovementTypeOut, Quantity: 4, Reference: "V-1"},
		{ProductID: "p-1", Type: entity.MovementTypeIn, Quantity: 6, Reference: "OC-2"},
	} {
		_, err := uc.RegisterMovement(context.Background(), in)
		require.NoError(t, err)
	}

	history, err := query.History(context.Background(), "p-1", repository.MovementFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, history.Items, 3)
	assert.Equal(t, int64(3), history.Total)
	assert.Equal(t, "OC-2", history.Items[0].Reference, "el más reciente va primero")

	// Filtro por tipo
	onlyIn, err := query.History(context.Background(), "p-1", repository.MovementFilter{Type: entity.MovementTypeIn}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, onlyIn.Items, 2)
	assert.Equal(t, int64(2), onlyIn.Total)
}

func TestHistory_ProductoInexistente(t *testing.T) {
	_, runner := newLedgerFixture(0, 0)
	query := ledger.NewStockQueryUseCase(runner.productRepo, runner.movRepo)

	_, err := query.History(context.Background(), "no-existe", repository.MovementFilter{}, 10, 0)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
