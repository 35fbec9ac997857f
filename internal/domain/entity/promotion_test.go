package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Caisse-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPromotion_AppliesTo(t *testing.T) {
	now := time.Now()
	base := entity.Promotion{
		ProductID:    "p-1",
		DiscountType: entity.DiscountTypePercent,
		Value:        dec("10"),
		StartsAt:     now.Add(-time.Hour),
		EndsAt:       now.Add(time.Hour),
		Active:       true,
	}

	t.Run("producto y ventana coinciden", func(t *testing.T) {
		assert.True(t, base.AppliesTo("p-1", now))
	})

	t.Run("otro producto no aplica", func(t *testing.T) {
		assert.False(t, base.AppliesTo("p-2", now))
	})

	t.Run("ProductID vacío aplica a todo el catálogo", func(t *testing.T) {
		catalog := base
		catalog.ProductID = ""
		assert.True(t, catalog.AppliesTo("p-2", now))
	})

	t.Run("fuera de la ventana no aplica", func(t *testing.T) {
		assert.False(t, base.AppliesTo("p-1", now.Add(2*time.Hour)))
		assert.False(t, base.AppliesTo("p-1", now.Add(-2*time.Hour)))
	})

	t.Run("los bordes de la ventana son inclusivos", func(t *testing.T) {
		assert.True(t, base.AppliesTo("p-1", base.StartsAt))
		assert.True(t, base.AppliesTo("p-1", base.EndsAt))
	})

	t.Run("inactiva no aplica aunque esté vigente", func(t *testing.T) {
		inactive := base
		inactive.Active = false
		assert.False(t, inactive.AppliesTo("p-1", now))
	})
}

func TestPromotion_DiscountFor(t *testing.T) {
	t.Run("porcentaje sobre el subtotal de la línea", func(t *testing.T) {
		p := entity.Promotion{DiscountType: entity.DiscountTypePercent, Value: dec("15")}
		// 15% de (4 x 10.00) = 6.00
		assert.True(t, p.DiscountFor(4, dec("10.00")).Equal(dec("6.00")))
	})

	t.Run("monto fijo por unidad", func(t *testing.T) {
		p := entity.Promotion{DiscountType: entity.DiscountTypeAmount, Value: dec("1.50")}
		assert.True(t, p.DiscountFor(3, dec("10.00")).Equal(dec("4.50")))
	})

	t.Run("nunca excede el subtotal de la línea", func(t *testing.T) {
		p := entity.Promotion{DiscountType: entity.DiscountTypeAmount, Value: dec("8.00")}
		// 8.00 x 2 = 16.00 > 2 x 5.00 = 10.00: se recorta al subtotal
		assert.True(t, p.DiscountFor(2, dec("5.00")).Equal(dec("10.00")))
	})

	t.Run("porcentaje con redondeo a 2 decimales", func(t *testing.T) {
		p := entity.Promotion{DiscountType: entity.DiscountTypePercent, Value: dec("33")}
		// 33% de 9.99 = 3.2967 -> 3.30
		assert.True(t, p.DiscountFor(1, dec("9.99")).Equal(dec("3.30")))
	})

	t.Run("tipo desconocido no descuenta", func(t *testing.T) {
		p := entity.Promotion{DiscountType: "bogo", Value: dec("50")}
		assert.True(t, p.DiscountFor(1, dec("10.00")).IsZero())
	})
}
