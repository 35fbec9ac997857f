package cache

import (
	"context"
	"time"

	"github.com/jhoicas/Caisse-api/internal/application/sales"
)

var _ sales.Cache = (*Noop)(nil)

// Noop es un cache que no guarda nada. Se usa cuando Redis no está
// configurado: todo Get es miss y Set/Delete no hacen nada.
type Noop struct{}

// NewNoop construye el cache nulo.
func NewNoop() *Noop { return &Noop{} }

func (Noop) Get(ctx context.Context, key string) ([]byte, bool)               { return nil, false }
func (Noop) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {}
func (Noop) Delete(ctx context.Context, key string)                           {}
