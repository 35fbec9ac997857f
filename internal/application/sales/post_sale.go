package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Caisse-api/internal/application/dto"
	"github.com/jhoicas/Caisse-api/internal/domain"
	"github.com/jhoicas/Caisse-api/internal/domain/entity"
	"github.com/jhoicas/Caisse-api/internal/domain/repository"
)

// PostSaleUseCase convierte una venta confirmada en sus asientos: cabecera y
// líneas en sales/sale_items, una salida de stock por línea y, si el pago es en
// efectivo dentro de una sesión activa, el incremento de caja — todo en una
// sola transacción. Si cualquier paso falla (ej. stock insuficiente en la
// línea 3 de 5) se revierte todo: ninguna venta parcial queda visible.
type PostSaleUseCase struct {
	txRunner      TxRunner
	ledger        StockLedger
	cashRegister  CashRegister
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	sessionRepo   repository.CaisseSessionRepository
	promotionRepo repository.PromotionRepository
	cache         Cache
}

// NewPostSaleUseCase construye el caso de uso.
func NewPostSaleUseCase(
	txRunner TxRunner,
	ledger StockLedger,
	cashRegister CashRegister,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	sessionRepo repository.CaisseSessionRepository,
	promotionRepo repository.PromotionRepository,
	cache Cache,
) *PostSaleUseCase {
	return &PostSaleUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		cashRegister:  cashRegister,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		sessionRepo:   sessionRepo,
		promotionRepo: promotionRepo,
		cache:         cache,
	}
}

// PostSale valida, calcula totales y persiste la venta con sus efectos.
// Los montos se redondean a 2 decimales al calcularse, no al mostrarse,
// para evitar deriva acumulada.
func (uc *PostSaleUseCase) PostSale(ctx context.Context, cashierID string, in dto.PostSaleRequest) (*dto.SaleResponse, error) {
	if cashierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentMethod {
	case entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodTransfer:
	default:
		return nil, domain.ErrInvalidInput
	}

	// Validaciones de solo lectura fuera de la transacción
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.CaisseSessionID != "" {
		session, err := uc.sessionRepo.GetByID(ctx, in.CaisseSessionID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, domain.ErrSessionNotFound
		}
		// La verificación definitiva ocurre dentro de la tx con la fila bloqueada
		if session.Status != entity.SessionStatusActive {
			return nil, domain.ErrSessionNotActive
		}
	}

	now := time.Now()
	promotions, err := uc.promotionRepo.ListActiveAt(ctx, now)
	if err != nil {
		return nil, err
	}

	sale := uc.buildSale(cashierID, in, productsByID, promotions, now)

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
		sessionRepo repository.CaisseSessionRepository,
		caisseMovRepo repository.CaisseMovementRepository,
	) error {
		// 1) Cabecera y líneas
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		// 2) Una salida de stock por línea, referenciando el número de venta.
		// Si el stock no alcanza, el error revierte también la venta ya insertada.
		for _, item := range sale.Items {
			if _, err := uc.ledger.RegisterOutInTx(
				ctx, movRepo, productRepo, notifRepo,
				item.ProductID, item.Quantity, sale.SaleNumber, cashierID, now,
			); err != nil {
				return err
			}
		}
		// 3) Pago en efectivo dentro de una sesión: sube current_amount
		if in.PaymentMethod == entity.PaymentMethodCash && in.CaisseSessionID != "" {
			if _, err := uc.cashRegister.ApplyCashDeltaInTx(
				ctx, sessionRepo, caisseMovRepo,
				in.CaisseSessionID, sale.TotalAmount,
				entity.CaisseMovementSale, sale.SaleNumber, "", now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// El resumen diario cacheado quedó desactualizado
	if uc.cache != nil {
		uc.cache.Delete(ctx, dailySummaryCacheKey(now))
	}
	return toSaleResponse(sale), nil
}

// buildSale calcula descuentos, impuestos y totales y arma la entidad.
// Subtotal excluye impuestos; TotalAmount = Subtotal - Descuento + Impuesto.
func (uc *PostSaleUseCase) buildSale(
	cashierID string,
	in dto.PostSaleRequest,
	productsByID map[string]*entity.Product,
	promotions []*entity.Promotion,
	now time.Time,
) *entity.Sale {
	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:              saleID,
		SaleNumber:      newSaleNumber(saleID, now),
		CustomerID:      in.CustomerID,
		CashierID:       cashierID,
		PaymentMethod:   in.PaymentMethod,
		CaisseSessionID: in.CaisseSessionID,
		CreatedAt:       now,
	}

	var subtotal, discountTotal, taxTotal decimal.Decimal
	for _, item := range in.Items {
		product := productsByID[item.ProductID]
		lineSubtotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).Round(2)
		lineDiscount := bestDiscount(promotions, item.ProductID, item.Quantity, item.UnitPrice, now)
		taxable := lineSubtotal.Sub(lineDiscount)
		lineTax := taxable.Mul(product.TaxRate).Round(2)

		sale.Items = append(sale.Items, entity.SaleItem{
			ID:             uuid.New().String(),
			SaleID:         saleID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: lineDiscount,
			TotalPrice:     taxable.Add(lineTax).Round(2),
		})
		subtotal = subtotal.Add(lineSubtotal)
		discountTotal = discountTotal.Add(lineDiscount)
		taxTotal = taxTotal.Add(lineTax)
	}

	sale.Subtotal = subtotal.Round(2)
	sale.DiscountAmount = discountTotal.Round(2)
	sale.TaxAmount = taxTotal.Round(2)
	sale.TotalAmount = subtotal.Sub(discountTotal).Add(taxTotal).Round(2)
	return sale
}

// bestDiscount elige la promoción vigente que más descuenta en la línea.
func bestDiscount(promotions []*entity.Promotion, productID string, qty int64, unitPrice decimal.Decimal, at time.Time) decimal.Decimal {
	best := decimal.Zero
	for _, p := range promotions {
		if !p.AppliesTo(productID, at) {
			continue
		}
		if d := p.DiscountFor(qty, unitPrice); d.GreaterThan(best) {
			best = d
		}
	}
	return best
}

// newSaleNumber genera un consecutivo único ordenado en el tiempo:
// V-<unix>-<sufijo del ID>.
func newSaleNumber(saleID string, now time.Time) string {
	suffix := strings.ReplaceAll(saleID, "-", "")
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("V-%d-%s", now.Unix(), suffix)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SaleResponse{
		ID:              s.ID,
		SaleNumber:      s.SaleNumber,
		CustomerID:      s.CustomerID,
		CashierID:       s.CashierID,
		Subtotal:        s.Subtotal,
		DiscountAmount:  s.DiscountAmount,
		TaxAmount:       s.TaxAmount,
		TotalAmount:     s.TotalAmount,
		PaymentMethod:   s.PaymentMethod,
		CaisseSessionID: s.CaisseSessionID,
		CreatedAt:       s.CreatedAt,
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: item.DiscountAmount,
			TotalPrice:     item.TotalPrice,
		})
	}
	return resp
}
