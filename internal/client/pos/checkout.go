package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukahq/dukapos/pkg/api"
)

// Способы оплаты на кассе
const (
	PaymentCash  = "cash"
	PaymentMpesa = "mpesa"
)

// CartItem представляет позицию корзины на кассе
type CartItem struct {
	Barcode   string
	Name      string
	ProductID int64
	Quantity  int
	Price     float64
}

// Total возвращает стоимость позиции
func (i CartItem) Total() float64 {
	return i.Price * float64(i.Quantity)
}

// CartTotal возвращает итоговую сумму корзины
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Total()
	}
	return total
}

// Receipt представляет результат завершенной продажи
type Receipt struct {
	CreatedAt time.Time
	Reference string // локальная ссылка чека: terminalID/uuid
	Payment   string
	Phone     string // телефон плательщика при оплате M-Pesa
	SaleID    int64
	Total     float64
}

// Checkout проводит продажу: создает чек, добавляет позиции и при оплате
// наличными фиксирует приход в кассе. Оплата M-Pesa симулируется —
// интеграции с платежным шлюзом у клиента нет, деньги через кассу не идут.
func (s *Service) Checkout(
	ctx context.Context,
	terminalID string,
	items []CartItem,
	payment string,
	phone string,
) (*Receipt, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	if payment != PaymentCash && payment != PaymentMpesa {
		return nil, fmt.Errorf("unknown payment method: %s", payment)
	}

	total := CartTotal(items)

	// 1. Создаем чек
	sale, err := s.CreateSale(ctx, total)
	if err != nil {
		return nil, err
	}

	// 2. Добавляем позиции чека
	for _, item := range items {
		detail := api.SaleDetail{
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total(),
		}
		if _, err := s.CreateSaleDetail(ctx, detail); err != nil {
			return nil, fmt.Errorf("sale %d: %w", sale.ID, err)
		}
	}

	// 3. Наличные проходят через кассу; M-Pesa кассу не трогает
	if payment == PaymentCash {
		if _, err := s.UpdateCashRegister(ctx, api.CashMovement{CashIn: total}); err != nil {
			return nil, fmt.Errorf("sale %d: %w", sale.ID, err)
		}
	}

	return &Receipt{
		SaleID:    sale.ID,
		Reference: fmt.Sprintf("%s/%s", terminalID, uuid.New().String()),
		Total:     total,
		Payment:   payment,
		Phone:     phone,
		CreatedAt: time.Now(),
	}, nil
}
