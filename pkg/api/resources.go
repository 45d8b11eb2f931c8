package api

import "time"

// Product представляет товар в каталоге
type Product struct {
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
	Barcode    string    `json:"barcode"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	ID         int64     `json:"id,omitempty"`
	CategoryID int64     `json:"categoryId,omitempty"`
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	MinStock   int       `json:"minStock,omitempty"` // порог низкого остатка; 0 = порог по умолчанию
	Sales      int       `json:"sales,omitempty"`    // продано единиц за все время
}

// StockAdjustment представляет корректировку остатка товара
type StockAdjustment struct {
	Reason   string `json:"reason"`
	Quantity int    `json:"quantity"` // может быть отрицательной (списание)
}

// Category представляет категорию товаров
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ID          int64  `json:"id,omitempty"`
}

// Supplier представляет поставщика
type Supplier struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

// Sale представляет завершенную продажу (чек)
type Sale struct {
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	ID          int64     `json:"id,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
}

// SaleDetail представляет одну позицию чека
type SaleDetail struct {
	ID        int64   `json:"id,omitempty"`
	SaleID    int64   `json:"saleId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

// CashRegister представляет состояние кассы
type CashRegister struct {
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	ID        int64     `json:"id,omitempty"`
	Balance   float64   `json:"balance"`
	CashIn    float64   `json:"cashin"`
	CashOut   float64   `json:"cashout"`
}

// CashMovement представляет приход/расход наличных.
// Заполняется ровно одно из полей.
type CashMovement struct {
	CashIn  float64 `json:"cashin,omitempty"`
	CashOut float64 `json:"cashout,omitempty"`
}

// UserAccount представляет учетную запись для административных операций.
// Password передается только при создании/смене пароля и никогда не
// возвращается сервером.
type UserAccount struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
	ID       int64  `json:"id,omitempty"`
}
