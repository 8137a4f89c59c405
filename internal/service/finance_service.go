package service

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

// FinanceService produces the daily closing report and its spreadsheet
// export.
type FinanceService struct {
	store  *store.Store
	loc    *time.Location
	logger *zap.Logger
}

func NewFinanceService(store *store.Store, loc *time.Location) *FinanceService {
	return &FinanceService{
		store:  store,
		loc:    loc,
		logger: util.GetLogger(),
	}
}

// DailyClosing is the end-of-day summary. Cancelled orders are excluded from
// every revenue figure; net is revenue minus the day's expenses.
type DailyClosing struct {
	Date            string           `json:"date"`
	OrderCount      int              `json:"order_count"`
	CancelledCount  int              `json:"cancelled_count"`
	Revenue         int64            `json:"revenue"`
	RevenueByMethod map[string]int64 `json:"revenue_by_method"`
	AverageTicket   int64            `json:"average_ticket"`
	DeliveryFees    int64            `json:"delivery_fees"`
	Discounts       int64            `json:"discounts"`
	Expenses        int64            `json:"expenses"`
	Net             int64            `json:"net"`
}

// Closing aggregates one local calendar day.
func (s *FinanceService) Closing(ctx context.Context, day time.Time) (*DailyClosing, error) {
	ctx, span := util.StartSpan(ctx, "FinanceService.Closing")
	defer span.End()

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 0, 1)

	orders, err := s.store.GetOrdersBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.GetExpensesBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	closing := aggregateClosing(orders, expenses)
	closing.Date = from.Format("2006-01-02")
	return closing, nil
}

// aggregateClosing folds a day's orders and expenses into the closing
// figures.
func aggregateClosing(orders []models.Order, expenses []models.Expense) *DailyClosing {
	closing := &DailyClosing{
		RevenueByMethod: make(map[string]int64),
	}

	for _, o := range orders {
		if o.Status == models.StatusCancelled {
			closing.CancelledCount++
			continue
		}
		closing.OrderCount++
		closing.Revenue += o.Total
		closing.DeliveryFees += o.DeliveryFee
		closing.Discounts += o.Discount
		closing.RevenueByMethod[classifyPayment(&o)] += o.Total
	}

	if closing.OrderCount > 0 {
		closing.AverageTicket = closing.Revenue / int64(closing.OrderCount)
	}

	for _, e := range expenses {
		closing.Expenses += e.Amount
	}
	closing.Net = closing.Revenue - closing.Expenses

	return closing
}

// classifyPayment reads the payment method column. Orders imported from the
// era before the column existed fall back to sniffing the free-text notes.
func classifyPayment(o *models.Order) string {
	switch o.PaymentMethod {
	case models.PaymentPix, models.PaymentCard, models.PaymentCash:
		return o.PaymentMethod
	}

	if o.Notes != nil {
		notes := strings.ToLower(*o.Notes)
		switch {
		case strings.Contains(notes, "pix"):
			return models.PaymentPix
		case strings.Contains(notes, "cartão"), strings.Contains(notes, "cartao"):
			return models.PaymentCard
		case strings.Contains(notes, "dinheiro"):
			return models.PaymentCash
		}
	}
	return "desconhecido"
}

// ExportClosingXLSX renders the closing as a spreadsheet for download.
func (s *FinanceService) ExportClosingXLSX(ctx context.Context, day time.Time) ([]byte, error) {
	closing, err := s.Closing(ctx, day)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Fechamento " + closing.Date)
	if err != nil {
		return nil, err
	}

	addRow := func(label string, value string) {
		row := sheet.AddRow()
		row.AddCell().SetString(label)
		row.AddCell().SetString(value)
	}

	addRow("Data", closing.Date)
	addRow("Pedidos", strconv.Itoa(closing.OrderCount))
	addRow("Cancelados", strconv.Itoa(closing.CancelledCount))
	addRow("Faturamento", FormatBRL(closing.Revenue))
	addRow("Ticket médio", FormatBRL(closing.AverageTicket))
	addRow("Taxas de entrega", FormatBRL(closing.DeliveryFees))
	addRow("Descontos", FormatBRL(closing.Discounts))
	addRow("Despesas", FormatBRL(closing.Expenses))
	addRow("Líquido", FormatBRL(closing.Net))

	sheet.AddRow()
	header := sheet.AddRow()
	header.AddCell().SetString("Forma de pagamento")
	header.AddCell().SetString("Valor")
	for _, method := range []string{models.PaymentPix, models.PaymentCard, models.PaymentCash, "desconhecido"} {
		amount, ok := closing.RevenueByMethod[method]
		if !ok {
			continue
		}
		addRow(models.PaymentLabel(method), FormatBRL(amount))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info("Daily closing exported", zap.String("date", closing.Date))
	return buf.Bytes(), nil
}
