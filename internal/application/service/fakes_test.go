package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/pkg/apperror"
	"github.com/golden283219/blipp-backend/pkg/pagination"
	"github.com/golden283219/blipp-backend/pkg/swedbank"
)

// catalog is the shared in-memory menu the catalog fakes read from.
type catalog struct {
	items     map[uuid.UUID]entity.Item
	subcats   map[uuid.UUID]entity.ItemSubcategory
	variants  map[uuid.UUID]entity.ItemVariantOption
	allergies map[uuid.UUID]entity.Allergy
	groups    map[uuid.UUID]entity.ProductGroup
}

func newCatalog() *catalog {
	return &catalog{
		items:     make(map[uuid.UUID]entity.Item),
		subcats:   make(map[uuid.UUID]entity.ItemSubcategory),
		variants:  make(map[uuid.UUID]entity.ItemVariantOption),
		allergies: make(map[uuid.UUID]entity.Allergy),
		groups:    make(map[uuid.UUID]entity.ProductGroup),
	}
}

func (c *catalog) itemWithRelations(id uuid.UUID) (entity.Item, bool) {
	item, ok := c.items[id]
	if !ok {
		return entity.Item{}, false
	}
	if sub, ok := c.subcats[item.ItemSubcategoryID]; ok {
		item.ItemSubcategory = &sub
	}
	if group, ok := c.groups[item.ProductGroupID]; ok {
		item.ProductGroup = &group
	}
	return item, true
}

type fakeItemRepo struct{ c *catalog }

func (f *fakeItemRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	seen := make(map[uuid.UUID]bool)
	var items []entity.Item
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if item, ok := f.c.itemWithRelations(id); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

type fakeVariantRepo struct{ c *catalog }

func (f *fakeVariantRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.ItemVariantOption, error) {
	var variants []entity.ItemVariantOption
	for _, id := range ids {
		if v, ok := f.c.variants[id]; ok {
			variants = append(variants, v)
		}
	}
	return variants, nil
}

type fakeAllergyRepo struct{ c *catalog }

func (f *fakeAllergyRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Allergy, error) {
	var allergies []entity.Allergy
	for _, id := range ids {
		if a, ok := f.c.allergies[id]; ok {
			allergies = append(allergies, a)
		}
	}
	return allergies, nil
}

type fakeProductGroupRepo struct{ c *catalog }

func (f *fakeProductGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ProductGroup, error) {
	if g, ok := f.c.groups[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (f *fakeProductGroupRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]entity.ProductGroup, error) {
	var groups []entity.ProductGroup
	for _, g := range f.c.groups {
		if g.RestaurantID == restaurantID {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}

func (f *fakeProductGroupRepo) GetTakeawayGroup(_ context.Context, restaurantID uuid.UUID) (*entity.ProductGroup, error) {
	return f.flagged(restaurantID, func(g entity.ProductGroup) bool { return g.IsTakeaway }, "Takeaway product group")
}

func (f *fakeProductGroupRepo) GetDeliveryGroup(_ context.Context, restaurantID uuid.UUID) (*entity.ProductGroup, error) {
	return f.flagged(restaurantID, func(g entity.ProductGroup) bool { return g.IsDelivery }, "Delivery product group")
}

func (f *fakeProductGroupRepo) flagged(restaurantID uuid.UUID, match func(entity.ProductGroup) bool, resource string) (*entity.ProductGroup, error) {
	for _, g := range f.c.groups {
		if g.RestaurantID == restaurantID && match(g) {
			return &g, nil
		}
	}
	return nil, apperror.NewNotFoundError(resource)
}

type fakeOrderedItemRepo struct {
	mu    sync.Mutex
	c     *catalog
	items []entity.OrderedItem
}

func (f *fakeOrderedItemRepo) CreateBatch(_ context.Context, items []entity.OrderedItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		f.items = append(f.items, item)
	}
	return nil
}

func (f *fakeOrderedItemRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.OrderedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byOrderLocked(orderID), nil
}

func (f *fakeOrderedItemRepo) byOrderLocked(orderID uuid.UUID) []entity.OrderedItem {
	var out []entity.OrderedItem
	for _, item := range f.items {
		if item.OrderID != orderID {
			continue
		}
		if full, ok := f.c.itemWithRelations(item.ItemID); ok {
			item.Item = &full
		}
		out = append(out, item)
	}
	return out
}

func (f *fakeOrderedItemRepo) DeleteByOrderID(_ context.Context, orderID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, item := range f.items {
		if item.OrderID != orderID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeOrderedItemRepo) SetDone(_ context.Context, ids []uuid.UUID, done bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range f.items {
		if want[f.items[i].ID] {
			f.items[i].IsDone = done
		}
	}
	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	itemRepo  *fakeOrderedItemRepo
	customers map[uuid.UUID]entity.Customer
	tables    map[uuid.UUID]entity.Table
}

func newFakeOrderRepo(itemRepo *fakeOrderedItemRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    make(map[uuid.UUID]*entity.Order),
		itemRepo:  itemRepo,
		customers: make(map[uuid.UUID]entity.Customer),
		tables:    make(map[uuid.UUID]entity.Table),
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	order := *stored
	f.attachRelationsLocked(&order)
	return &order, nil
}

func (f *fakeOrderRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	stored, ok := f.orders[id]
	if !ok {
		f.mu.Unlock()
		return nil, nil
	}
	order := *stored
	f.attachRelationsLocked(&order)
	f.mu.Unlock()

	items, _ := f.itemRepo.GetByOrderID(context.Background(), id)
	order.OrderedItems = items
	return &order, nil
}

func (f *fakeOrderRepo) attachRelationsLocked(order *entity.Order) {
	if c, ok := f.customers[order.CustomerID]; ok {
		order.Customer = &c
	}
	if order.TableID != nil {
		if t, ok := f.tables[*order.TableID]; ok {
			order.Table = &t
		}
	}
}

func (f *fakeOrderRepo) UpdateStatuses(_ context.Context, id uuid.UUID, food, drink *enum.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if food != nil {
		order.FoodStatus = *food
	}
	if drink != nil {
		order.DrinkStatus = *drink
	}
	return nil
}

func (f *fakeOrderRepo) MarkPaid(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok || order.IsPaid {
		return false, nil
	}
	order.IsPaid = true
	return true, nil
}

func (f *fakeOrderRepo) ListOpenByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]entity.Order, error) {
	f.mu.Lock()
	var ids []uuid.UUID
	for id, order := range f.orders {
		if order.RestaurantID == restaurantID && order.Open {
			ids = append(ids, id)
		}
	}
	f.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	var orders []entity.Order
	for _, id := range ids {
		order, _ := f.GetWithItems(context.Background(), id)
		orders = append(orders, *order)
	}
	return orders, nil
}

type fakeRestaurantRepo struct {
	restaurants map[uuid.UUID]entity.Restaurant
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	if r, ok := f.restaurants[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRestaurantRepo) List(_ context.Context) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	for _, r := range f.restaurants {
		out = append(out, r)
	}
	return out, nil
}

type fakeCashRegisterRepo struct {
	registers map[uuid.UUID]entity.CashRegister
}

func (f *fakeCashRegisterRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	if r, ok := f.registers[id]; ok {
		return &r, nil
	}
	return nil, nil
}

type fakeCredentialsRepo struct {
	creds map[uuid.UUID]entity.MerchantCredentials
}

func (f *fakeCredentialsRepo) GetByRestaurant(_ context.Context, restaurantID uuid.UUID) (*entity.MerchantCredentials, error) {
	if c, ok := f.creds[restaurantID]; ok {
		return &c, nil
	}
	return nil, nil
}

type fakeDeliveryCostRepo struct {
	costs map[uuid.UUID]entity.DeliveryCost
}

func (f *fakeDeliveryCostRepo) GetByRestaurant(_ context.Context, restaurantID uuid.UUID) (*entity.DeliveryCost, error) {
	if c, ok := f.costs[restaurantID]; ok {
		return &c, nil
	}
	return nil, nil
}

type fakePaymentInfoRepo struct {
	mu    sync.Mutex
	infos map[uuid.UUID]entity.PaymentInfo
}

func newFakePaymentInfoRepo() *fakePaymentInfoRepo {
	return &fakePaymentInfoRepo{infos: make(map[uuid.UUID]entity.PaymentInfo)}
}

func (f *fakePaymentInfoRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) (*entity.PaymentInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if info, ok := f.infos[orderID]; ok {
		return &info, nil
	}
	return nil, nil
}

func (f *fakePaymentInfoRepo) Replace(_ context.Context, info *entity.PaymentInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	f.infos[info.OrderID] = *info
	return nil
}

type registerKey struct {
	restaurantID   uuid.UUID
	cashRegisterID uuid.UUID
}

type fakeReceiptRepo struct {
	mu       sync.Mutex
	receipts []*entity.Receipt
}

func (f *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.receipts {
		if existing.RestaurantID == receipt.RestaurantID &&
			existing.CashRegisterID == receipt.CashRegisterID &&
			existing.SN == receipt.SN {
			return gorm.ErrDuplicatedKey
		}
	}
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	stored := *receipt
	f.receipts = append(f.receipts, &stored)
	return nil
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.receipts {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) MarkReturned(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.receipts {
		if r.ID == id {
			if r.IsReturned {
				return false, nil
			}
			r.IsReturned = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReceiptRepo) ConsumeCopyAllowance(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.receipts {
		if r.ID == id {
			if !r.AllowedToCopy {
				return false, nil
			}
			r.AllowedToCopy = false
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReceiptRepo) ListByWindow(_ context.Context, restaurantID uuid.UUID, from, to time.Time, isReturn bool) ([]entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Receipt
	for _, r := range f.receipts {
		if r.RestaurantID != restaurantID || r.IsReturnReceipt != isReturn {
			continue
		}
		if r.Date.Before(from) || !r.Date.Before(to) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeReceiptRepo) SumTotals(_ context.Context, restaurantID uuid.UUID, isReturn bool) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	for _, r := range f.receipts {
		if r.RestaurantID == restaurantID && r.IsReturnReceipt == isReturn {
			total = total.Add(r.Total)
		}
	}
	return total, nil
}

func (f *fakeReceiptRepo) ListReturnedWithoutClone(_ context.Context, restaurantID uuid.UUID) ([]entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cloned := make(map[uuid.UUID]bool)
	for _, r := range f.receipts {
		if r.IsReturnReceipt {
			cloned[r.OrderID] = true
		}
	}
	var out []entity.Receipt
	for _, r := range f.receipts {
		if r.RestaurantID == restaurantID && r.IsReturned && !r.IsReturnReceipt && !cloned[r.OrderID] {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReceiptRepo) List(_ context.Context, restaurantID uuid.UUID, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Receipt
	for _, r := range f.receipts {
		if r.RestaurantID == restaurantID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

type fakeCounterRepo struct {
	mu       sync.Mutex
	counters map[registerKey]int64
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counters: make(map[registerKey]int64)}
}

func (f *fakeCounterRepo) NextSerial(_ context.Context, restaurantID, cashRegisterID uuid.UUID, seed int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := registerKey{restaurantID, cashRegisterID}
	if _, ok := f.counters[key]; !ok {
		f.counters[key] = seed
		return seed, nil
	}
	f.counters[key]++
	return f.counters[key], nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports []*entity.Report
}

func (f *fakeReportRepo) Create(_ context.Context, report *entity.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	stored := *report
	f.reports = append(f.reports, &stored)
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reports {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]entity.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Report
	for _, r := range f.reports {
		if r.RestaurantID == restaurantID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// fakeGateway scripts gateway responses and records every call.
type fakeGateway struct {
	mu sync.Mutex

	createID  string
	createErr error
	created   []swedbank.PaymentPayload

	saleState    string
	captureState string
	stateErr     error

	card    *swedbank.CardInfo
	cardErr error

	reverseState string
	reverseErr   error
	reverseCalls int
}

func (f *fakeGateway) CreatePayment(_ context.Context, _, _ string, payload swedbank.PaymentPayload) (*swedbank.PaymentCreated, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	created := &swedbank.PaymentCreated{}
	created.Payment.ID = f.createID
	created.Operations = []swedbank.Operation{{Rel: "redirect-paymentUrl", Href: "https://pay.example/" + f.createID}}
	return created, nil
}

func (f *fakeGateway) SaleState(_ context.Context, _, _ string) (string, error) {
	return f.saleState, f.stateErr
}

func (f *fakeGateway) CaptureState(_ context.Context, _, _ string) (string, error) {
	return f.captureState, f.stateErr
}

func (f *fakeGateway) CardAuthorization(_ context.Context, _, _ string) (*swedbank.CardInfo, error) {
	return f.card, f.cardErr
}

func (f *fakeGateway) Reverse(_ context.Context, _, _ string, _ swedbank.ReversalPayload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reverseCalls++
	return f.reverseState, f.reverseErr
}

// fakeMailer records dispatched documents.
type fakeMailer struct {
	mu           sync.Mutex
	receiptSends []string
	reportSends  []string
	err          error
}

func (f *fakeMailer) SendReceiptCopy(toEmail string, _ *entity.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.receiptSends = append(f.receiptSends, toEmail)
	return nil
}

func (f *fakeMailer) SendReport(toEmail string, _ *entity.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.reportSends = append(f.reportSends, toEmail)
	return nil
}
