package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/apperror"
	"github.com/golden283219/blipp-backend/pkg/vatmath"
)

// OrderPricer resolves an order's items into priced, VAT-bucketed receipt
// lines. Payment and receipt generation share this so the charged amount and
// the fiscal document can never disagree.
type OrderPricer struct {
	itemRepo         repository.ItemRepository
	variantRepo      repository.ItemVariantOptionRepository
	allergyRepo      repository.AllergyRepository
	productGroupRepo repository.ProductGroupRepository
	deliveryCostRepo repository.DeliveryCostRepository
}

// NewOrderPricer creates a new order pricer
func NewOrderPricer(
	itemRepo repository.ItemRepository,
	variantRepo repository.ItemVariantOptionRepository,
	allergyRepo repository.AllergyRepository,
	productGroupRepo repository.ProductGroupRepository,
	deliveryCostRepo repository.DeliveryCostRepository,
) *OrderPricer {
	return &OrderPricer{
		itemRepo:         itemRepo,
		variantRepo:      variantRepo,
		allergyRepo:      allergyRepo,
		productGroupRepo: productGroupRepo,
		deliveryCostRepo: deliveryCostRepo,
	}
}

// PricedOrder is the fully resolved pricing of one order: denormalized lines,
// aggregated VAT buckets (delivery bucket included for DELIVERY orders) and
// the rounded total.
type PricedOrder struct {
	Lines        entity.ReceiptItemList
	VatBuckets   []vatmath.Bucket
	DeliveryInfo *entity.DeliveryVatInfo
	Total        decimal.Decimal
	Rounding     decimal.Decimal
}

// Charged returns the whole-unit amount the customer actually pays:
// total plus the rounding adjustment.
func (p *PricedOrder) Charged() decimal.Decimal {
	return p.Total.Add(p.Rounding)
}

// PriceOrder resolves order.OrderedItems into receipt lines. Each line's
// gross is (base price + variant surcharges) * quantity and its VAT bucket
// carries the rate of the line's resolved product group, which may be the
// synthetic takeaway or delivery group rather than the menu item's own.
func (p *OrderPricer) PriceOrder(ctx context.Context, order *entity.Order) (*PricedOrder, error) {
	itemIDs := make([]uuid.UUID, 0, len(order.OrderedItems))
	variantIDs := make([]uuid.UUID, 0)
	allergyIDs := make([]uuid.UUID, 0)
	for _, oi := range order.OrderedItems {
		itemIDs = append(itemIDs, oi.ItemID)
		variantIDs = append(variantIDs, oi.VariantOptionIDs...)
		allergyIDs = append(allergyIDs, oi.AllergyIDs...)
	}

	items, err := p.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemMap := make(map[uuid.UUID]*entity.Item, len(items))
	for i := range items {
		itemMap[items[i].ID] = &items[i]
	}

	variants, err := p.variantRepo.GetByIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	variantMap := make(map[uuid.UUID]*entity.ItemVariantOption, len(variants))
	for i := range variants {
		variantMap[variants[i].ID] = &variants[i]
	}

	allergies, err := p.allergyRepo.GetByIDs(ctx, allergyIDs)
	if err != nil {
		return nil, err
	}
	allergyMap := make(map[uuid.UUID]*entity.Allergy, len(allergies))
	for i := range allergies {
		allergyMap[allergies[i].ID] = &allergies[i]
	}

	groupMap := make(map[uuid.UUID]*entity.ProductGroup)
	for _, oi := range order.OrderedItems {
		if _, ok := groupMap[oi.ProductGroupID]; ok {
			continue
		}
		group, err := p.productGroupRepo.GetByID(ctx, oi.ProductGroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product group %s", oi.ProductGroupID))
		}
		groupMap[oi.ProductGroupID] = group
	}

	lines := make(entity.ReceiptItemList, 0, len(order.OrderedItems))
	lineBuckets := make([]vatmath.Bucket, 0, len(order.OrderedItems))
	total := decimal.Zero

	for _, oi := range order.OrderedItems {
		item, ok := itemMap[oi.ItemID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Item %s", oi.ItemID))
		}
		group := groupMap[oi.ProductGroupID]

		line := entity.ReceiptItem{
			Name:             item.Name,
			Quantity:         oi.Quantity,
			Price:            item.Price,
			ProductGroupID:   group.ID,
			ProductGroupName: group.Name,
		}
		for _, variantID := range oi.VariantOptionIDs {
			variant, ok := variantMap[variantID]
			if !ok {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Variant option %s", variantID))
			}
			line.Variants = append(line.Variants, entity.ReceiptVariant{
				Name:  variant.Name,
				Price: variant.Price,
			})
		}
		for _, allergyID := range oi.AllergyIDs {
			allergy, ok := allergyMap[allergyID]
			if !ok {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Allergy %s", allergyID))
			}
			line.Allergies = append(line.Allergies, allergy.Name)
		}

		gross := line.Gross()
		line.Vat = vatmath.Bucket{Rate: group.Vat, Gross: gross}
		lines = append(lines, line)
		lineBuckets = append(lineBuckets, line.Vat)
		total = total.Add(gross)
	}

	priced := &PricedOrder{Lines: lines}

	if order.DeliveryType == enum.DeliveryTypeDelivery {
		deliveryBucket, cost, err := p.deliveryBucket(ctx, order.RestaurantID)
		if err != nil {
			return nil, err
		}
		info := entity.DeliveryVatInfo(*deliveryBucket)
		priced.DeliveryInfo = &info
		lineBuckets = append(lineBuckets, *deliveryBucket)
		total = total.Add(cost)
	}

	priced.VatBuckets = vatmath.Aggregate(lineBuckets)
	priced.Total = total
	priced.Rounding = vatmath.Rounding(total)
	return priced, nil
}

// deliveryBucket prices the restaurant's delivery fee through its configured
// product group. The fee is a receipt-level bucket, never a line item.
func (p *OrderPricer) deliveryBucket(ctx context.Context, restaurantID uuid.UUID) (*vatmath.Bucket, decimal.Decimal, error) {
	cost, err := p.deliveryCostRepo.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if cost == nil {
		return nil, decimal.Zero, apperror.NewNotFoundError("Delivery cost")
	}
	group, err := p.productGroupRepo.GetByID(ctx, cost.ProductGroupID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if group == nil {
		return nil, decimal.Zero, apperror.NewNotFoundError("Delivery product group")
	}
	return &vatmath.Bucket{Rate: group.Vat, Gross: cost.Cost}, cost.Cost, nil
}
