package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/internal/domain/event"
	"github.com/golden283219/blipp-backend/internal/domain/repository"
	"github.com/golden283219/blipp-backend/pkg/apperror"
)

// OrderStatusService drives the per-category (food/drink) status machine.
// Statuses are always derived from a fresh read of the order's full item set;
// the service never trusts statuses computed by an earlier call.
type OrderStatusService struct {
	orderRepo        repository.OrderRepository
	orderedItemRepo  repository.OrderedItemRepository
	itemRepo         repository.ItemRepository
	productGroupRepo repository.ProductGroupRepository
}

// NewOrderStatusService creates a new order status service
func NewOrderStatusService(
	orderRepo repository.OrderRepository,
	orderedItemRepo repository.OrderedItemRepository,
	itemRepo repository.ItemRepository,
	productGroupRepo repository.ProductGroupRepository,
) *OrderStatusService {
	return &OrderStatusService{
		orderRepo:        orderRepo,
		orderedItemRepo:  orderedItemRepo,
		itemRepo:         itemRepo,
		productGroupRepo: productGroupRepo,
	}
}

// GetOrder returns the full order aggregate.
func (s *OrderStatusService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// OrderedItemInput is one requested order line.
type OrderedItemInput struct {
	ItemID           uuid.UUID
	Quantity         int
	VariantOptionIDs []uuid.UUID
	AllergyIDs       []uuid.UUID
	SpecialRequest   string
}

// ReplaceOrderedItems swaps the order's item set for the given one. Items on
// TAKEAWAY and DELIVERY orders are re-routed to the restaurant's synthetic
// takeaway or delivery product group; RESERVATION items keep the menu item's
// own group. After the swap, categories newly holding items move
// NOT_ORDERED -> ORDERED.
func (s *OrderStatusService) ReplaceOrderedItems(ctx context.Context, orderID uuid.UUID, inputs []OrderedItemInput) (*entity.Order, []event.Notification, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Order")
	}

	newItems, err := s.buildOrderedItems(ctx, order, inputs)
	if err != nil {
		return nil, nil, err
	}

	if err := s.orderedItemRepo.DeleteByOrderID(ctx, orderID); err != nil {
		return nil, nil, err
	}
	if err := s.orderedItemRepo.CreateBatch(ctx, newItems); err != nil {
		return nil, nil, err
	}

	events, err := s.evaluateOrderedStatus(ctx, order, newItems)
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return updated, events, nil
}

// AppendOrderedItem adds one item to the order without touching the others.
func (s *OrderStatusService) AppendOrderedItem(ctx context.Context, orderID uuid.UUID, input OrderedItemInput) (*entity.Order, []event.Notification, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Order")
	}

	newItems, err := s.buildOrderedItems(ctx, order, []OrderedItemInput{input})
	if err != nil {
		return nil, nil, err
	}
	if err := s.orderedItemRepo.CreateBatch(ctx, newItems); err != nil {
		return nil, nil, err
	}

	events, err := s.evaluateOrderedStatus(ctx, order, newItems)
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return updated, events, nil
}

// SetSubcategoryDone toggles the done flag on every order line whose item
// belongs to the subcategory, then re-derives the category statuses. A
// kitchen station works one subcategory at a time.
func (s *OrderStatusService) SetSubcategoryDone(ctx context.Context, orderID, subcategoryID uuid.UUID, done bool) (*entity.Order, []event.Notification, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Order")
	}

	var ids []uuid.UUID
	for _, oi := range order.OrderedItems {
		if oi.Item == nil {
			return nil, nil, apperror.NewNotFoundError(fmt.Sprintf("Item %s", oi.ItemID))
		}
		if oi.Item.ItemSubcategoryID == subcategoryID {
			ids = append(ids, oi.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil, apperror.NewNotFoundError("Subcategory on order")
	}

	if err := s.orderedItemRepo.SetDone(ctx, ids, done); err != nil {
		return nil, nil, err
	}

	return s.EvaluateDoneStatus(ctx, orderID)
}

// EvaluateDoneStatus re-derives both category statuses from a fresh snapshot
// of the order and its items. A category with at least one item becomes DONE
// exactly when every one of its items is done; a DONE category whose items
// are no longer all done falls back to PREPARING. Categories without items
// are left untouched.
func (s *OrderStatusService) EvaluateDoneStatus(ctx context.Context, orderID uuid.UUID) (*entity.Order, []event.Notification, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, apperror.NewNotFoundError("Order")
	}

	foodNext := nextDoneStatus(order.FoodStatus, order.OrderedItems, enum.ItemCategoryFood)
	drinkNext := nextDoneStatus(order.DrinkStatus, order.OrderedItems, enum.ItemCategoryDrink)

	if foodNext == nil && drinkNext == nil {
		return order, nil, nil
	}

	if err := s.orderRepo.UpdateStatuses(ctx, orderID, foodNext, drinkNext); err != nil {
		return nil, nil, err
	}
	if foodNext != nil {
		order.FoodStatus = *foodNext
	}
	if drinkNext != nil {
		order.DrinkStatus = *drinkNext
	}

	return order, []event.Notification{event.CategoryStatus(order.RestaurantID, order.ID)}, nil
}

// nextDoneStatus returns the status the category should move to, nil when it
// stays put.
func nextDoneStatus(current enum.OrderStatus, items []entity.OrderedItem, category enum.ItemCategory) *enum.OrderStatus {
	total := 0
	done := 0
	for _, oi := range items {
		if oi.Item == nil || oi.Item.ItemSubcategory == nil {
			continue
		}
		if oi.Item.ItemSubcategory.Category != category {
			continue
		}
		total++
		if oi.IsDone {
			done++
		}
	}
	if total == 0 {
		return nil
	}

	allDone := done == total
	switch {
	case allDone && current != enum.OrderStatusDone && current != enum.OrderStatusDelivered:
		next := enum.OrderStatusDone
		return &next
	case !allDone && current == enum.OrderStatusDone:
		next := enum.OrderStatusPreparing
		return &next
	default:
		return nil
	}
}

// evaluateOrderedStatus moves categories that just received their first items
// from NOT_ORDERED to ORDERED.
func (s *OrderStatusService) evaluateOrderedStatus(ctx context.Context, order *entity.Order, newItems []entity.OrderedItem) ([]event.Notification, error) {
	itemIDs := make([]uuid.UUID, len(newItems))
	for i, oi := range newItems {
		itemIDs[i] = oi.ItemID
	}
	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	hasFood := false
	hasDrink := false
	for _, item := range items {
		if item.ItemSubcategory == nil {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Subcategory of item %s", item.ID))
		}
		switch item.ItemSubcategory.Category {
		case enum.ItemCategoryFood:
			hasFood = true
		case enum.ItemCategoryDrink:
			hasDrink = true
		}
	}

	var foodNext, drinkNext *enum.OrderStatus
	ordered := enum.OrderStatusOrdered
	if hasFood && order.FoodStatus == enum.OrderStatusNotOrdered {
		foodNext = &ordered
	}
	if hasDrink && order.DrinkStatus == enum.OrderStatusNotOrdered {
		drinkNext = &ordered
	}
	if foodNext == nil && drinkNext == nil {
		return nil, nil
	}

	if err := s.orderRepo.UpdateStatuses(ctx, order.ID, foodNext, drinkNext); err != nil {
		return nil, err
	}
	return []event.Notification{event.OrderUpdated(order.RestaurantID, order.ID)}, nil
}

// buildOrderedItems validates the requested lines against the menu and
// resolves each line's product group according to the order's delivery type.
func (s *OrderStatusService) buildOrderedItems(ctx context.Context, order *entity.Order, inputs []OrderedItemInput) ([]entity.OrderedItem, error) {
	itemIDs := make([]uuid.UUID, len(inputs))
	for i, input := range inputs {
		if input.Quantity <= 0 {
			return nil, apperror.NewValidationError("Quantity must be positive")
		}
		itemIDs[i] = input.ItemID
	}

	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemMap := make(map[uuid.UUID]*entity.Item, len(items))
	for i := range items {
		itemMap[items[i].ID] = &items[i]
	}

	var routedGroup *entity.ProductGroup
	switch order.DeliveryType {
	case enum.DeliveryTypeTakeaway:
		routedGroup, err = s.productGroupRepo.GetTakeawayGroup(ctx, order.RestaurantID)
	case enum.DeliveryTypeDelivery:
		routedGroup, err = s.productGroupRepo.GetDeliveryGroup(ctx, order.RestaurantID)
	}
	if err != nil {
		return nil, err
	}

	ordered := make([]entity.OrderedItem, 0, len(inputs))
	for _, input := range inputs {
		item, ok := itemMap[input.ItemID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Item %s", input.ItemID))
		}
		groupID := item.ProductGroupID
		if routedGroup != nil {
			groupID = routedGroup.ID
		}
		ordered = append(ordered, entity.OrderedItem{
			OrderID:          order.ID,
			ItemID:           item.ID,
			ProductGroupID:   groupID,
			Quantity:         input.Quantity,
			VariantOptionIDs: input.VariantOptionIDs,
			AllergyIDs:       input.AllergyIDs,
			SpecialRequest:   input.SpecialRequest,
		})
	}
	return ordered, nil
}
