package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golden283219/blipp-backend/internal/domain/entity"
	"github.com/golden283219/blipp-backend/internal/domain/enum"
	"github.com/golden283219/blipp-backend/internal/domain/event"
	"github.com/golden283219/blipp-backend/pkg/apperror"
)

type statusFixture struct {
	catalog      *catalog
	orderRepo    *fakeOrderRepo
	orderedItems *fakeOrderedItemRepo
	service      *OrderStatusService

	restaurantID   uuid.UUID
	foodGroup      uuid.UUID
	drinkGroup     uuid.UUID
	takeawayGroup  uuid.UUID
	mainsSubcat    uuid.UUID
	startersSubcat uuid.UUID
	drinksSubcat   uuid.UUID
	burgerID       uuid.UUID
	saladID        uuid.UUID
	beerID         uuid.UUID
}

func newStatusFixture(t *testing.T) *statusFixture {
	t.Helper()

	f := &statusFixture{
		catalog:        newCatalog(),
		restaurantID:   uuid.New(),
		foodGroup:      uuid.New(),
		drinkGroup:     uuid.New(),
		takeawayGroup:  uuid.New(),
		mainsSubcat:    uuid.New(),
		startersSubcat: uuid.New(),
		drinksSubcat:   uuid.New(),
		burgerID:       uuid.New(),
		saladID:        uuid.New(),
		beerID:         uuid.New(),
	}

	f.catalog.groups[f.foodGroup] = entity.ProductGroup{
		ID: f.foodGroup, RestaurantID: f.restaurantID, Name: "Mat",
		Vat: decimal.NewFromInt(12),
	}
	f.catalog.groups[f.drinkGroup] = entity.ProductGroup{
		ID: f.drinkGroup, RestaurantID: f.restaurantID, Name: "Dryck",
		Vat: decimal.NewFromInt(25),
	}
	f.catalog.groups[f.takeawayGroup] = entity.ProductGroup{
		ID: f.takeawayGroup, RestaurantID: f.restaurantID, Name: "Takeaway",
		Vat: decimal.NewFromInt(12), IsTakeaway: true,
	}

	f.catalog.subcats[f.mainsSubcat] = entity.ItemSubcategory{
		ID: f.mainsSubcat, RestaurantID: f.restaurantID, Name: "Varmrätter",
		Category: enum.ItemCategoryFood,
	}
	f.catalog.subcats[f.startersSubcat] = entity.ItemSubcategory{
		ID: f.startersSubcat, RestaurantID: f.restaurantID, Name: "Förrätter",
		Category: enum.ItemCategoryFood,
	}
	f.catalog.subcats[f.drinksSubcat] = entity.ItemSubcategory{
		ID: f.drinksSubcat, RestaurantID: f.restaurantID, Name: "Öl",
		Category: enum.ItemCategoryDrink,
	}

	f.catalog.items[f.burgerID] = entity.Item{
		ID: f.burgerID, Name: "Burgare", Price: decimal.NewFromInt(149),
		ItemSubcategoryID: f.mainsSubcat, ProductGroupID: f.foodGroup,
	}
	f.catalog.items[f.saladID] = entity.Item{
		ID: f.saladID, Name: "Sallad", Price: decimal.NewFromInt(99),
		ItemSubcategoryID: f.startersSubcat, ProductGroupID: f.foodGroup,
	}
	f.catalog.items[f.beerID] = entity.Item{
		ID: f.beerID, Name: "IPA", Price: decimal.NewFromInt(79),
		ItemSubcategoryID: f.drinksSubcat, ProductGroupID: f.drinkGroup,
	}

	f.orderedItems = &fakeOrderedItemRepo{c: f.catalog}
	f.orderRepo = newFakeOrderRepo(f.orderedItems)
	f.service = NewOrderStatusService(
		f.orderRepo,
		f.orderedItems,
		&fakeItemRepo{c: f.catalog},
		&fakeProductGroupRepo{c: f.catalog},
	)
	return f
}

func (f *statusFixture) newOrder(t *testing.T, deliveryType enum.DeliveryType) uuid.UUID {
	t.Helper()
	order := &entity.Order{
		RestaurantID: f.restaurantID,
		CustomerID:   uuid.New(),
		DeliveryType: deliveryType,
		FoodStatus:   enum.OrderStatusNotOrdered,
		DrinkStatus:  enum.OrderStatusNotOrdered,
		Open:         true,
	}
	require.NoError(t, f.orderRepo.Create(context.Background(), order))
	return order.ID
}

func TestReplaceOrderedItemsFirstFoodItemOrdersFoodOnly(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	order, events, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusOrdered, order.FoodStatus)
	assert.Equal(t, enum.OrderStatusNotOrdered, order.DrinkStatus)
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeOrderUpdated, events[0].Type)
	assert.Equal(t, f.restaurantID, events[0].RestaurantID)
	require.Len(t, order.OrderedItems, 1)
	assert.Equal(t, 2, order.OrderedItems[0].Quantity)
}

func TestReplaceOrderedItemsBothCategories(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	order, events, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
		{ItemID: f.beerID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusOrdered, order.FoodStatus)
	assert.Equal(t, enum.OrderStatusOrdered, order.DrinkStatus)
	assert.Len(t, events, 1)
}

func TestReplaceOrderedItemsAlreadyOrderedStaysPut(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
	})
	require.NoError(t, err)

	order, events, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusOrdered, order.FoodStatus)
	assert.Empty(t, events)
}

func TestReplaceOrderedItemsRejectsZeroQuantity(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 0},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 400, appErr.Code)
}

func TestReplaceOrderedItemsUnknownItem(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: uuid.New(), Quantity: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestReplaceOrderedItemsTakeawayReroutesProductGroup(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeTakeaway)

	order, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
		{ItemID: f.beerID, Quantity: 1},
	})
	require.NoError(t, err)

	for _, oi := range order.OrderedItems {
		assert.Equal(t, f.takeawayGroup, oi.ProductGroupID)
	}
}

func TestReplaceOrderedItemsReservationKeepsItemGroup(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	order, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.beerID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, order.OrderedItems, 1)
	assert.Equal(t, f.drinkGroup, order.OrderedItems[0].ProductGroupID)
}

func TestAppendOrderedItemOrdersDrinkCategory(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
	})
	require.NoError(t, err)

	order, events, err := f.service.AppendOrderedItem(context.Background(), orderID, OrderedItemInput{
		ItemID: f.beerID, Quantity: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusOrdered, order.DrinkStatus)
	assert.Len(t, events, 1)
	assert.Len(t, order.OrderedItems, 2)
}

func TestSetSubcategoryDoneCompletesFoodWhenAllFoodDone(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
		{ItemID: f.beerID, Quantity: 1},
	})
	require.NoError(t, err)

	order, events, err := f.service.SetSubcategoryDone(context.Background(), orderID, f.mainsSubcat, true)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusDone, order.FoodStatus)
	assert.Equal(t, enum.OrderStatusOrdered, order.DrinkStatus)
	require.Len(t, events, 1)
	assert.Equal(t, event.TypeCategoryStatus, events[0].Type)
}

func TestSetSubcategoryDonePartialFoodStaysOrdered(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
		{ItemID: f.saladID, Quantity: 1},
	})
	require.NoError(t, err)

	order, events, err := f.service.SetSubcategoryDone(context.Background(), orderID, f.startersSubcat, true)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusOrdered, order.FoodStatus)
	assert.Empty(t, events)
}

func TestSetSubcategoryDoneUnmarkFallsBackToPreparing(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
	})
	require.NoError(t, err)

	order, _, err := f.service.SetSubcategoryDone(context.Background(), orderID, f.mainsSubcat, true)
	require.NoError(t, err)
	require.Equal(t, enum.OrderStatusDone, order.FoodStatus)

	order, events, err := f.service.SetSubcategoryDone(context.Background(), orderID, f.mainsSubcat, false)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusPreparing, order.FoodStatus)
	require.Len(t, events, 1)
}

func TestSetSubcategoryDoneNotOnOrder(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.beerID, Quantity: 1},
	})
	require.NoError(t, err)

	_, _, err = f.service.SetSubcategoryDone(context.Background(), orderID, f.mainsSubcat, true)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestEvaluateDoneStatusNeverRegressesDelivered(t *testing.T) {
	f := newStatusFixture(t)
	orderID := f.newOrder(t, enum.DeliveryTypeReservation)

	_, _, err := f.service.ReplaceOrderedItems(context.Background(), orderID, []OrderedItemInput{
		{ItemID: f.burgerID, Quantity: 1},
	})
	require.NoError(t, err)

	delivered := enum.OrderStatusDelivered
	require.NoError(t, f.orderRepo.UpdateStatuses(context.Background(), orderID, &delivered, nil))

	order, _, err := f.service.SetSubcategoryDone(context.Background(), orderID, f.mainsSubcat, true)
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusDelivered, order.FoodStatus)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newStatusFixture(t)

	_, err := f.service.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestNextDoneStatusTable(t *testing.T) {
	sub := entity.ItemSubcategory{Category: enum.ItemCategoryFood}
	line := func(done bool) entity.OrderedItem {
		return entity.OrderedItem{
			IsDone: done,
			Item:   &entity.Item{ItemSubcategory: &sub},
		}
	}

	done := enum.OrderStatusDone
	preparing := enum.OrderStatusPreparing

	tests := []struct {
		name    string
		current enum.OrderStatus
		items   []entity.OrderedItem
		want    *enum.OrderStatus
	}{
		{"no items", enum.OrderStatusOrdered, nil, nil},
		{"all done from ordered", enum.OrderStatusOrdered, []entity.OrderedItem{line(true), line(true)}, &done},
		{"all done already done", enum.OrderStatusDone, []entity.OrderedItem{line(true)}, nil},
		{"all done delivered", enum.OrderStatusDelivered, []entity.OrderedItem{line(true)}, nil},
		{"partial from done", enum.OrderStatusDone, []entity.OrderedItem{line(true), line(false)}, &preparing},
		{"partial from ordered", enum.OrderStatusOrdered, []entity.OrderedItem{line(false)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextDoneStatus(tt.current, tt.items, enum.ItemCategoryFood)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}
