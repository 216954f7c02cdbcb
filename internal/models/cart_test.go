package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CartTestSuite struct {
	suite.Suite
	cart *Cart
}

func (suite *CartTestSuite) SetupTest() {
	suite.cart = NewCart()
}

func TestCartTestSuite(t *testing.T) {
	suite.Run(t, new(CartTestSuite))
}

func (suite *CartTestSuite) TestAdd_NewItem() {
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")

	items := suite.cart.Items()
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), int64(1), items[0].ID)
	assert.Equal(suite.T(), 1, items[0].Quantity)
}

func (suite *CartTestSuite) TestAdd_DuplicateMergesQuantity() {
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")

	items := suite.cart.Items()
	assert.Len(suite.T(), items, 1) // never two entries for one product
	assert.Equal(suite.T(), 2, items[0].Quantity)
}

func (suite *CartTestSuite) TestAdd_PreservesInsertionOrder() {
	suite.cart.Add(3, "Spinach", 25.0, "spinach.jpg")
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(2, "Carrots", 30.0, "carrots.jpg")
	suite.cart.Add(3, "Spinach", 25.0, "spinach.jpg")

	items := suite.cart.Items()
	assert.Equal(suite.T(), []int64{3, 1, 2}, []int64{items[0].ID, items[1].ID, items[2].ID})
}

func (suite *CartTestSuite) TestIncrease() {
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Increase(1)
	suite.cart.Increase(99) // unknown id is a no-op

	items := suite.cart.Items()
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), 2, items[0].Quantity)
}

func (suite *CartTestSuite) TestDecrease_RemovesAtQuantityOne() {
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(2, "Carrots", 30.0, "carrots.jpg")
	suite.cart.Add(2, "Carrots", 30.0, "carrots.jpg")

	suite.cart.Decrease(1)
	suite.cart.Decrease(2)

	items := suite.cart.Items()
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), int64(2), items[0].ID)
	assert.Equal(suite.T(), 1, items[0].Quantity)

	// the cart never holds a zero-quantity entry
	for _, item := range items {
		assert.Greater(suite.T(), item.Quantity, 0)
	}
}

func (suite *CartTestSuite) TestRemove_IgnoresQuantity() {
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")

	suite.cart.Remove(1)
	assert.Equal(suite.T(), 0, suite.cart.Len())
}

func (suite *CartTestSuite) TestTotals_RecomputedFresh() {
	assert.Equal(suite.T(), CartTotals{}, suite.cart.Totals())

	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(2, "Carrots", 30.5, "carrots.jpg")

	totals := suite.cart.Totals()
	assert.Equal(suite.T(), 3, totals.ItemCount)
	assert.InDelta(suite.T(), 110.5, totals.AmountDue, 0.0001)

	suite.cart.Decrease(1)
	totals = suite.cart.Totals()
	assert.Equal(suite.T(), 2, totals.ItemCount)
	assert.InDelta(suite.T(), 70.5, totals.AmountDue, 0.0001)

	suite.cart.Clear()
	assert.Equal(suite.T(), CartTotals{}, suite.cart.Totals())
}

func (suite *CartTestSuite) TestTotals_MatchesSumOverAnyOperationSequence() {
	suite.cart.Add(1, "Tomatoes", 40.0, "t.jpg")
	suite.cart.Add(2, "Carrots", 30.0, "c.jpg")
	suite.cart.Increase(1)
	suite.cart.Increase(1)
	suite.cart.Add(3, "Spinach", 25.0, "s.jpg")
	suite.cart.Decrease(2)
	suite.cart.Remove(3)
	suite.cart.Add(2, "Carrots", 30.0, "c.jpg")

	var wantCount int
	var wantDue float64
	for _, item := range suite.cart.Items() {
		wantCount += item.Quantity
		wantDue += item.Price * float64(item.Quantity)
	}

	totals := suite.cart.Totals()
	assert.Equal(suite.T(), wantCount, totals.ItemCount)
	assert.InDelta(suite.T(), wantDue, totals.AmountDue, 0.0001)
}

func (suite *CartTestSuite) TestItems_ReturnsCopy() {
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")

	items := suite.cart.Items()
	items[0].Quantity = 99

	assert.Equal(suite.T(), 1, suite.cart.Items()[0].Quantity)
}

func (suite *CartTestSuite) TestSnapshotRoundTrip() {
	suite.cart.Add(1, "Tomatoes", 40.0, "tomatoes.jpg")
	suite.cart.Add(2, "Carrots", 30.0, "carrots.jpg")
	suite.cart.Increase(2)

	data, err := json.Marshal(suite.cart.Items())
	assert.NoError(suite.T(), err)

	var restored []CartItem
	assert.NoError(suite.T(), json.Unmarshal(data, &restored))

	assert.Equal(suite.T(), suite.cart.Items(), NewCartFromItems(restored).Items())
}

func (suite *CartTestSuite) TestNewCartFromItems_DropsImpossibleEntries() {
	cart := NewCartFromItems([]CartItem{
		{ID: 1, Name: "Tomatoes", Price: 40.0, Quantity: 2},
		{ID: 0, Name: "Ghost", Price: 10.0, Quantity: 1},
		{ID: 2, Name: "Carrots", Price: 30.0, Quantity: 0},
	})

	items := cart.Items()
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), int64(1), items[0].ID)
}
