package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"farmfresh/internal/models"
)

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Get(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartSnapshot), args.Error(1)
}

func (m *MockSnapshotStore) Set(ctx context.Context, sessionID string, snapshot *models.CartSnapshot, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, snapshot, ttl)
	return args.Error(0)
}

func (m *MockSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSnapshotStore) PurgeIdle(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

func (m *MockSnapshotStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type CartServiceTestSuite struct {
	suite.Suite
	store   *MockSnapshotStore
	service CartServiceInterface
	context context.Context
	session string
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.store = &MockSnapshotStore{}
	suite.service = NewCartService(suite.store, time.Hour)
	suite.context = context.Background()
	suite.session = "9f3c1a2e-session"
}

func (suite *CartServiceTestSuite) TearDownTest() {
	suite.store.AssertExpectations(suite.T())
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (suite *CartServiceTestSuite) TestGet_NoSnapshotRestoresEmptyCart() {
	suite.store.On("Get", suite.context, suite.session).Return(nil, nil)

	cart, err := suite.service.Get(suite.context, suite.session)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, cart.Len())
}

func (suite *CartServiceTestSuite) TestGet_CorruptSnapshotFallsBackSilently() {
	suite.store.On("Get", suite.context, suite.session).
		Return(nil, errors.New("decode cart snapshot: invalid character 'x'"))

	cart, err := suite.service.Get(suite.context, suite.session)
	assert.NoError(suite.T(), err) // never surfaced to the caller
	assert.Equal(suite.T(), 0, cart.Len())
}

func (suite *CartServiceTestSuite) TestGet_RestoresPersistedItems() {
	suite.store.On("Get", suite.context, suite.session).Return(&models.CartSnapshot{
		Items: []models.CartItem{
			{ID: 1, Name: "Tomatoes", Price: 40, Image: "t.jpg", Quantity: 2},
		},
		UpdatedAt: time.Now(),
	}, nil)

	cart, err := suite.service.Get(suite.context, suite.session)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.CartTotals{ItemCount: 2, AmountDue: 80}, cart.Totals())
}

func (suite *CartServiceTestSuite) TestAdd_PersistsMergedSnapshot() {
	suite.store.On("Get", suite.context, suite.session).Return(&models.CartSnapshot{
		Items:     []models.CartItem{{ID: 1, Name: "Tomatoes", Price: 40, Quantity: 1}},
		UpdatedAt: time.Now(),
	}, nil)
	suite.store.On("Set", suite.context, suite.session, mock.MatchedBy(func(snapshot *models.CartSnapshot) bool {
		return len(snapshot.Items) == 1 && snapshot.Items[0].Quantity == 2 && !snapshot.UpdatedAt.IsZero()
	}), time.Hour).Return(nil)

	cart, err := suite.service.Add(suite.context, suite.session, 1, "Tomatoes", 40, "t.jpg")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, cart.Totals().ItemCount)
}

func (suite *CartServiceTestSuite) TestDecrease_LastUnitRemovesEntry() {
	suite.store.On("Get", suite.context, suite.session).Return(&models.CartSnapshot{
		Items:     []models.CartItem{{ID: 1, Name: "Tomatoes", Price: 40, Quantity: 1}},
		UpdatedAt: time.Now(),
	}, nil)
	suite.store.On("Set", suite.context, suite.session, mock.MatchedBy(func(snapshot *models.CartSnapshot) bool {
		return len(snapshot.Items) == 0
	}), time.Hour).Return(nil)

	cart, err := suite.service.Decrease(suite.context, suite.session, 1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, cart.Len())
}

func (suite *CartServiceTestSuite) TestMutate_PersistFailureSurfaces() {
	suite.store.On("Get", suite.context, suite.session).Return(nil, nil)
	suite.store.On("Set", suite.context, suite.session, mock.Anything, time.Hour).
		Return(errors.New("connection refused"))

	_, err := suite.service.Add(suite.context, suite.session, 1, "Tomatoes", 40, "t.jpg")
	assert.Error(suite.T(), err)
}

func (suite *CartServiceTestSuite) TestSerializeForCheckout_DoesNotMutate() {
	items := []models.CartItem{
		{ID: 1, Name: "Tomatoes", Price: 40, Image: "t.jpg", Quantity: 2},
		{ID: 5, Name: "Spinach", Price: 25, Image: "s.jpg", Quantity: 1},
	}
	// Get is called once for the serialization; no Set, no Delete.
	suite.store.On("Get", suite.context, suite.session).Return(&models.CartSnapshot{Items: items, UpdatedAt: time.Now()}, nil)

	cartData, itemCount, err := suite.service.SerializeForCheckout(suite.context, suite.session)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, itemCount)

	var decoded []models.CartItem
	assert.NoError(suite.T(), json.Unmarshal([]byte(cartData), &decoded))
	assert.Equal(suite.T(), items, decoded)
	suite.store.AssertNotCalled(suite.T(), "Set")
	suite.store.AssertNotCalled(suite.T(), "Delete")
}

func (suite *CartServiceTestSuite) TestClear_DeletesSnapshot() {
	suite.store.On("Delete", suite.context, suite.session).Return(nil)

	assert.NoError(suite.T(), suite.service.Clear(suite.context, suite.session))
}
