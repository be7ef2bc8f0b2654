package assignmentrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type AssignmentRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *MockAggregateTracker
	repo      *assignmentrepo.GormAssignmentRepository
}

func (suite *AssignmentRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&assignmentrepo.AssignmentDTO{})
	suite.Require().NoError(err)
}

func (suite *AssignmentRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *AssignmentRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE assignments").Error
	suite.Require().NoError(err)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repo = assignmentrepo.NewGormAssignmentRepository(suite.db, suite.tracker)
}

func (suite *AssignmentRepositoryTestSuite) newAssignment(branchID kernel.UUID) *assignment.DeliveryAssignment {
	originPoint, err := kernel.NewGeoPoint(-23.55, -46.63)
	suite.Require().NoError(err)
	origin, err := assignment.NewOriginRoutePoint(originPoint, "Av. Paulista 1000", "Centro")
	suite.Require().NoError(err)

	orderID := kernel.NewUUID()
	stopPoint, err := kernel.NewGeoPoint(-23.553, -46.635)
	suite.Require().NoError(err)
	stop, err := assignment.NewRoutePoint(orderID, stopPoint, "Rua das Flores 123", "Maria Silva")
	suite.Require().NoError(err)

	a, err := assignment.NewDeliveryAssignment(
		kernel.NewUUID(), branchID, "Rota Centro",
		[]assignment.RoutePoint{origin, stop}, 1450, 12, []kernel.UUID{orderID})
	suite.Require().NoError(err)
	return a
}

func (suite *AssignmentRepositoryTestSuite) TestAddAndGet_RoundTripsRoute() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	a := suite.newAssignment(branchID)

	err := suite.repo.Add(ctx, a)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, branchID, a.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(a.ID()))
	suite.Equal("Rota Centro", loaded.Name())
	suite.Equal(assignment.Pending, loaded.Status())
	suite.Equal(1450, loaded.DistanceMeters())
	suite.Equal(12, loaded.TimeMinutes())
	suite.Nil(loaded.CourierID())
	suite.Nil(loaded.StartedAt())

	points := loaded.RoutePoints()
	suite.Require().Len(points, 2)
	suite.True(points[0].IsOrigin())
	suite.Equal("Av. Paulista 1000", points[0].Address())
	suite.Equal("Centro", points[0].Label())
	suite.Require().NotNil(points[1].OrderID())
	suite.True(points[1].OrderID().IsEqual(a.OrderIDs()[0]))
	suite.Equal("Maria Silva", points[1].Label())
	suite.InDelta(-23.553, points[1].Point().Lat(), 1e-9)
	suite.InDelta(-46.635, points[1].Point().Lng(), 1e-9)
}

func (suite *AssignmentRepositoryTestSuite) TestGet_OtherBranch_NotFound() {
	ctx := context.Background()
	a := suite.newAssignment(kernel.NewUUID())

	err := suite.repo.Add(ctx, a)
	suite.Require().NoError(err)

	_, err = suite.repo.Get(ctx, kernel.NewUUID(), a.ID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AssignmentRepositoryTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	a := suite.newAssignment(branchID)

	err := suite.repo.Add(ctx, a)
	suite.Require().NoError(err)

	suite.Require().NoError(a.Start())
	err = suite.repo.Update(ctx, a)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, branchID, a.ID())
	suite.Require().NoError(err)
	suite.Equal(assignment.InProgress, loaded.Status())
	suite.Require().NotNil(loaded.StartedAt())
	suite.WithinDuration(*a.StartedAt(), *loaded.StartedAt(), time.Second)
}

func (suite *AssignmentRepositoryTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	ctx := context.Background()
	a := suite.newAssignment(kernel.NewUUID())

	err := suite.repo.Update(ctx, a)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *AssignmentRepositoryTestSuite) TestDelete_RemovesRow() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	a := suite.newAssignment(branchID)

	err := suite.repo.Add(ctx, a)
	suite.Require().NoError(err)

	err = suite.repo.Delete(ctx, a.ID())
	suite.Require().NoError(err)

	_, err = suite.repo.Get(ctx, branchID, a.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repo.Delete(ctx, a.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestAssignmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryTestSuite))
}
