package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListAssignmentsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListAssignmentsQueryHandler
}

func (suite *ListAssignmentsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(
		&assignmentrepo.AssignmentDTO{},
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewListAssignmentsQueryHandler(db)
}

func (suite *ListAssignmentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListAssignmentsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE assignments, couriers, orders").Error
	suite.Require().NoError(err)
}

func (suite *ListAssignmentsQueryHandlerTestSuite) insertAssignment(
	branchID kernel.UUID, name string, status string, courierID *kernel.UUID, createdAt time.Time,
) kernel.UUID {
	id := kernel.NewUUID()
	dto := assignmentrepo.AssignmentDTO{
		ID:             id.Bytes(),
		BranchID:       branchID.Bytes(),
		Name:           name,
		Status:         status,
		RoutePoints:    []byte("[]"),
		DistanceMeters: 900,
		TimeMinutes:    8,
		CreatedAt:      createdAt,
	}
	if courierID != nil {
		raw := courierID.Bytes()
		dto.CourierID = &raw
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
	return id
}

func (suite *ListAssignmentsQueryHandlerTestSuite) insertCourier(branchID kernel.UUID, name string) kernel.UUID {
	id := kernel.NewUUID()
	err := suite.db.Create(&courierrepo.CourierDTO{
		ID:       id.Bytes(),
		BranchID: branchID.Bytes(),
		Name:     name,
		Active:   true,
		Online:   true,
	}).Error
	suite.Require().NoError(err)
	return id
}

func (suite *ListAssignmentsQueryHandlerTestSuite) insertLinkedOrder(branchID, assignmentID kernel.UUID) {
	raw := assignmentID.Bytes()
	err := suite.db.Create(&orderrepo.OrderDTO{
		ID:           kernel.NewUUID().Bytes(),
		BranchID:     branchID.Bytes(),
		CustomerName: "Maria Silva",
		AddressText:  "Rua das Flores 123",
		City:         "Sao Paulo",
		State:        "SP",
		TotalCents:   3200,
		DeliveryType: "DELIVERY",
		Status:       "DELIVERING",
		AssignmentID: &raw,
	}).Error
	suite.Require().NoError(err)
}

func (suite *ListAssignmentsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewListAssignmentsQuery(kernel.NewUUID(), "")
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(responses)
	suite.Empty(responses)
}

func (suite *ListAssignmentsQueryHandlerTestSuite) TestHandle_ReturnsCountsAndNewestFirst() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	courierID := suite.insertCourier(branchID, "Joao")

	older := suite.insertAssignment(branchID, "Rota Zona Sul", "IN_PROGRESS", &courierID,
		time.Now().Add(-time.Hour))
	newer := suite.insertAssignment(branchID, "Rota Centro", "PENDING", nil, time.Now())
	suite.insertLinkedOrder(branchID, older)
	suite.insertLinkedOrder(branchID, older)

	query, err := queries.NewListAssignmentsQuery(branchID, "")
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 2)

	suite.True(responses[0].ID.IsEqual(newer))
	suite.Equal("Rota Centro", responses[0].Name)
	suite.Nil(responses[0].CourierID)
	suite.Equal("", responses[0].CourierName)
	suite.Equal(0, responses[0].OrderCount)

	suite.True(responses[1].ID.IsEqual(older))
	suite.Equal("Joao", responses[1].CourierName)
	suite.Require().NotNil(responses[1].CourierID)
	suite.True(responses[1].CourierID.IsEqual(courierID))
	suite.Equal(2, responses[1].OrderCount)
}

func (suite *ListAssignmentsQueryHandlerTestSuite) TestHandle_StatusFilter_ReturnsMatchingOnly() {
	ctx := context.Background()
	branchID := kernel.NewUUID()

	pending := suite.insertAssignment(branchID, "Rota Centro", "PENDING", nil, time.Now())
	suite.insertAssignment(branchID, "Rota Zona Sul", "COMPLETED", nil, time.Now())

	query, err := queries.NewListAssignmentsQuery(branchID, "PENDING")
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.True(responses[0].ID.IsEqual(pending))
	suite.Equal("PENDING", responses[0].Status)
}

func (suite *ListAssignmentsQueryHandlerTestSuite) TestHandle_OtherBranch_IsNotVisible() {
	ctx := context.Background()
	branchID := kernel.NewUUID()
	suite.insertAssignment(branchID, "Rota Centro", "PENDING", nil, time.Now())

	query, err := queries.NewListAssignmentsQuery(kernel.NewUUID(), "")
	suite.Require().NoError(err)

	responses, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(responses)
}

func (suite *ListAssignmentsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListAssignmentsQuery{}

	responses, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewListAssignmentsQuery constructor")
	suite.Nil(responses)
}

func TestListAssignmentsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListAssignmentsQueryHandlerTestSuite))
}
