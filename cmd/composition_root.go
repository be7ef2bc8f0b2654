package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/branchrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	// Auto-create routing serializes batches per branch inside the handler,
	// so a single shared instance is required.
	autoCreateRoutesHandler *commands.AutoCreateRoutesCommandHandler
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var planningFactory commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return uowFactory.Create()
	})

	return CompositionRoot{
		gormDB:                  gormDB,
		uowFactory:              *uowFactory,
		logger:                  logger,
		autoCreateRoutesHandler: commands.NewAutoCreateRoutesCommandHandler(planningFactory, logger),
	}
}

func (c *CompositionRoot) CreateCreateAssignmentCommandHandler() *commands.CreateAssignmentCommandHandler {
	var f commands.PlanningUoWFactory = FuncPlanningUoWFactory(func() commands.PlanningUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateAssignmentCommandHandler(f)
}

func (c *CompositionRoot) AutoCreateRoutesCommandHandler() *commands.AutoCreateRoutesCommandHandler {
	return c.autoCreateRoutesHandler
}

func (c *CompositionRoot) CreateChangeAssignmentStatusCommandHandler() *commands.ChangeAssignmentStatusCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeAssignmentStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() *commands.AssignCourierCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteAssignmentCommandHandler() *commands.DeleteAssignmentCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteAssignmentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAssignmentQueryHandler() queries.GetAssignmentQueryHandler {
	return queries.NewGetAssignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAssignmentsQueryHandler() queries.ListAssignmentsQueryHandler {
	return queries.NewListAssignmentsQueryHandler(c.gormDB)
}

// CreateBranchRepository returns a repository outside any unit of work,
// used by the background job to enumerate auto-dispatch branches.
func (c *CompositionRoot) CreateBranchRepository() ports.BranchRepository {
	return branchrepo.NewGormBranchRepository(c.gormDB)
}

type FuncPlanningUoWFactory func() commands.PlanningUoW

func (f FuncPlanningUoWFactory) Create() commands.PlanningUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}
