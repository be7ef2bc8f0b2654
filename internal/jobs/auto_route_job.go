package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AutoRouteJob periodically builds routes for branches that opted into
// automatic dispatch. Each run lists those branches and executes the
// auto-routing use case per branch.
type AutoRouteJob struct {
	handler  *commands.AutoCreateRoutesCommandHandler
	branches ports.BranchRepository
	cron     *cron.Cron
	spec     string
	logger   *slog.Logger
}

// NewAutoRouteJob creates the auto-routing job. The cron spec uses the
// standard five-field format, for example "*/1 * * * *".
func NewAutoRouteJob(
	handler *commands.AutoCreateRoutesCommandHandler,
	branches ports.BranchRepository,
	spec string,
	logger *slog.Logger,
) *AutoRouteJob {
	return &AutoRouteJob{
		handler:  handler,
		branches: branches,
		cron:     cron.New(),
		spec:     spec,
		logger:   logger.With("component", "auto_route_job"),
	}
}

// Start schedules the job and begins the cron loop.
func (j *AutoRouteJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-routing job started", "spec", j.spec)
	return nil
}

// Stop stops the cron loop.
func (j *AutoRouteJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-routing job stopped")
}

func (j *AutoRouteJob) run() {
	ctx := context.Background()

	branchIDs, err := j.branches.GetAutoDispatchBranchIDs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list auto-dispatch branches", "error", err)
		return
	}

	for _, branchID := range branchIDs {
		cmd, err := commands.NewAutoCreateRoutesCommand(branchID, nil)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build auto-routing command",
				"branchID", branchID, "error", err)
			continue
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			// A branch with nothing to route is a normal state, not a failure.
			if isIdleBranch(err) {
				continue
			}
			j.logger.ErrorContext(ctx, "Auto-routing failed for branch",
				"branchID", branchID, "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Auto-routing completed for branch",
			"branchID", branchID,
			"routesCreated", result.RoutesCreated,
			"assignedOrders", result.AssignedOrders,
			"unassignedOrders", result.UnassignedOrders)
	}
}

func isIdleBranch(err error) bool {
	return errors.Is(err, commands.ErrNoDeliverableOrders) ||
		errors.Is(err, commands.ErrNoRoutableOrders) ||
		errors.Is(err, commands.ErrNoAvailableCouriers)
}
