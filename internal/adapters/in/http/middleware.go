package http

import (
	"net/http"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// BranchHeader carries the tenant scope of every dispatch request.
const BranchHeader = "X-Branch-ID"

const branchContextKey = "branchID"

// BranchScope extracts and validates the branch id header. Requests without
// a valid branch id are rejected before reaching any handler.
func BranchScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw := ctx.Request().Header.Get(BranchHeader)
		if raw == "" {
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "Missing " + BranchHeader + " header",
			})
		}

		branchID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "Invalid " + BranchHeader + " header",
			})
		}

		ctx.Set(branchContextKey, branchID)
		return next(ctx)
	}
}

func branchID(ctx echo.Context) kernel.UUID {
	id, _ := ctx.Get(branchContextKey).(kernel.UUID)
	return id
}
