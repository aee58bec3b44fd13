package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type ExpenseHandler struct {
	expenseService ports.ExpenseService
}

func NewExpenseHandler(expenseService ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type createExpenseRequest struct {
	Date      string   `json:"date"`
	Amount    int      `json:"amount" validate:"required,gt=0"`
	Category  string   `json:"category" validate:"required"`
	Memo      string   `json:"memo"`
	ProjectID string   `json:"project_id"`
	Receipts  [][]byte `json:"receipts"`
}

// Create submits one expense record and returns the resulting entry.
func (h *ExpenseHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseService.Submit(c.Request().Context(), actor, ports.CreateExpenseInput{
		Date:      req.Date,
		Amount:    req.Amount,
		Category:  req.Category,
		Memo:      req.Memo,
		ProjectID: req.ProjectID,
		Receipts:  req.Receipts,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, expense)
}

// List returns the caller's expense collection, newest first.
func (h *ExpenseHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenseService.List(c.Request().Context(), actor, ports.ExpenseFilter{
		ProjectID: c.QueryParam("project_id"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"expenses": expenses})
}

// Summary aggregates the collection by category and project.
func (h *ExpenseHandler) Summary(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	filter := ports.SummaryFilter{
		ProjectID: c.QueryParam("project_id"),
		Category:  c.QueryParam("category"),
	}
	if y := c.QueryParam("year"); y != "" {
		if filter.Year, err = strconv.Atoi(y); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be numeric")
		}
	}
	if m := c.QueryParam("month"); m != "" {
		if filter.Month, err = strconv.Atoi(m); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "month must be numeric")
		}
	}

	summary, err := h.expenseService.Summary(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
