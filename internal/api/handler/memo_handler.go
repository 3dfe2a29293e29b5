package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/memoboard/memo-api/internal/api/middleware"
	"github.com/memoboard/memo-api/internal/core/ports"
)

// MemoHandler handles HTTP requests for memo operations.
type MemoHandler struct {
	service ports.MemoService
}

func NewMemoHandler(service ports.MemoService) *MemoHandler {
	return &MemoHandler{service: service}
}

type memoRequest struct {
	Title    string `json:"title" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

// Create creates a memo owned by the authenticated user.
//
// @Summary      Create a memo
// @Tags         memos
// @Accept       json
// @Produce      json
// @Param        body  body      memoRequest  true  "Memo contents"
// @Success      201   {object}  domain.Memo
// @Failure      400   {object}  statusResponse
// @Router       /api/memos [post]
func (h *MemoHandler) Create(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req memoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	memo, err := h.service.Create(c.Request().Context(), p, req.Title, req.Contents)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, memo)
}

// GetAll lists every memo with its comments.
//
// @Summary      List memos
// @Tags         memos
// @Produce      json
// @Success      200  {array}  ports.MemoWithComments
// @Router       /api/memos [get]
func (h *MemoHandler) GetAll(c echo.Context) error {
	memos, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, memos)
}

// GetOne returns a single memo with its comments.
//
// @Summary      Get a memo
// @Tags         memos
// @Produce      json
// @Param        id   path      int  true  "Memo id"
// @Success      200  {object}  ports.MemoWithComments
// @Failure      404  {object}  statusResponse
// @Router       /api/memos/{id} [get]
func (h *MemoHandler) GetOne(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	memo, err := h.service.GetOne(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, memo)
}

// Update edits a memo; the ownership policy is evaluated before the write.
//
// @Summary      Update a memo
// @Tags         memos
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Memo id"
// @Param        body  body      memoRequest  true  "New contents"
// @Success      200   {object}  domain.Memo
// @Failure      403   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Router       /api/memos/{id} [put]
func (h *MemoHandler) Update(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req memoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	memo, err := h.service.Update(c.Request().Context(), p, id, req.Title, req.Contents)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, memo)
}

// Delete removes a memo; the ownership policy is evaluated before the delete.
//
// @Summary      Delete a memo
// @Tags         memos
// @Produce      json
// @Param        id   path      int  true  "Memo id"
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  statusResponse
// @Failure      404  {object}  statusResponse
// @Router       /api/memos/{id} [delete]
func (h *MemoHandler) Delete(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "200", Message: "memo deleted"})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
