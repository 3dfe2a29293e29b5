package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memoboard/memo-api/internal/api/middleware"
	"github.com/memoboard/memo-api/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type createCommentRequest struct {
	MemoID   int64  `json:"memo_id" validate:"required"`
	Contents string `json:"contents" validate:"required"`
}

type updateCommentRequest struct {
	Contents string `json:"contents" validate:"required"`
}

// Create attaches a comment to an existing memo.
//
// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      createCommentRequest  true  "Comment contents"
// @Success      201   {object}  domain.Comment
// @Failure      404   {object}  statusResponse
// @Router       /api/comment [post]
func (h *CommentHandler) Create(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Create(c.Request().Context(), p, req.MemoID, req.Contents)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// Update edits a comment; the ownership policy is evaluated before the write.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Comment id"
// @Param        body  body      updateCommentRequest  true  "New contents"
// @Success      200   {object}  domain.Comment
// @Failure      403   {object}  statusResponse
// @Failure      404   {object}  statusResponse
// @Router       /api/comment/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.Update(c.Request().Context(), p, id, req.Contents)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete removes a comment; the ownership policy is evaluated before the delete.
//
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Param        id   path      int  true  "Comment id"
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  statusResponse
// @Failure      404  {object}  statusResponse
// @Router       /api/comment/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
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
	return c.JSON(http.StatusOK, statusResponse{Status: "200", Message: "comment deleted"})
}
