package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jpsm83/notes2025back/internal/core/ports"
)

type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List returns every note with its owner embedded. Served read-through from
// the listing cache, so results may trail writes by up to one TTL window.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.NoteWithOwner
// @Failure      404  {object}  errorResponse
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no notes found")
	}
	return c.JSON(http.StatusOK, notes)
}

// Get returns a single note by id.
//
// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  domain.NoteWithOwner
// @Failure      404  {object}  errorResponse
// @Router       /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	note, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

// Create adds a note for an existing user.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.service.Create(c.Request().Context(), ports.CreateNoteInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		UserID:      req.UserID,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "new note created"})
}

// Update replaces all mutable note fields. An unchanged payload is reported
// rather than written.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Note id"
// @Param        body  body      updateNoteRequest  true  "Note details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /notes/{id} [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateNoteInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    *req.Priority,
		Completed:   *req.Completed,
	})
	if err != nil {
		return err
	}

	if !result.Changed {
		return c.JSON(http.StatusOK, messageResponse{Message: "no changes detected"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("%s updated", result.Note.Title)})
}

// Delete removes a single note.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("note %s deleted", id)})
}
