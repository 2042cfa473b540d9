package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointventurehq/partnerbooks/internal/services"
	"github.com/jointventurehq/partnerbooks/internal/types"
	"github.com/jointventurehq/partnerbooks/internal/utils"
	"gorm.io/gorm"
)

// TaskHandler handles task routes
type TaskHandler struct {
	DB *gorm.DB
}

// CreateTasks handles POST /api/projects/:id/tasks
// @Summary Create tasks
// @Description Create one task or a batch on a project; financials resync in the same transaction
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param body body object true "Task or array of tasks under 'tasks'"
// @Success 201 {array} models.Task
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /projects/{id}/tasks [post]
func (h *TaskHandler) CreateTasks(c *fiber.Ctx) error {
	var body struct {
		Tasks types.FlexList[services.TaskInput] `json:"tasks"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "tasks.validation.input")
	}

	tasks, err := services.CreateTasks(h.DB, c.Params("id"), body.Tasks.Slice())
	if err != nil {
		return engineErrorResponse(c, err, "createTasks")
	}

	return utils.SuccessResponse(c, tasks, fiber.StatusCreated)
}

// UpdateTask handles PUT /api/tasks/:id
// @Summary Update a task
// @Description Rewrite a task's attributes; financials resync in the same transaction
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param body body services.TaskInput true "Task attributes"
// @Success 200 {object} models.Task
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	var input services.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "tasks.validation.input")
	}

	task, err := services.UpdateTask(h.DB, c.Params("id"), input)
	if err != nil {
		return engineErrorResponse(c, err, "updateTask")
	}

	return utils.SuccessResponse(c, task, fiber.StatusOK)
}

// DeleteTask handles DELETE /api/tasks/:id
// @Summary Delete a task
// @Description Delete a task; financials resync in the same transaction
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	if err := services.DeleteTask(h.DB, c.Params("id")); err != nil {
		return engineErrorResponse(c, err, "deleteTask")
	}
	return utils.MutationSuccessResponse(c, 1)
}
