package training

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "fitness-tracker/internal/domain/training"
	"fitness-tracker/internal/handler/response"
	userhandler "fitness-tracker/internal/handler/user"
	traininguc "fitness-tracker/internal/usecase/training"
	"fitness-tracker/pkg/logger"
)

// Handler обрабатывает HTTP-запросы, связанные с тренировками.
type Handler struct {
	trainings traininguc.Service
	log       logger.Logger
}

// NewHandler создаёт новый TrainingHandler.
func NewHandler(trainings traininguc.Service, log logger.Logger) *Handler {
	return &Handler{trainings: trainings, log: log}
}

// List возвращает все тренировки.
//
//	@Summary	Все тренировки
//	@Tags		trainings
//	@Produce	json
//	@Success	200	{array}	TrainingResponse
//	@Router		/trainings [get]
func (h *Handler) List(c *gin.Context) {
	trainings, err := h.trainings.ListAll(c.Request.Context())
	h.respondList(c, "trainings.list", trainings, err)
}

// Get возвращает тренировку по id.
//
//	@Summary	Тренировка по id
//	@Tags		trainings
//	@Produce	json
//	@Param		id	path		int	true	"Идентификатор"
//	@Success	200	{object}	TrainingResponse
//	@Failure	404	{object}	response.Envelope
//	@Router		/trainings/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	training, found, err := h.trainings.Get(c.Request.Context(), id)
	if err != nil {
		response.ServiceError(c, h.log, "trainings.get", err)
		return
	}
	if !found {
		response.NotFound(c, "training_not_found", "Тренировка не найдена")
		return
	}
	c.JSON(http.StatusOK, ToTrainingResponse(training))
}

// ListByUser возвращает тренировки пользователя.
//
//	@Summary	Тренировки пользователя
//	@Tags		trainings
//	@Produce	json
//	@Param		userId	path	int	true	"Идентификатор пользователя"
//	@Success	200		{array}	TrainingResponse
//	@Router		/trainings/user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	trainings, err := h.trainings.ListByUserID(c.Request.Context(), userID)
	h.respondList(c, "trainings.by_user", trainings, err)
}

// ListFinishedAfter возвращает тренировки, закончившиеся после даты.
//
//	@Summary	Тренировки, закончившиеся после даты
//	@Tags		trainings
//	@Produce	json
//	@Param		afterTime	path		string	true	"Дата YYYY-MM-DD"
//	@Success	200			{array}		TrainingResponse
//	@Failure	400			{object}	response.Envelope
//	@Router		/trainings/finished/{afterTime} [get]
func (h *Handler) ListFinishedAfter(c *gin.Context) {
	raw := c.Param("afterTime")
	date, err := time.ParseInLocation(userhandler.DateLayout, raw, time.UTC)
	if err != nil {
		response.BadRequest(c, "Дата должна быть в формате YYYY-MM-DD", raw)
		return
	}
	trainings, err := h.trainings.ListEndedAfter(c.Request.Context(), date)
	h.respondList(c, "trainings.finished_after", trainings, err)
}

// ListByActivityType возвращает тренировки указанного вида.
//
//	@Summary	Тренировки по виду активности
//	@Tags		trainings
//	@Produce	json
//	@Param		activity_type	query		string	true	"RUNNING или Running"
//	@Success	200				{array}		TrainingResponse
//	@Failure	400				{object}	response.Envelope
//	@Router		/trainings/activity-type [get]
func (h *Handler) ListByActivityType(c *gin.Context) {
	activity, err := domain.ParseActivityType(c.Query("activity_type"))
	if err != nil {
		response.BadRequest(c, "Неизвестный вид тренировки", err.Error())
		return
	}
	trainings, err := h.trainings.ListByActivityType(c.Request.Context(), activity)
	h.respondList(c, "trainings.by_activity", trainings, err)
}

// Create создаёт тренировку.
//
//	@Summary	Создать тренировку
//	@Tags		trainings
//	@Accept		json
//	@Produce	json
//	@Param		body	body		TrainingRequest	true	"Тренировка"
//	@Success	201		{object}	TrainingResponse
//	@Failure	400		{object}	response.Envelope
//	@Security	BearerAuth
//	@Router		/trainings [post]
func (h *Handler) Create(c *gin.Context) {
	req, input, ok := bindTraining(c)
	if !ok {
		return
	}

	created, err := h.trainings.Create(c.Request.Context(), input, req.UserID)
	if err != nil {
		response.ServiceError(c, h.log, "trainings.create", err)
		return
	}
	c.JSON(http.StatusCreated, ToTrainingResponse(created))
}

// Update полностью заменяет тренировку.
//
//	@Summary	Обновить тренировку
//	@Tags		trainings
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Идентификатор"
//	@Param		body	body		TrainingRequest	true	"Новые значения всех полей"
//	@Success	200		{object}	TrainingResponse
//	@Failure	400		{object}	response.Envelope
//	@Failure	404		{object}	response.Envelope
//	@Security	BearerAuth
//	@Router		/trainings/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, input, ok := bindTraining(c)
	if !ok {
		return
	}
	// Идентификатор берётся из пути
	input.ID = 0

	updated, err := h.trainings.Update(c.Request.Context(), input, id, req.UserID)
	if err != nil {
		response.ServiceError(c, h.log, "trainings.update", err)
		return
	}
	c.JSON(http.StatusOK, ToTrainingResponse(updated))
}

// Delete удаляет тренировку.
//
//	@Summary	Удалить тренировку
//	@Tags		trainings
//	@Param		id	path	int	true	"Идентификатор"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/trainings/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.trainings.Remove(c.Request.Context(), id); err != nil {
		response.ServiceError(c, h.log, "trainings.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) respondList(c *gin.Context, op string, trainings []*domain.Training, err error) {
	if err != nil {
		response.ServiceError(c, h.log, op, err)
		return
	}
	c.JSON(http.StatusOK, toTrainingResponses(trainings))
}

// bindTraining читает и разбирает тело запроса; при ошибке отвечает 400.
func bindTraining(c *gin.Context) (TrainingRequest, *domain.Training, bool) {
	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Некорректное тело запроса", err.Error())
		return req, nil, false
	}
	input, err := req.toDomain()
	if err != nil {
		response.BadRequest(c, "Некорректное тело запроса", err.Error())
		return req, nil, false
	}
	return req, input, true
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, "Идентификатор должен быть целым числом", raw)
		return 0, false
	}
	return id, true
}
