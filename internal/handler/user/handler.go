package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "fitness-tracker/internal/domain/user"
	"fitness-tracker/internal/handler/response"
	useruc "fitness-tracker/internal/usecase/user"
	"fitness-tracker/pkg/logger"
)

// Handler обрабатывает HTTP-запросы, связанные с пользователями.
type Handler struct {
	users useruc.Service
	log   logger.Logger
}

// NewHandler создаёт новый UserHandler.
func NewHandler(users useruc.Service, log logger.Logger) *Handler {
	return &Handler{users: users, log: log}
}

// List возвращает страницу пользователей.
//
//	@Summary	Постраничный список пользователей
//	@Tags		users
//	@Produce	json
//	@Param		page		query		int		false	"Номер страницы (с 0)"	default(0)
//	@Param		size		query		int		false	"Размер страницы"		default(20)
//	@Param		sort_by		query		string	false	"Поле сортировки"		default(id)
//	@Param		ascending	query		bool	false	"По возрастанию"		default(true)
//	@Success	200			{array}		UserResponse
//	@Failure	400			{object}	response.Envelope
//	@Router		/users [get]
func (h *Handler) List(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Некорректные параметры страницы", err.Error())
		return
	}

	users, err := h.users.FindPaginated(c.Request.Context(), q.Page, q.Size, q.SortBy, q.Ascending)
	if err != nil {
		response.ServiceError(c, h.log, "users.list", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

// ListSimple возвращает всех пользователей в сокращённом виде.
//
//	@Summary	Сокращённый список пользователей
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	SimpleUserResponse
//	@Router		/users/simple [get]
func (h *Handler) ListSimple(c *gin.Context) {
	users, err := h.users.FindAll(c.Request.Context())
	if err != nil {
		response.ServiceError(c, h.log, "users.simple", err)
		return
	}
	c.JSON(http.StatusOK, toSimpleResponses(users))
}

// Get возвращает пользователя по id.
//
//	@Summary	Пользователь по id
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"Идентификатор"
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	response.Envelope
//	@Router		/users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, found, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		response.ServiceError(c, h.log, "users.get", err)
		return
	}
	if !found {
		response.NotFound(c, "user_not_found", "Пользователь не найден")
		return
	}
	c.JSON(http.StatusOK, ToUserResponse(user))
}

// SearchByEmail ищет пользователей по фрагменту email.
//
//	@Summary	Поиск по фрагменту email
//	@Tags		users
//	@Produce	json
//	@Param		email	query	string	true	"Фрагмент email"
//	@Success	200		{array}	UserEmailResponse
//	@Router		/users/email [get]
func (h *Handler) SearchByEmail(c *gin.Context) {
	users, err := h.users.FindByEmailContaining(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.ServiceError(c, h.log, "users.search_email", err)
		return
	}
	c.JSON(http.StatusOK, toEmailResponses(users))
}

// ListOlderThan возвращает пользователей, родившихся раньше даты.
//
//	@Summary	Пользователи старше даты
//	@Tags		users
//	@Produce	json
//	@Param		date	path		string	true	"Дата YYYY-MM-DD"
//	@Success	200		{array}		UserResponse
//	@Failure	400		{object}	response.Envelope
//	@Router		/users/older/{date} [get]
func (h *Handler) ListOlderThan(c *gin.Context) {
	date, err := parseDate(c.Param("date"))
	if err != nil || date.IsZero() {
		response.BadRequest(c, "Дата должна быть в формате YYYY-MM-DD", c.Param("date"))
		return
	}

	users, err := h.users.FindOlderThan(c.Request.Context(), date)
	if err != nil {
		response.ServiceError(c, h.log, "users.older", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

// Create создаёт пользователя.
//
//	@Summary	Создать пользователя
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateUserRequest	true	"Пользователь"
//	@Success	201		{object}	UserResponse
//	@Failure	400		{object}	response.Envelope
//	@Security	BearerAuth
//	@Router		/users [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Некорректное тело запроса", err.Error())
		return
	}
	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		response.BadRequest(c, "Дата должна быть в формате YYYY-MM-DD", req.BirthDate)
		return
	}

	user := domain.NewUser(req.FirstName, req.LastName, birthDate, req.Email)
	if req.ID != nil {
		user.ID = *req.ID
	}

	created, err := h.users.Create(c.Request.Context(), user)
	if err != nil {
		response.ServiceError(c, h.log, "users.create", err)
		return
	}
	c.JSON(http.StatusCreated, ToUserResponse(created))
}

// Update частично обновляет пользователя.
//
//	@Summary	Обновить пользователя
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Идентификатор"
//	@Param		body	body		UpdateUserRequest	true	"Изменяемые поля"
//	@Success	200		{object}	UserResponse
//	@Failure	400		{object}	response.Envelope
//	@Failure	404		{object}	response.Envelope
//	@Security	BearerAuth
//	@Router		/users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Некорректное тело запроса", err.Error())
		return
	}

	input := useruc.UpdateInput{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate)
		if err != nil {
			response.BadRequest(c, "Дата должна быть в формате YYYY-MM-DD", *req.BirthDate)
			return
		}
		input.BirthDate = &birthDate
	}

	user, found, err := h.users.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ServiceError(c, h.log, "users.update", err)
		return
	}
	if !found {
		response.NotFound(c, "user_not_found", "Пользователь не найден")
		return
	}
	c.JSON(http.StatusOK, ToUserResponse(user))
}

// Delete удаляет пользователя.
//
//	@Summary	Удалить пользователя
//	@Tags		users
//	@Param		id	path	int	true	"Идентификатор"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Remove(c.Request.Context(), id); err != nil {
		response.ServiceError(c, h.log, "users.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID читает числовой параметр пути; при ошибке отвечает 400.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, "Идентификатор должен быть целым числом", raw)
		return 0, false
	}
	return id, true
}
