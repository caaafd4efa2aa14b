package roomtype

import (
	"marigold/infras/otel"
	"marigold/internal/domains/roomtype/model/dto"
	"marigold/internal/domains/roomtype/service"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	"marigold/shared/failure"
	"marigold/shared/validator"
	"marigold/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomType
	otel    otel.Otel
}

func New(service service.RoomType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-types", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRoomTypes)
		routerGroup.Post("/", handler.CreateRoomType)
		routerGroup.Delete("/", handler.DeleteRoomType)
	})
}

// GetRoomTypes lists every room type, newest first.
// @Summary Get all room types
// @Description Retrieve all room types with optional pagination.
// @Tags RoomType
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetRoomTypesResponse "List of room types"
// @Failure 500 {object} response.Envelope
// @Router /v1/room-types [get]
func (handler *Handler) GetRoomTypes(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomTypes, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room types")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room types retrieved successfully")

	response.WithOK(w, http.StatusOK, response.Envelope{
		"room_types": roomTypes.RoomTypes,
		"total_page": roomTypes.TotalPage,
		"total_data": roomTypes.TotalData,
	})
}

// CreateRoomType registers a new room type.
// @Summary Create a new room type
// @Description Create a room type with its nightly and hourly rates.
// @Tags RoomType
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomTypeRequest true "Room Type Request"
// @Success 201 {object} dto.RoomTypeResponse "Room type created successfully"
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /v1/room-types [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomType")
	defer scope.End()

	req := dto.CreateRoomTypeRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room type")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room type created successfully by user " + user)

	response.WithOK(w, http.StatusCreated, response.Envelope{"room_type": res})
}

// DeleteRoomType removes a room type that no room references.
// @Summary Delete a room type
// @Description Delete a room type by id. Blocked while rooms of the type exist.
// @Tags RoomType
// @Accept json
// @Produce json
// @Param id query string true "Room Type ID"
// @Success 200 {object} dto.RoomTypeResponse "Room type deleted successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /v1/room-types [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomType")
	defer scope.End()

	id := r.URL.Query().Get(constant.RequestParamID)
	if id == constant.Empty {
		err := failure.BadRequestFromString("id query parameter is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room type")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room type deleted successfully by user " + user)

	response.WithOK(w, http.StatusOK, response.Envelope{"deleted": res})
}
