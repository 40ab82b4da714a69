package handler

import (
	"strconv"

	"anoa.com/askhub/internal/dto"
	"anoa.com/askhub/internal/repository"
	"anoa.com/askhub/internal/service"
	"anoa.com/askhub/pkg/apperror"
	"anoa.com/askhub/pkg/response"
	"anoa.com/askhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuestionHandler struct {
	service       service.QuestionService
	searchService service.SearchService
}

func NewQuestionHandler(service service.QuestionService, searchService service.SearchService) *QuestionHandler {
	return &QuestionHandler{
		service:       service,
		searchService: searchService,
	}
}

func (h *QuestionHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.New(400, validator.FormatValidationError(err), apperror.ErrInvalidInput))
		return
	}

	question, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"data": question})
}

func (h *QuestionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(400, "invalid question id", apperror.ErrBadRequest))
		return
	}

	var viewerID *uuid.UUID
	if userID, err := response.GetUserID(c); err == nil {
		viewerID = &userID
	}

	question, err := h.service.GetByID(c.Request.Context(), id, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": question})
}

func (h *QuestionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := repository.QuestionFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}

	questions, pagination, err := h.service.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": questions, "pagination": pagination})
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(400, "invalid question id", apperror.ErrBadRequest))
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "question deleted"})
}

// Search queries the full-text index, falling back to the database listing
// when search is not configured.
func (h *QuestionHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, apperror.New(400, "missing search query", apperror.ErrBadRequest))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if h.searchService == nil {
		questions, pagination, err := h.service.List(c.Request.Context(), repository.QuestionFilter{Search: query}, 1, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, gin.H{"data": questions, "pagination": pagination})
		return
	}

	hits, err := h.searchService.Search(query, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"data": hits})
}
