package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekindev/coursesearch/internal/app/models/dto"
	"github.com/ekindev/coursesearch/internal/app/services"
	"github.com/ekindev/coursesearch/internal/middleware"
)

// SearchController handles similarity search requests
type SearchController struct {
	searchService services.SearchService
}

// NewSearchController creates a new SearchController
func NewSearchController(searchService services.SearchService) *SearchController {
	return &SearchController{
		searchService: searchService,
	}
}

// Search handles GET and POST /search. GET carries query/school/limit as
// query parameters, POST as a JSON body.
func (c *SearchController) Search(ctx *gin.Context) {
	req, ok := c.bindRequest(ctx)
	if !ok {
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("'query' is required."))
		return
	}

	limit := services.DefaultSearchLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	results, err := c.searchService.Search(ctx, req.Query, req.School, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SearchResponse{Results: results})
}

// bindRequest extracts the search parameters for either method. Returns
// ok=false after writing a 400 response.
func (c *SearchController) bindRequest(ctx *gin.Context) (dto.SearchRequest, bool) {
	var req dto.SearchRequest

	if ctx.Request.Method == http.MethodPost {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field == "limit" {
				ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("'limit' must be an integer."))
			} else {
				ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request body."))
			}
			return req, false
		}
		return req, true
	}

	req.Query = ctx.Query("query")
	req.School = ctx.Query("school")
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("'limit' must be an integer."))
			return req, false
		}
		req.Limit = &limit
	}

	return req, true
}
