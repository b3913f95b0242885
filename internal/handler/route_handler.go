package handler

import (
	"bytes"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-finder/internal/export"
	"github.com/jengzang/route-finder/internal/models"
	"github.com/jengzang/route-finder/internal/repository"
	"github.com/jengzang/route-finder/internal/service"
	"github.com/jengzang/route-finder/pkg/response"
)

// RouteHandler handles HTTP requests for route selection
type RouteHandler struct {
	routeService *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
	}
}

// AnalysisResponse is the body of a full analysis
type AnalysisResponse struct {
	RunID  string                `json:"runId"`
	Routes []models.RouteSummary `json:"routes"`
	Best   *models.BestRoute     `json:"best,omitempty"`
}

// ListRoutes handles GET /api/v1/routes
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	result, err := h.routeService.Analyze(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, h.toResponse(result))
}

// GetBestRoute handles GET /api/v1/routes/best
func (h *RouteHandler) GetBestRoute(c *gin.Context) {
	result, err := h.routeService.Analyze(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	best, err := h.routeService.BestRoute(result)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, best)
}

// GetBestRouteKML handles GET /api/v1/routes/best/kml
func (h *RouteHandler) GetBestRouteKML(c *gin.Context) {
	result, err := h.routeService.Analyze(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	// Render into a buffer so a template failure can still produce a JSON error
	var buf bytes.Buffer
	if err := h.routeService.WriteBestKML(&buf, result); err != nil {
		if service.IsNoQualifyingTrip(err) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Best.Name+".kml"))
	c.Data(200, export.ContentType, buf.Bytes())
}

// AnalyzeUploads handles POST /api/v1/routes/analyze
func (h *RouteHandler) AnalyzeUploads(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Expected multipart form with log files")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, "No files uploaded")
		return
	}

	uploads, closeAll, err := openUploads(files)
	defer closeAll()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.routeService.AnalyzeUploads(c.Request.Context(), uploads)
	if err != nil {
		log.Printf("[RouteHandler] Upload analysis failed: %v", err)
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, h.toResponse(result))
}

func (h *RouteHandler) toResponse(result *models.Analysis) AnalysisResponse {
	resp := AnalysisResponse{
		RunID:  result.RunID,
		Routes: h.routeService.Summaries(result),
	}
	if best, err := h.routeService.BestRoute(result); err == nil {
		resp.Best = best
	}
	return resp
}

func openUploads(files []*multipart.FileHeader) ([]repository.Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	uploads := make([]repository.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		uploads = append(uploads, repository.Upload{Name: fh.Filename, Reader: f})
	}
	return uploads, closeAll, nil
}
