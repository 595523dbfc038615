package handlers

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/learning-content-service/internal/repositories"
	"github.com/SAP-F-2025/learning-content-service/internal/services"
	"github.com/SAP-F-2025/learning-content-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type MaterialHandler struct {
	BaseHandler
	materialService services.MaterialService
}

func NewMaterialHandler(materialService services.MaterialService, logger utils.Logger) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler:     NewBaseHandler(logger),
		materialService: materialService,
	}
}

// UploadMaterial stores a study material sent as multipart form data.
// Fields: file, title, description, tags (repeated or comma separated).
func (h *MaterialHandler) UploadMaterial(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing file", nil, err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Unreadable file", nil, err.Error())
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Unreadable file", nil, err.Error())
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detectContentType(fileHeader.Filename, body)
	}

	req := &services.UploadMaterialRequest{
		Title:       c.PostForm("title"),
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Tags:        splitTags(c.PostFormArray("tags")),
		Body:        body,
	}
	if desc := c.PostForm("description"); desc != "" {
		req.Description = &desc
	}
	if req.Title == "" {
		req.Title = strings.TrimSuffix(fileHeader.Filename, extension(fileHeader.Filename))
	}

	h.LogRequest(c, "Uploading material", "file_name", req.FileName, "size", len(body))

	material, err := h.materialService.Upload(c.Request.Context(), req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// ListMaterials lists ready materials. Query: tag (repeatable), q, limit,
// offset, sort_by, sort_order.
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	filters := repositories.MaterialFilters{
		Tags:      splitTags(c.QueryArray("tag")),
		Query:     strings.TrimSpace(c.Query("q")),
		Limit:     parseIntQuery(c, "limit", 20),
		Offset:    parseIntQuery(c, "offset", 0),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if c.Query("mine") == "true" {
		userID := c.GetString(userIDKey)
		filters.CreatedBy = &userID
	}

	result, err := h.materialService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

// PreviewMaterial renders a markdown material. HTML is returned when the
// client accepts it, JSON otherwise.
func (h *MaterialHandler) PreviewMaterial(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	preview, err := h.materialService.Preview(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(preview.HTML))
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *MaterialHandler) UpdateTags(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateTagsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	material, err := h.materialService.UpdateTags(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.materialService.Delete(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MaterialHandler) ListTags(c *gin.Context) {
	tags, err := h.materialService.ListTags(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// splitTags accepts repeated values and comma separated lists.
func splitTags(values []string) []string {
	var out []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

func detectContentType(fileName string, body []byte) string {
	switch strings.ToLower(extension(fileName)) {
	case ".md", ".markdown":
		return "text/markdown"
	}
	if byExt := mime.TypeByExtension(extension(fileName)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(body)
}
