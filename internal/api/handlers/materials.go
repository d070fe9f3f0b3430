package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"studyquiz/internal/materials"
	"studyquiz/internal/models"

	"github.com/gin-gonic/gin"
)

const pdfContentType = "application/pdf"

// HandleListMaterials lists every <topic>_<level>.pdf in the store.
func (h *Handler) HandleListMaterials(c *gin.Context) {
	entries, err := h.Materials.List(c.Request.Context())
	if err != nil {
		h.requestLog(c).Error("failed to list materials", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to list materials")
		return
	}
	c.JSON(http.StatusOK, models.MaterialListResponse{Materials: entries})
}

// HandleDownloadMaterial streams one PDF. The filename is rebuilt from the
// sanitized topic and level; nothing from the path is used verbatim.
func (h *Handler) HandleDownloadMaterial(c *gin.Context) {
	log := h.requestLog(c)

	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		log.Warn("invalid material level", "level", c.Param("level"))
		abortWithError(c, http.StatusBadRequest, materials.MsgInvalidFilename)
		return
	}
	filename, err := materials.CanonicalFilename(c.Param("topic"), level)
	if err != nil {
		log.Warn("invalid filename after sanitization", "filename", filename)
		abortWithError(c, http.StatusBadRequest, materials.MsgInvalidFilename)
		return
	}

	obj, err := h.Materials.Open(c.Request.Context(), filename)
	switch {
	case errors.Is(err, materials.ErrNotFound):
		log.Warn("material not found", "filename", filename)
		abortWithError(c, http.StatusNotFound, materials.MsgNotFound)
		return
	case errors.Is(err, materials.ErrInvalidFilename):
		abortWithError(c, http.StatusBadRequest, materials.MsgInvalidFilename)
		return
	case err != nil:
		log.Error("failed to open material", "filename", filename, "error", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer obj.Body.Close()

	log.Info("downloading material", "filename", filename, "size", obj.Size)
	c.DataFromReader(http.StatusOK, obj.Size, pdfContentType, obj.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, filename),
	})
}
