package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/auraai/aura-backend/internal/memory"
)

// uploadTextLimit is the number of characters of an uploaded document stored
// as retrieval context.
const uploadTextLimit = 5000

// uploadableTypes are the content types whose payloads are committed to
// memory. Everything else is accepted but not stored.
var uploadableTypes = map[string]bool{
	"text/plain":      true,
	"application/pdf": true,
}

// HandleIngest stores a memory record under a caller-chosen id.
func (h *Handler) HandleIngest(c *gin.Context) {
	var req MemoryIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	h.store.Put(req.ID, req.Text, req.Metadata)

	c.JSON(200, gin.H{
		"status":    "success",
		"id":        req.ID,
		"timestamp": timestamp(),
	})
}

// HandleQuery runs the naive retrieval search and returns the joined context.
func (h *Handler) HandleQuery(c *gin.Context) {
	var req MemoryQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, 400, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = defaultQueryTopK
	}

	c.JSON(200, gin.H{
		"context":     h.store.Search(req.Prompt, topK),
		"total_items": h.store.Len(),
	})
}

// HandleDeleteMemory removes one record by id.
func (h *Handler) HandleDeleteMemory(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			errorJSON(c, 404, fmt.Sprintf("Memory '%s' not found", id))
			return
		}
		errorJSON(c, 500, fmt.Sprintf("Failed to delete memory: %v", err))
		return
	}

	c.JSON(200, gin.H{
		"status": "deleted",
		"id":     id,
	})
}

// HandleListMemory lists every stored record as a preview summary.
func (h *Handler) HandleListMemory(c *gin.Context) {
	summaries := h.store.List()

	c.JSON(200, gin.H{
		"items":    len(summaries),
		"memories": summaries,
	})
}

// HandleUpload accepts a document upload and, for decodable text-bearing
// files, commits a truncated copy to memory. The upload itself always
// succeeds; storage is best-effort.
func (h *Handler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		errorJSON(c, 400, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorJSON(c, 500, fmt.Sprintf("Failed to read file: %v", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		errorJSON(c, 500, fmt.Sprintf("Failed to read file: %v", err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	stored := false
	if uploadableTypes[contentType] && utf8.Valid(data) {
		text := truncateRunes(string(data), uploadTextLimit)
		id := fmt.Sprintf("doc-%s-%s", fileHeader.Filename, uuid.NewString())
		h.store.Put(id, text, map[string]any{
			"filename": fileHeader.Filename,
			"type":     "document",
		})
		stored = true
	} else {
		h.logger.Debug("upload not stored in memory",
			slog.String("filename", fileHeader.Filename),
			slog.String("content_type", contentType),
		)
	}

	c.JSON(200, gin.H{
		"status": "success",
		"file_info": gin.H{
			"filename":     fileHeader.Filename,
			"content_type": contentType,
			"size":         len(data),
		},
		"stored_in_memory": stored,
		"timestamp":        timestamp(),
	})
}
