package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/AryamanRoy/Raseed-FinanceAI/src/config"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/logger"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/security/validation"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/services"
	"github.com/AryamanRoy/Raseed-FinanceAI/src/utils"
)

// UploadHandler accepts bank exports and drives the upload pipeline.
type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: service}
}

// HandleUpload receives a multipart file, validates it and hands it to the
// upload service. On any failure the previously loaded batch is untouched
// and the client can simply retry.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	detected, err := validation.ValidateFileContent(file)
	if err != nil {
		ctxLogger.Warn("File content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if userID, ok := GetUserIDFromContext(r.Context()); ok {
		ctxLogger = ctxLogger.With("userID", userID)
	}
	ctxLogger.Info("Processing upload", "filename", fileHeader.Filename, "detectedType", detected)

	summary, err := h.uploadService.ProcessUpload(r.Context(), file, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadInFlight):
			utils.SendJSONError(w, "Another upload is already in progress. Please wait for it to finish.", http.StatusConflict)
		case errors.Is(err, services.ErrUploadSuperseded):
			utils.SendJSONError(w, "Upload superseded by a newer request.", http.StatusConflict)
		default:
			ctxLogger.Error("Upload failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadGateway)
		}
		return
	}

	utils.SendJSON(w, summary, http.StatusOK)
}

// HandleClearData drops the current batch.
func (h *UploadHandler) HandleClearData(w http.ResponseWriter, r *http.Request) {
	h.uploadService.Clear()
	utils.SendJSON(w, map[string]string{"status": "cleared"}, http.StatusOK)
}
