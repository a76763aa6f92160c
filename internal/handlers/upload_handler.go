package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/storage"
)

// UploadHandler stores driver documents and vehicle photos. Images also get a
// thumbnail rendered for the list views.
type UploadHandler struct {
	storage storage.StorageProvider
	logger  *logger.Logger
}

func NewUploadHandler(provider storage.StorageProvider, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		storage: provider,
		logger:  log.WithField("handler", "upload"),
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "file is required")
		return
	}
	if fileHeader.Size > utils.MaxDocumentSize {
		utils.BadRequestResponse(c, "file exceeds the size limit")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if !allowedUploadType(ext) {
		utils.BadRequestResponse(c, "unsupported file type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	defer file.Close()

	kind := c.DefaultPostForm("kind", "document")
	key := fmt.Sprintf("%s/%s/%s.%s", kind, time.Now().Format("2006/01"), primitive.NewObjectID().Hex(), ext)

	resp, err := h.storage.Upload(c.Request.Context(), &storage.UploadRequest{
		Key:         key,
		Reader:      file,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Metadata:    map[string]string{"original_name": fileHeader.Filename},
	})
	if err != nil {
		h.logger.WithError(err).Error("upload failed")
		utils.InternalServerErrorResponse(c)
		return
	}

	result := gin.H{"key": resp.Key, "url": resp.URL, "size": resp.Size}

	if isImageExt(ext) {
		if thumbURL := h.uploadThumbnail(c, fileHeader, key); thumbURL != "" {
			result["thumbnail_url"] = thumbURL
		}
	}

	utils.CreatedResponse(c, "File uploaded successfully", result)
}

// uploadThumbnail is best effort; a failed resize never fails the upload.
func (h *UploadHandler) uploadThumbnail(c *gin.Context, fileHeader *multipart.FileHeader, key string) string {
	file, err := fileHeader.Open()
	if err != nil {
		return ""
	}
	defer file.Close()

	thumb, err := utils.MakeThumbnail(file)
	if err != nil {
		h.logger.WithError(err).Debug("thumbnail render failed")
		return ""
	}

	thumbKey := "thumbs/" + key
	resp, err := h.storage.Upload(c.Request.Context(), &storage.UploadRequest{
		Key:         thumbKey,
		Reader:      bytes.NewReader(thumb),
		ContentType: "image/jpeg",
		Size:        int64(len(thumb)),
	})
	if err != nil {
		h.logger.WithError(err).Debug("thumbnail upload failed")
		return ""
	}
	return resp.URL
}

func allowedUploadType(ext string) bool {
	for _, t := range utils.AllowedDocumentTypes {
		if t == ext {
			return true
		}
	}
	return false
}

func isImageExt(ext string) bool {
	for _, t := range utils.AllowedImageTypes {
		if t == ext {
			return true
		}
	}
	return false
}
