package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const maxUploadSize = 10 << 20

var allowedImageFormats = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// UploadImage 保存后台上传的图片并返回可直接填入 imageUrl 的地址。
func (a *API) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No image uploaded")
		return
	}
	if file.Size > maxUploadSize {
		respondError(c, http.StatusBadRequest, "Image is too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unable to read image")
		return
	}
	cfg, format, err := image.DecodeConfig(src)
	src.Close()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Only JPEG, PNG, GIF and WebP images are allowed")
		return
	}
	ext, ok := allowedImageFormats[format]
	if !ok {
		respondError(c, http.StatusBadRequest, "Only JPEG, PNG, GIF and WebP images are allowed")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		a.logger.ErrorContext(c.Request.Context(), "create upload dir", "error", err, "dir", a.uploadDir)
		respondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}

	filename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(a.uploadDir, filename)); err != nil {
		a.logger.ErrorContext(c.Request.Context(), "save upload", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to save image")
		return
	}

	fileURL := path.Join("/", strings.Trim(a.uploadURL, "/"), filename)
	c.JSON(http.StatusOK, gin.H{
		"url":    fileURL,
		"width":  cfg.Width,
		"height": cfg.Height,
	})
}
