package handler

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxImageWidth = 1200
	jpegQuality   = 82
	maxUploadSize = 10 << 20
)

// processImage decodes src, scales it down to maxImageWidth when wider, and re-encodes it
// as JPEG.
func processImage(src io.Reader) ([]byte, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxImageWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Point{X: w, Y: h}, nil
}

// UploadImage 处理后台图片上传，返回可直接填入 image 字段的 URL
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required", "success": 0})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is larger than 10MB", "success": 0})
		return
	}
	if contentType := file.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed", "success": 0})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload", "success": 0})
		return
	}
	defer src.Close()

	data, size, err := processImage(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": 0})
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create upload directory", "success": 0})
		return
	}

	name := fmt.Sprintf("%s-%s.jpg", a.now().Format("20060102"), uuid.NewString())
	if err := os.WriteFile(filepath.Join(a.uploadDir, name), data, 0o644); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image", "success": 0})
		return
	}

	fileURL := a.uploadURL + "/" + name
	a.logger.Info("image uploaded", zap.String("url", fileURL), zap.Int("width", size.X), zap.Int("height", size.Y))
	c.JSON(http.StatusOK, gin.H{
		"success": 1,
		"data": gin.H{
			"url":    fileURL,
			"width":  size.X,
			"height": size.Y,
		},
	})
}
