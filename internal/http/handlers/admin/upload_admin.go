package admin

import (
	"github.com/pixelcraft-pc/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DeleteImageRequest 删除图片请求，filename 可为文件名或公开 URL
type DeleteImageRequest struct {
	Filename string `json:"filename" form:"filename" binding:"required"`
}

// UploadImage 上传整机图片
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_invalid", nil)
		return
	}
	result, err := h.UploadService.SaveImage(file)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	requestLog(c).Infow("admin_image_uploaded", "filename", result.Filename, "size", file.Size)
	response.Success(c, gin.H{
		"success":  true,
		"url":      result.URL,
		"filename": result.Filename,
	})
}

// DeleteImage 删除已上传图片
func (h *Handler) DeleteImage(c *gin.Context) {
	var req DeleteImageRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.UploadService.DeleteImage(req.Filename); err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, gin.H{"success": true})
}
