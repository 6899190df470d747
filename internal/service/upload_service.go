package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var defaultUploadExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// UploadService 商品图片上传服务
type UploadService struct {
	cfg *config.UploadConfig
}

// NewUploadService 创建上传服务实例
func NewUploadService(cfg *config.UploadConfig) *UploadService {
	return &UploadService{cfg: cfg}
}

// UploadResult 上传结果
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (s *UploadService) saveDir() string {
	sub := strings.Trim(strings.TrimPrefix(s.publicPrefix(), "/uploads"), "/")
	return filepath.Join(s.cfg.Dir, filepath.FromSlash(sub))
}

func (s *UploadService) publicPrefix() string {
	prefix := strings.TrimSpace(s.cfg.PublicPrefix)
	if prefix == "" {
		prefix = "/uploads/pcs/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// SaveImage 校验扩展名与大小后以 uuid 命名保存，超出尺寸上限时等比缩放（尽力而为）
func (s *UploadService) SaveImage(file *multipart.FileHeader) (*UploadResult, error) {
	if file == nil || file.Filename == "" {
		return nil, ErrUploadInvalid
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return nil, ErrUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := s.cfg.AllowedExtensions
	if len(allowed) == 0 {
		allowed = defaultUploadExtensions
	}
	if ext == "" || !isAllowedExtension(ext, allowed) {
		return nil, ErrUploadInvalid
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadInvalid, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadInvalid, err)
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return nil, ErrUploadInvalid
	}

	filename := uuid.New().String() + ext
	if err := os.MkdirAll(s.saveDir(), 0755); err != nil {
		return nil, err
	}
	output := s.resize(data, ext)
	if err := os.WriteFile(filepath.Join(s.saveDir(), filename), output, 0644); err != nil {
		return nil, err
	}
	return &UploadResult{URL: s.publicPrefix() + filename, Filename: filename}, nil
}

// resize 缩放到最大宽高以内；无法解码或编码的格式原样保存
func (s *UploadService) resize(data []byte, ext string) []byte {
	maxW, maxH := s.cfg.MaxWidth, s.cfg.MaxHeight
	if maxW <= 0 || maxH <= 0 {
		return data
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || (cfg.Width <= maxW && cfg.Height <= maxH) {
		return data
	}
	if ext == ".webp" || ext == ".gif" {
		// 无 webp 编码器，动图缩放会丢帧
		return data
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warnw("upload_image_decode_failed", "error", err)
		return data
	}
	w, h := fitWithin(cfg.Width, cfg.Height, maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch ext {
	case ".png":
		err = png.Encode(&buf, dst)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85})
	default:
		err = gif.Encode(&buf, dst, nil)
	}
	if err != nil {
		logger.Warnw("upload_image_encode_failed", "error", err)
		return data
	}
	return buf.Bytes()
}

func fitWithin(width, height, maxW, maxH int) (int, int) {
	scaleW := float64(maxW) / float64(width)
	scaleH := float64(maxH) / float64(height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// DeleteImage 删除已上传图片，仅接受文件名
func (s *UploadService) DeleteImage(filename string) error {
	name := strings.TrimSpace(filename)
	name = strings.TrimPrefix(name, s.publicPrefix())
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ErrUploadInvalid
	}
	err := os.Remove(filepath.Join(s.saveDir(), name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrImageNotFound
		}
		return err
	}
	return nil
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
