package http

import (
	"errors"
	"io"
	"mime"
	nethttp "net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"svgsmith/internal/model"
)

// 内存中缓存的 multipart 数据上限，超出部分写入临时文件
const multipartMemory = 32 << 20

// ErrMalformedForm 请求体不是合法的表单
var ErrMalformedForm = errors.New("malformed multipart form")

// IsBodyTooLarge 判断错误是否由请求体超限引起
func IsBodyTooLarge(err error) bool {
	var maxErr *nethttp.MaxBytesError
	return errors.As(err, &maxErr)
}

// ParseForm 解析 multipart 或 urlencoded 表单
// 请求体超限时返回 *http.MaxBytesError，其他解析失败返回 ErrMalformedForm
func ParseForm(c *gin.Context) error {
	err := c.Request.ParseMultipartForm(multipartMemory)
	if err == nil {
		return nil
	}
	if IsBodyTooLarge(err) {
		return err
	}
	if errors.Is(err, nethttp.ErrNotMultipart) {
		if err := c.Request.ParseForm(); err != nil {
			if IsBodyTooLarge(err) {
				return err
			}
			return ErrMalformedForm
		}
		return nil
	}
	return ErrMalformedForm
}

// OptionalPostForm 表单字段，未提供时返回 nil
func OptionalPostForm(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &value
}

// ReadFormFile 读取上传的文件，未提供时返回 nil, nil
func ReadFormFile(c *gin.Context, field string) (*model.UploadedFile, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, nethttp.ErrMissingFile) || errors.Is(err, nethttp.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &model.UploadedFile{
		FileName: header.Filename,
		MimeType: DetectMimeType(header.Header.Get("Content-Type"), data),
		Size:     header.Size,
		Data:     data,
	}, nil
}

// DetectMimeType 优先使用客户端声明的类型，缺失或为通用二进制类型时按内容识别
func DetectMimeType(declared string, data []byte) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil &&
		mediaType != "" && mediaType != "application/octet-stream" {
		return strings.ToLower(mediaType)
	}
	detected := mimetype.Detect(data).String()
	if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
		return mediaType
	}
	return detected
}
