package model

import "encoding/base64"

// UploadedFile multipart 请求中解析出的附件
type UploadedFile struct {
	FileName string
	MimeType string
	Size     int64
	Data     []byte
}

// IsSVG 是否为 SVG 文件
func (f *UploadedFile) IsSVG() bool {
	return f.MimeType == "image/svg+xml"
}

// DataURL 以原始 MIME 类型编码的 data URL
func (f *UploadedFile) DataURL() string {
	return "data:" + f.MimeType + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}
