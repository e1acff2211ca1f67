package contract

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
)

// multipart 字段名
const (
	FormFieldTitle       = "title"
	FormFieldDescription = "description"
	FormFieldIsPublic    = "is_public"
	FormFieldVideoFile   = "video_file"
)

// FilePart 二进制文件载荷
type FilePart struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// BytesFile 用内存数据构造 FilePart
func BytesFile(filename string, data []byte) FilePart {
	return FilePart{
		Filename: filename,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// FileHeaderPart 包装服务端收到的 multipart 文件
func FileHeaderPart(fh *multipart.FileHeader) FilePart {
	return FilePart{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Ext 小写扩展名，不含点
func (f FilePart) Ext() string {
	i := strings.LastIndexByte(f.Filename, '.')
	if i < 0 || i == len(f.Filename)-1 {
		return ""
	}
	return strings.ToLower(f.Filename[i+1:])
}

// VideoUpload 视频上传表单（multipart/form-data）
type VideoUpload struct {
	Title       string
	Description Optional[string]
	VideoFile   FilePart
	IsPublic    Optional[bool]
}

const videoUploadEntity = "VideoUpload"

// Validate title 必填，video_file 必须是非空二进制
func (u VideoUpload) Validate() error {
	if strings.TrimSpace(u.Title) == "" {
		return missingField(videoUploadEntity, FormFieldTitle)
	}
	if len(u.Title) > 200 {
		return &SchemaError{Kind: ErrInvariantViolation, Entity: videoUploadEntity, Field: FormFieldTitle, Detail: "title exceeds 200 characters"}
	}
	if u.VideoFile.Open == nil {
		return missingField(videoUploadEntity, FormFieldVideoFile)
	}
	if u.VideoFile.Size <= 0 {
		return invariant(videoUploadEntity, FormFieldVideoFile, ErrEmptyVideoFile)
	}
	return nil
}

// ParseVideoUploadForm 从已解析的 multipart 表单中读取上传数据
func ParseVideoUploadForm(form *multipart.Form) (VideoUpload, error) {
	var u VideoUpload
	if form == nil {
		return u, missingField(videoUploadEntity, FormFieldTitle)
	}

	title, ok := formValue(form, FormFieldTitle)
	if !ok {
		return u, missingField(videoUploadEntity, FormFieldTitle)
	}
	u.Title = title

	if desc, ok := formValue(form, FormFieldDescription); ok {
		u.Description = Some(desc)
	}

	if raw, ok := formValue(form, FormFieldIsPublic); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return u, typeMismatch(videoUploadEntity, FormFieldIsPublic, fmt.Sprintf("expected bool, got %q", raw))
		}
		u.IsPublic = Some(b)
	}

	files := form.File[FormFieldVideoFile]
	if len(files) == 0 {
		return u, missingField(videoUploadEntity, FormFieldVideoFile)
	}
	u.VideoFile = FileHeaderPart(files[0])

	return u, u.Validate()
}

func formValue(form *multipart.Form, key string) (string, bool) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// WriteMultipart 按契约编码为 multipart 请求体，返回 Content-Type
func (u VideoUpload) WriteMultipart(w io.Writer) (string, error) {
	if err := u.Validate(); err != nil {
		return "", err
	}

	mw := multipart.NewWriter(w)
	if err := mw.WriteField(FormFieldTitle, u.Title); err != nil {
		return "", err
	}
	if desc, ok := u.Description.Get(); ok {
		if err := mw.WriteField(FormFieldDescription, desc); err != nil {
			return "", err
		}
	}
	if pub, ok := u.IsPublic.Get(); ok {
		if err := mw.WriteField(FormFieldIsPublic, strconv.FormatBool(pub)); err != nil {
			return "", err
		}
	}

	part, err := mw.CreateFormFile(FormFieldVideoFile, u.VideoFile.Filename)
	if err != nil {
		return "", err
	}
	src, err := u.VideoFile.Open()
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer src.Close()
	if _, err := io.Copy(part, src); err != nil {
		return "", fmt.Errorf("write video file: %w", err)
	}

	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}
