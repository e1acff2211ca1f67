package contract

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 与 gin 的 binding 标签保持一致，服务端 ShouldBind 和客户端 Validate 共用一套规则
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct 将 validator 的错误转换为 SchemaError
func validateStruct(entity string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &SchemaError{Kind: ErrInvariantViolation, Entity: entity, Detail: err.Error()}
	}
	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return missingField(entity, fe.Field())
	}
	detail := "failed '" + fe.Tag() + "'"
	if fe.Param() != "" {
		detail += " (" + fe.Param() + ")"
	}
	return &SchemaError{Kind: ErrInvariantViolation, Entity: entity, Field: fe.Field(), Detail: detail}
}

// LoginCredentials 登录凭据
type LoginCredentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var loginSpec = recordSpec{
	entity:   "LoginCredentials",
	required: []string{"email", "password"},
}

func (l *LoginCredentials) UnmarshalJSON(data []byte) error {
	type alias LoginCredentials
	return decodeRecord(data, loginSpec, (*alias)(l))
}

func (l LoginCredentials) Validate() error {
	return validateStruct(loginSpec.entity, l)
}

// RegisterData 注册信息。提交前要求 password_confirm 与 password 一致，
// 服务端仍会独立校验。
type RegisterData struct {
	Email           string `json:"email" binding:"required,email,max=254"`
	FirstName       string `json:"first_name" binding:"required,max=30"`
	LastName        string `json:"last_name" binding:"required,max=30"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

var registerSpec = recordSpec{
	entity:   "RegisterData",
	required: []string{"email", "first_name", "last_name", "password", "password_confirm"},
}

func (r *RegisterData) UnmarshalJSON(data []byte) error {
	type alias RegisterData
	return decodeRecord(data, registerSpec, (*alias)(r))
}

func (r RegisterData) Validate() error {
	if err := validateStruct(registerSpec.entity, r); err != nil {
		return err
	}
	if r.Password != r.PasswordConfirm {
		return invariant(registerSpec.entity, "password_confirm", ErrPasswordMismatch)
	}
	return nil
}

// SocialUploadData 发布视频到一个或多个社交平台
type SocialUploadData struct {
	VideoID      int64               `json:"video_id" binding:"required,gt=0"`
	Platforms    []string            `json:"platforms" binding:"required,min=1,dive,required"`
	Caption      Optional[string]    `json:"caption,omitzero"`
	Hashtags     Optional[string]    `json:"hashtags,omitzero"`
	ScheduleDate Optional[Timestamp] `json:"schedule_date,omitzero"`
}

var socialUploadSpec = recordSpec{
	entity:   "SocialUploadData",
	required: []string{"video_id", "platforms"},
	ids:      []string{"video_id"},
}

func (s *SocialUploadData) UnmarshalJSON(data []byte) error {
	type alias SocialUploadData
	return decodeRecord(data, socialUploadSpec, (*alias)(s))
}

func (s SocialUploadData) Validate() error {
	return validateStruct(socialUploadSpec.entity, s)
}
