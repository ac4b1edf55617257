package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationError はリクエスト検証失敗を表すエラー
// どのフィールドがどう失敗したかを fieldErrors として保持する
type ValidationError struct {
	FieldErrors []FieldError
}

func (e *ValidationError) Error() string {
	return "リクエストの値が正しくありません"
}

// CustomValidator はEcho用のカスタムバリデーター
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator は新しいバリデーターを作成する
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate はリクエストのバリデーションを実行する
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: "failed on '" + fe.Tag() + "' validation",
		})
	}
	return &ValidationError{FieldErrors: fieldErrors}
}
