package response

// AppError 处理器统一错误，Redirect 非空时随响应下发跳转地址
type AppError struct {
	Code     int
	Message  string
	Redirect string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithRedirect 附加跳转地址
func (e *AppError) WithRedirect(redirect string) *AppError {
	e.Redirect = redirect
	return e
}

// Data 错误响应的数据部分
func (e *AppError) Data() interface{} {
	if e.Redirect == "" {
		return nil
	}
	return map[string]interface{}{"redirect": e.Redirect}
}
