package response

// 业务状态码，与 HTTP 状态码一致
const (
	CodeOK              = 200
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// httpStatus 业务码映射为 HTTP 状态码，非法值按 500 处理
func httpStatus(code int) int {
	if code < 100 || code > 599 {
		return CodeInternal
	}
	return code
}
