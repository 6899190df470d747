// Package validation 注册巴西地址相关的绑定校验规则并格式化校验错误。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	cepPattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)
	ufCodes    = map[string]struct{}{
		"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
		"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
		"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
	}
	registerOnce sync.Once
	registerErr  error
)

// Register 在 gin 绑定引擎上注册 cep / uf 规则，重复调用只生效一次
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not validator/v10")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn 在指定校验器上注册规则
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("cep", validateCEP); err != nil {
		return err
	}
	return v.RegisterValidation("uf", validateUF)
}

// IsCEP CEP 格式 00000-000 或 00000000
func IsCEP(raw string) bool {
	return cepPattern.MatchString(strings.TrimSpace(raw))
}

// IsUF 巴西州缩写
func IsUF(raw string) bool {
	_, ok := ufCodes[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}

func validateCEP(fl validator.FieldLevel) bool {
	return IsCEP(fl.Field().String())
}

func validateUF(fl validator.FieldLevel) bool {
	return IsUF(fl.Field().String())
}

// FormatValidationError 将校验错误转为 字段 -> 描述；非校验错误返回 nil
func FormatValidationError(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", field)
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		case "gt", "gte":
			fields[field] = fmt.Sprintf("%s must be greater than %s", field, fe.Param())
		case "email":
			fields[field] = fmt.Sprintf("%s must be a valid e-mail", field)
		case "cep":
			fields[field] = fmt.Sprintf("%s must be a CEP like 01310-100", field)
		case "uf":
			fields[field] = fmt.Sprintf("%s must be a Brazilian state code", field)
		case "oneof":
			fields[field] = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return fields
}
