package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CheckboxFlag 表单复选框布尔值，兼容浏览器提交的 on/off 以及 JSON 布尔或字符串
type CheckboxFlag bool

// Bool 返回布尔值
func (f CheckboxFlag) Bool() bool {
	return bool(f)
}

// UnmarshalParam 供 gin 表单绑定使用
func (f *CheckboxFlag) UnmarshalParam(param string) error {
	v, err := parseCheckbox(param)
	if err != nil {
		return err
	}
	*f = CheckboxFlag(v)
	return nil
}

// UnmarshalJSON 接受 true/false、null 或字符串形式
func (f *CheckboxFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = CheckboxFlag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid checkbox value %s", string(data))
	}
	return f.UnmarshalParam(s)
}

func parseCheckbox(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes", "sim":
		return true, nil
	case "", "off", "false", "0", "no", "nao", "não":
		return false, nil
	}
	return false, fmt.Errorf("invalid checkbox value %q", raw)
}
