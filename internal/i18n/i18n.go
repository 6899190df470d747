// Package i18n 提供接口提示语的多语言文案，默认葡萄牙语（巴西）。
package i18n

import (
	"fmt"
	"strings"
)

const (
	LocalePtBR = "pt-BR"
	LocaleEnUS = "en-US"
)

// DefaultLocale 未识别语言时的回退
var DefaultLocale = LocalePtBR

var supported = []string{LocalePtBR, LocaleEnUS}

// ResolveLocale 解析 Accept-Language 或显式 lang 参数，返回支持的语言
func ResolveLocale(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if locale, ok := matchLocale(tag); ok {
			return locale
		}
	}
	return DefaultLocale
}

func matchLocale(tag string) (string, bool) {
	lower := strings.ToLower(strings.ReplaceAll(tag, "_", "-"))
	for _, locale := range supported {
		if strings.ToLower(locale) == lower {
			return locale, true
		}
	}
	base := strings.SplitN(lower, "-", 2)[0]
	switch base {
	case "pt":
		return LocalePtBR, true
	case "en":
		return LocaleEnUS, true
	}
	return "", false
}

// T 翻译，缺失时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if msgs, ok := catalog[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数的翻译
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
