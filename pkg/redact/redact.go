// redact маскирует персональные данные перед записью в логи:
// e-mail клиента, телефон из формы бронирования и токены сессии.
package redact

import (
	"strings"
	"unicode/utf8"
)

// Email маскирует e-mail: первые две руны локальной части + "***", домен без изменений.
// Строка без ровно одного '@' целиком заменяется на "***".
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***"
	}

	if utf8.RuneCountInString(local) > 2 {
		r := []rune(local)
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Phone оставляет только две последние цифры номера.
func Phone(s string) string {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	if len(digits) <= 2 {
		return "***"
	}

	return "***" + string(digits[len(digits)-2:])
}

// Token никогда не раскрывает содержимое, только факт наличия.
func Token(s string) string {
	if s == "" {
		return "[EMPTY_TOKEN]"
	}

	return "[REDACTED_TOKEN]"
}
