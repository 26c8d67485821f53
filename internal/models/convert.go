package models

import (
	"strconv"
	"strings"
	"time"
)

// FormatAmount — сумма с двумя знаками после точки (100 * 0.8 => "80.00").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPhone показывает номер из ровно 10 цифр как "(XX) XX XX XX XX";
// остальные значения возвращаются как есть.
func FormatPhone(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}

	if len(digits) != 10 {
		return phone
	}

	var b strings.Builder
	b.WriteString("(")
	b.Write(digits[0:2])
	b.WriteString(")")
	for i := 2; i < 10; i += 2 {
		b.WriteString(" ")
		b.Write(digits[i : i+2])
	}

	return b.String()
}

var paymentDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate — дата платежа в виде dd/mm/yyyy; нераспознанная строка возвращается как есть.
func FormatDate(s string) string {
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}

	return s
}
