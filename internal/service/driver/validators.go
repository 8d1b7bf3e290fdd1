package driver

import "strings"

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// isValidPhone номер в формате +79991234567.
func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !strings.HasPrefix(phone, "+") || len(phone) < 2 {
		return false
	}

	for _, char := range phone[1:] {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}
