package core

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is a content language code such as EN, PL or EN_US.
type Language string

func ParseLanguage(code string) (Language, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", fmt.Errorf("language code is empty")
	}

	if _, err := language.Parse(strings.ReplaceAll(normalized, "_", "-")); err != nil {
		return "", fmt.Errorf("invalid language code '%s': %w", code, err)
	}

	return Language(normalized), nil
}

func (l Language) String() string {
	return string(l)
}
