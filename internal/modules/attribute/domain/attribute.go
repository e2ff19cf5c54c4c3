package domain

import (
	"fmt"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/google/uuid"
)

// attributeNamespace seeds name based attribute ids, see AttributeIDFromKey.
var attributeNamespace = uuid.MustParse("eb5fa3ea-5e0b-4c0a-9a4c-7d1e4b1a6f2e")

type AttributeID struct {
	uuid.UUID
}

// AttributeIDFromKey derives the id of the attribute with the given code.
// Attributes are stored under this id, so the code alone is enough to address them.
func AttributeIDFromKey(code AttributeCode) AttributeID {
	return AttributeID{uuid.NewSHA1(attributeNamespace, []byte(code))}
}

func ParseAttributeID(s string) (AttributeID, error) {
	if !core.IsUUID(s) {
		return AttributeID{}, fmt.Errorf("invalid attribute id '%s'", s)
	}

	return AttributeID{uuid.MustParse(s)}, nil
}

type AttributeCode string

type AttributeType string

const (
	TextType        AttributeType = "TEXT"
	TextareaType    AttributeType = "TEXTAREA"
	NumericType     AttributeType = "NUMERIC"
	PriceType       AttributeType = "PRICE"
	UnitType        AttributeType = "UNIT"
	DateType        AttributeType = "DATE"
	SelectType      AttributeType = "SELECT"
	MultiSelectType AttributeType = "MULTI_SELECT"
	ImageType       AttributeType = "IMAGE"
)

const DateFormatParameter = "format"

type Attribute struct {
	ID           AttributeID
	Code         AttributeCode
	Type         AttributeType
	Multilingual bool
	Labels       map[core.Language]string
	Parameters   map[string]string
	Options      []string
}

// Label returns the label in the given language, falling back to the code.
func (a Attribute) Label(language core.Language) string {
	if label, ok := a.Labels[language]; ok && label != "" {
		return label
	}

	return string(a.Code)
}

func (a Attribute) HasOption(key string) bool {
	for _, option := range a.Options {
		if option == key {
			return true
		}
	}

	return false
}
