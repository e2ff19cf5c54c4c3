package domain

import "github.com/google/uuid"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TemplateElement places an attribute on the product card.
type TemplateElement struct {
	ElementID uuid.UUID
	Position  Position
	Size      Size
	Required  bool
}

type Template struct {
	ID       uuid.UUID
	Name     string
	Elements []TemplateElement
}

type ViewTemplateElement struct {
	ID         uuid.UUID      `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Position   Position       `json:"position"`
	Size       Size           `json:"size"`
	Required   bool           `json:"required"`
	Properties map[string]any `json:"properties"`
}

// ViewTemplate is a template resolved for rendering in one language.
type ViewTemplate struct {
	ID       uuid.UUID             `json:"id"`
	Name     string                `json:"name"`
	Elements []ViewTemplateElement `json:"elements"`
}
