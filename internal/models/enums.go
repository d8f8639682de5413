package models

import "fmt"

// BodyType is the format of an ItemBody's content.
type BodyType int

const (
	BodyTypeText BodyType = iota
	BodyTypeHTML
)

func (b BodyType) String() string {
	switch b {
	case BodyTypeText:
		return "text"
	case BodyTypeHTML:
		return "html"
	default:
		return fmt.Sprintf("BodyType(%d)", int(b))
	}
}

// ParseBodyType is the serialization.EnumFactory for BodyType.
func ParseBodyType(v string) (any, error) {
	switch v {
	case "text":
		return BodyTypeText, nil
	case "html":
		return BodyTypeHTML, nil
	default:
		return nil, fmt.Errorf("models: unknown BodyType value %q", v)
	}
}

type Importance int

const (
	ImportanceLow Importance = iota
	ImportanceNormal
	ImportanceHigh
)

func (i Importance) String() string {
	switch i {
	case ImportanceLow:
		return "low"
	case ImportanceNormal:
		return "normal"
	case ImportanceHigh:
		return "high"
	default:
		return fmt.Sprintf("Importance(%d)", int(i))
	}
}

func ParseImportance(v string) (any, error) {
	switch v {
	case "low":
		return ImportanceLow, nil
	case "normal":
		return ImportanceNormal, nil
	case "high":
		return ImportanceHigh, nil
	default:
		return nil, fmt.Errorf("models: unknown Importance value %q", v)
	}
}
