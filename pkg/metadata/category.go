package metadata

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryRawMaterial Category = "RAW_MATERIAL"
	CategoryProduct     Category = "PRODUCT"
)

func NewCategory(value string) (Category, error) {
	normalized := strings.Replace(strings.ToUpper(strings.TrimSpace(value)), "-", "_", -1)
	normalized = strings.Replace(normalized, " ", "_", -1)
	category := Category(normalized)
	if !category.IsValid() {
		return category, fmt.Errorf(
			"value not valid, only valid values are: %s, %s",
			CategoryRawMaterial, CategoryProduct,
		)
	}

	return category, nil
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryRawMaterial, CategoryProduct:
		return true
	default:
		return false
	}
}

// KeyPrefix is the prefix used for generated item ids.
func (c Category) KeyPrefix() string {
	if c == CategoryRawMaterial {
		return "rm"
	}
	return "p"
}

func (c Category) String() string {
	return string(c)
}
