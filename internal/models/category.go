package models

import "fmt"

// Category classifies a photo of the inspected unit
type Category string

// SlotsPerCategory is the number of photo slots available in every category
const SlotsPerCategory = 5

// Categories is the closed set of photo categories, in report order.
var Categories = []Category{
	"Outer Carton Packaging",
	"Box Labels",
	"Internal Packaging and Accessories",
	"Chassis View",
	"Composite Labels",
	"Internal Configuration",
	"CPU",
	"DIMM",
	"Drives",
	"Fan",
	"Adapter or IO Card",
	"PSU",
	"Internal Wiring",
}

// ParseCategory looks a category up by its exact name
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Index returns the position of c in Categories, or -1
func (c Category) Index() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return -1
}

// ValidateSlot checks that slot addresses a photo slot of a known category
func ValidateSlot(c Category, slot int) error {
	if c.Index() < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	if slot < 0 || slot >= SlotsPerCategory {
		return fmt.Errorf("%w: %d (want 0..%d)", ErrSlotOutOfRange, slot, SlotsPerCategory-1)
	}
	return nil
}
