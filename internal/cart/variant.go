package cart

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins size and color in the stored document keys ("M|Red").
const Separator = "|"

var (
	ErrVariantRequired = errors.New("size and color are required")
	ErrBadVariant      = errors.New("size and color must not contain the separator")
)

// Variant identifies one size+color selection of a product. It replaces the
// raw composite string of the stored format with an explicit key type; the
// wire/storage representation stays "size|color" through the text codec
// below, so existing documents decode unchanged.
type Variant struct {
	Size  string
	Color string
}

// Validate rejects empty components and components that would collide with
// the storage separator.
func (v Variant) Validate() error {
	if v.Size == "" || v.Color == "" {
		return ErrVariantRequired
	}
	if strings.Contains(v.Size, Separator) || strings.Contains(v.Color, Separator) {
		return ErrBadVariant
	}
	return nil
}

func (v Variant) String() string { return v.Size + Separator + v.Color }

// MarshalText makes Variant usable as a JSON object key.
func (v Variant) MarshalText() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	size, color, ok := strings.Cut(string(b), Separator)
	if !ok {
		return fmt.Errorf("malformed variant key %q", string(b))
	}
	v.Size, v.Color = size, color
	return nil
}
