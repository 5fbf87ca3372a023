package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// VariantGroup is an input descriptor that expands to multiple SKUs via
// the cross-product of its size and color sets. It is never persisted.
type VariantGroup struct {
	SizeIDs  []uuid.UUID `json:"size_id"`
	ColorIDs []uuid.UUID `json:"color_id"`
	Quantity int         `json:"quantity"`
	Type     string      `json:"type"`
}

// ParseVariantGroups decodes the variants payload, which clients submit as
// a JSON-encoded array of groups alongside the multipart product fields.
func ParseVariantGroups(raw string) ([]VariantGroup, error) {
	if raw == "" {
		return nil, shared.NewDomainError("INVALID_VARIANTS", "Variants payload is required")
	}
	var groups []VariantGroup
	if err := json.Unmarshal([]byte(raw), &groups); err != nil {
		return nil, shared.NewDomainError("INVALID_VARIANTS", "Invalid format for variants")
	}
	return groups, nil
}

// ExpandVariants expands variant groups into concrete product items, one
// per (size, color) pair per group. It is a pure function; persistence is
// the caller's concern.
//
// A (size, color) pair occurring more than once, within a group or across
// groups, rejects the whole expansion: silently creating duplicate SKUs
// would violate the per-product uniqueness of (size, color).
func ExpandVariants(productID uuid.UUID, groups []VariantGroup) ([]*ProductItem, error) {
	if len(groups) == 0 {
		return nil, shared.NewDomainError("INVALID_VARIANTS", "At least one variant group is required")
	}

	seen := make(map[[2]uuid.UUID]struct{})
	var items []*ProductItem

	for i, group := range groups {
		if len(group.SizeIDs) == 0 {
			return nil, shared.NewDomainError("INVALID_VARIANTS", fmt.Sprintf("Variant group %d has no sizes", i))
		}
		if len(group.ColorIDs) == 0 {
			return nil, shared.NewDomainError("INVALID_VARIANTS", fmt.Sprintf("Variant group %d has no colors", i))
		}
		if group.Quantity < 0 {
			return nil, shared.NewDomainError("INVALID_VARIANTS", fmt.Sprintf("Variant group %d has a negative quantity", i))
		}

		for _, sizeID := range group.SizeIDs {
			for _, colorID := range group.ColorIDs {
				pair := [2]uuid.UUID{sizeID, colorID}
				if _, dup := seen[pair]; dup {
					return nil, shared.NewDomainError("DUPLICATE_VARIANT",
						fmt.Sprintf("Variant (size %s, color %s) occurs more than once", sizeID, colorID))
				}
				seen[pair] = struct{}{}

				item, err := NewProductItem(productID, sizeID, colorID, group.Quantity, group.Type)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
		}
	}

	return items, nil
}
