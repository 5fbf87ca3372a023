package catalog

// PriceBracket is a closed enumeration of shop price filters.
// Boundaries are in the currency's minor unit and inclusive on both ends,
// matching the storefront's fixed filter buttons.
type PriceBracket string

const (
	PriceBracket1To2M  PriceBracket = "1m-2m"
	PriceBracket2To5M  PriceBracket = "2m-5m"
	PriceBracket5To10M PriceBracket = "5m-10m"
)

// Bounds returns the inclusive lower and upper bound of the bracket.
// ok is false for an unknown bracket value.
func (b PriceBracket) Bounds() (low, high int64, ok bool) {
	switch b {
	case PriceBracket1To2M:
		return 1_000_000, 2_000_000, true
	case PriceBracket2To5M:
		return 2_000_000, 5_000_000, true
	case PriceBracket5To10M:
		return 5_000_000, 10_000_000, true
	}
	return 0, 0, false
}

// IsValid checks if the bracket is one of the known enumeration values
func (b PriceBracket) IsValid() bool {
	_, _, ok := b.Bounds()
	return ok
}
