package rescale

import "sort"

// priceKeys is the fixed set of member names treated as prices.
var priceKeys = map[string]struct{}{
	"bid":       {},
	"ask":       {},
	"best_bid":  {},
	"best_ask":  {},
	"bid_price": {},
	"ask_price": {},
	"price":     {},
	"px":        {},
	"mid":       {},
}

// IsPriceKey reports whether key names a price field. Matching is exact and
// case-sensitive: "Bid" and "bidPrice" are not price keys.
func IsPriceKey(key string) bool {
	_, ok := priceKeys[key]
	return ok
}

// PriceKeys returns the recognized price field names in sorted order.
func PriceKeys() []string {
	keys := make([]string, 0, len(priceKeys))
	for k := range priceKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
