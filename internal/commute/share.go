package commute

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Share link query parameters. These three form the whole contract;
// postcodes must never appear in a share link.
const (
	paramTrees     = "trees"
	paramEmissions = "emissions"
	paramMethod    = "method"
)

// emissionsPrecision is the number of decimal places used when encoding the
// one-way emissions value. Decoding and re-encoding a link produced with
// this precision yields an identical query string.
const emissionsPrecision = 2

// EncodeShareLink builds a shareable URL from the given base address with
// its query string replaced by the shareable state.
//
// Parameter order is fixed (trees, emissions, method) so encoding is
// deterministic: the same state always yields the same link. The method
// parameter is omitted when the label is empty.
func EncodeShareLink(base string, s ShareableState) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing share base URL: %w", err)
	}

	// url.Values.Encode sorts keys alphabetically; the query is assembled
	// by hand to keep the fixed parameter order.
	var q strings.Builder
	q.WriteString(paramTrees + "=" + strconv.Itoa(s.TreesNeeded))
	q.WriteString("&" + paramEmissions + "=" + strconv.FormatFloat(s.OneWayKgCO2e, 'f', emissionsPrecision, 64))
	if s.TravelMethod != "" {
		q.WriteString("&" + paramMethod + "=" + url.QueryEscape(s.TravelMethod))
	}

	u.RawQuery = q.String()
	return u.String(), nil
}

// DecodeShareParams extracts a ShareableState from incoming query
// parameters.
//
// It succeeds only when both a trees value and an emissions value are
// present and parse as a non-negative integer and a non-negative float
// respectively; the travel method is optional. Any other combination
// returns ok=false, which callers treat as "no shared view" rather than an
// error (silent-degrade policy).
func DecodeShareParams(q url.Values) (ShareableState, bool) {
	treesRaw := q.Get(paramTrees)
	emissionsRaw := q.Get(paramEmissions)
	if treesRaw == "" || emissionsRaw == "" {
		return ShareableState{}, false
	}

	trees, err := strconv.Atoi(treesRaw)
	if err != nil || trees < 0 {
		return ShareableState{}, false
	}

	emissions, err := strconv.ParseFloat(emissionsRaw, 64)
	if err != nil || emissions < 0 {
		return ShareableState{}, false
	}

	return ShareableState{
		TreesNeeded:  trees,
		OneWayKgCO2e: emissions,
		TravelMethod: q.Get(paramMethod),
	}, true
}

// DecodeShareLink parses a full share URL and decodes its query parameters.
func DecodeShareLink(link string) (ShareableState, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return ShareableState{}, false
	}
	return DecodeShareParams(u.Query())
}
