package vatmath

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Bucket is a per-rate VAT accumulation: a gross amount carrying Rate percent
// VAT. It doubles as a line attribute (one priced line) and as an aggregated
// per-rate total.
type Bucket struct {
	Rate  decimal.Decimal `json:"vat"`
	Gross decimal.Decimal `json:"gross"`
}

// Tax returns the VAT portion of the gross amount: gross * rate/100.
func (b Bucket) Tax() decimal.Decimal {
	return b.Gross.Mul(b.Rate).Div(hundred)
}

// Net returns the gross amount net of VAT: gross * (1 - rate/100).
func (b Bucket) Net() decimal.Decimal {
	return b.Gross.Sub(b.Tax())
}

// Aggregate groups lines by VAT rate and sums their gross amounts. The result
// is sorted by rate ascending so aggregation output is deterministic.
//
// Aggregation is associative and commutative: Aggregate(append(a, b...)) is
// rate-wise equal to Merge(Aggregate(a), Aggregate(b)). The report engine
// relies on this to merge per-receipt buckets across a time window.
func Aggregate(lines []Bucket) []Bucket {
	byRate := make(map[string]Bucket)
	for _, line := range lines {
		key := line.Rate.String()
		acc, ok := byRate[key]
		if !ok {
			byRate[key] = line
			continue
		}
		acc.Gross = acc.Gross.Add(line.Gross)
		byRate[key] = acc
	}

	buckets := make([]Bucket, 0, len(byRate))
	for _, b := range byRate {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Rate.LessThan(buckets[j].Rate)
	})
	return buckets
}

// Merge combines already-aggregated bucket sets into one, summing gross
// amounts rate-wise.
func Merge(sets ...[]Bucket) []Bucket {
	var all []Bucket
	for _, set := range sets {
		all = append(all, set...)
	}
	return Aggregate(all)
}

// TotalNet sums the net portion of every bucket.
func TotalNet(buckets []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Net())
	}
	return total
}

// TotalTax sums the VAT portion of every bucket.
func TotalTax(buckets []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Tax())
	}
	return total
}

// TotalGross sums the gross amount of every bucket.
func TotalGross(buckets []Bucket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Gross)
	}
	return total
}

// Rounding returns the adjustment that reconciles a fractional total to
// whole-unit billing: round(total) - total, to two decimal places. Adding the
// adjustment back to the total always yields an integer amount.
func Rounding(total decimal.Decimal) decimal.Decimal {
	return total.Round(0).Sub(total).Round(2)
}
