package domain

// Temperature bucket labels, coldest first. The labels carry their
// boundaries because they are rendered directly on chart axes.
const (
	BucketCool    = "Cool (<=25)"
	BucketWarm    = "Warm (26-30)"
	BucketHot     = "Hot (31-35)"
	BucketVeryHot = "Very Hot (>35)"
)

// BucketOrder returns the bucket labels in ascending temperature order,
// for chart axes that must not sort lexically.
func BucketOrder() []string {
	return []string{BucketCool, BucketWarm, BucketHot, BucketVeryHot}
}

// TempBucketFor discretizes a temperature into one of the four fixed
// buckets. Boundaries belong to the lower bucket: 25.0 is Cool, 30.0 is
// Warm, 35.0 is Hot. The lowest bucket is unbounded below.
func TempBucketFor(tempC float64) string {
	switch {
	case tempC <= 25:
		return BucketCool
	case tempC <= 30:
		return BucketWarm
	case tempC <= 35:
		return BucketHot
	default:
		return BucketVeryHot
	}
}
