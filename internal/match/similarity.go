package match

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Similarity scores two normalized titles on a 0-100 scale using
// Jaro-Winkler, which tolerates the small spelling drift common between
// filenames and authored titles. Inputs are expected to be already
// normalized via extract.NormalizeTitle.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return strutil.Similarity(a, b, metrics.NewJaroWinkler()) * 100
}
