package cli

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_CurrencyFormattingRoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatCurrency preserves the value to the cent", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatCurrency(amount)

			if amount >= 0 && !strings.HasPrefix(formatted, "$") {
				t.Logf("missing $ prefix for %f: %s", amount, formatted)
				return false
			}
			if amount < 0 && !strings.HasPrefix(formatted, "-$") {
				t.Logf("missing -$ prefix for %f: %s", amount, formatted)
				return false
			}

			// Exactly two decimal places.
			parts := strings.Split(formatted, ".")
			if len(parts) != 2 || len(parts[1]) != 2 {
				t.Logf("bad decimals for %f: %s", amount, formatted)
				return false
			}

			// Strip formatting and parse the value back.
			stripped := strings.NewReplacer("$", "", ",", "").Replace(formatted)
			parsed, err := strconv.ParseFloat(stripped, 64)
			if err != nil {
				t.Logf("unparseable %s: %v", formatted, err)
				return false
			}
			return math.Abs(parsed-amount) <= 0.005+math.Abs(amount)*1e-12
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("thousands groups are always three digits", prop.ForAll(
		func(amount float64) bool {
			formatted := FormatCurrency(amount)
			intPart := strings.TrimPrefix(strings.TrimPrefix(strings.Split(formatted, ".")[0], "-"), "$")
			groups := strings.Split(intPart, ",")
			for i, group := range groups {
				if i == 0 {
					if len(group) < 1 || len(group) > 3 {
						return false
					}
					continue
				}
				if len(group) != 3 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.TestingRun(t)
}
