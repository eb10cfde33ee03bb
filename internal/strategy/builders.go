// Package strategy provides factory functions for canonical multi-leg
// option strategies. The factories are pure: they assemble leg lists and
// impose no validation beyond the strike ordering implied by caller
// intent. Unsorted or inverted strikes produce a mathematically valid but
// economically nonsensical strategy, which is accepted behavior.
package strategy

import "optionist/internal/models"

// Direction indicates whether a symmetric strategy is bought or sold.
type Direction int

const (
	Long  Direction = 1
	Short Direction = -1
)

// VerticalSpread builds a two-leg spread of the same option type:
// long one contract at longStrike, short one at shortStrike.
func VerticalSpread(typ models.OptionType, longStrike, shortStrike, longPremium, shortPremium float64, expiration string) []models.OptionLeg {
	return []models.OptionLeg{
		{Type: typ, Strike: longStrike, Premium: longPremium, Quantity: 1, Expiration: expiration},
		{Type: typ, Strike: shortStrike, Premium: shortPremium, Quantity: -1, Expiration: expiration},
	}
}

// IronCondor builds a four-leg condor: long put wing, short put, short
// call, long call wing, in that strike order.
func IronCondor(putWingStrike, shortPutStrike, shortCallStrike, callWingStrike float64, putWingPremium, shortPutPremium, shortCallPremium, callWingPremium float64, expiration string) []models.OptionLeg {
	return []models.OptionLeg{
		{Type: models.Put, Strike: putWingStrike, Premium: putWingPremium, Quantity: 1, Expiration: expiration},
		{Type: models.Put, Strike: shortPutStrike, Premium: shortPutPremium, Quantity: -1, Expiration: expiration},
		{Type: models.Call, Strike: shortCallStrike, Premium: shortCallPremium, Quantity: -1, Expiration: expiration},
		{Type: models.Call, Strike: callWingStrike, Premium: callWingPremium, Quantity: 1, Expiration: expiration},
	}
}

// Straddle builds a call and a put at the same strike, both with the
// given direction.
func Straddle(strike, callPremium, putPremium float64, dir Direction, expiration string) []models.OptionLeg {
	return []models.OptionLeg{
		{Type: models.Call, Strike: strike, Premium: callPremium, Quantity: int(dir), Expiration: expiration},
		{Type: models.Put, Strike: strike, Premium: putPremium, Quantity: int(dir), Expiration: expiration},
	}
}

// Strangle builds a call and a put at different strikes, both with the
// given direction.
func Strangle(callStrike, putStrike, callPremium, putPremium float64, dir Direction, expiration string) []models.OptionLeg {
	return []models.OptionLeg{
		{Type: models.Call, Strike: callStrike, Premium: callPremium, Quantity: int(dir), Expiration: expiration},
		{Type: models.Put, Strike: putStrike, Premium: putPremium, Quantity: int(dir), Expiration: expiration},
	}
}

// Butterfly builds a three-strike spread with a double-sized short middle
// leg: +1 lower wing, -2 body, +1 upper wing. Strikes are expected in
// ascending order but are not checked.
func Butterfly(typ models.OptionType, lowerStrike, middleStrike, upperStrike float64, lowerPremium, middlePremium, upperPremium float64, expiration string) []models.OptionLeg {
	return []models.OptionLeg{
		{Type: typ, Strike: lowerStrike, Premium: lowerPremium, Quantity: 1, Expiration: expiration},
		{Type: typ, Strike: middleStrike, Premium: middlePremium, Quantity: -2, Expiration: expiration},
		{Type: typ, Strike: upperStrike, Premium: upperPremium, Quantity: 1, Expiration: expiration},
	}
}
