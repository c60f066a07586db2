package garito

import "fmt"

var itemEffectNames = map[ItemEffect]string{
	EffectReduceStress:    "reduce_stress",
	EffectGuaranteedCheat: "guaranteed_cheat",
	EffectRewind:          "rewind",
	EffectReduceDetection: "reduce_detection",
	EffectBonusWinnings:   "bonus_winnings",
	EffectStreakBoost:     "streak_boost",
	EffectStreakInsurance: "streak_insurance",
	EffectCursedStreak:    "cursed_streak",
}

var itemEffectValues = map[string]ItemEffect{}

func init() {
	for effect, name := range itemEffectNames {
		itemEffectValues[name] = effect
	}
}

func (e ItemEffect) String() string {
	if name, ok := itemEffectNames[e]; ok {
		return name
	}

	return fmt.Sprintf("item-effect-%d", int(e))
}

// MarshalText lets passive-effect maps serialize with readable keys
func (e ItemEffect) MarshalText() ([]byte, error) {
	name, ok := itemEffectNames[e]
	if !ok {
		return nil, fmt.Errorf("unknown item effect %d", int(e))
	}

	return []byte(name), nil
}

// UnmarshalText is the inverse of MarshalText
func (e *ItemEffect) UnmarshalText(text []byte) error {
	effect, ok := itemEffectValues[string(text)]
	if !ok {
		return fmt.Errorf("unknown item effect %q", string(text))
	}

	*e = effect
	return nil
}

var cheatEffectNames = map[CheatEffect]string{
	EffectRevealDealer:  "reveal_dealer",
	EffectPeekNext:      "peek_next",
	EffectSwapWorst:     "swap_worst",
	EffectFreeCard:      "free_card",
	EffectSeeDeck:       "see_deck",
	EffectDealerMistake: "dealer_mistake",
}

func (e CheatEffect) String() string {
	if name, ok := cheatEffectNames[e]; ok {
		return name
	}

	return fmt.Sprintf("cheat-effect-%d", int(e))
}
