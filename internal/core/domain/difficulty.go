package domain

import "errors"

// DifficultyID enumerates the five supported difficulty levels.
type DifficultyID string

const (
	DifficultyRookie      DifficultyID = "rookie"
	DifficultyNinja       DifficultyID = "ninja"
	DifficultyMaster      DifficultyID = "master"
	DifficultyGrandmaster DifficultyID = "grandmaster"
	DifficultyLegendary   DifficultyID = "legendary"
)

// ErrUnknownDifficulty indicates the requested difficulty id is not part of the catalog.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// DifficultyProfile describes the numeric range and attempt budget for a difficulty level.
type DifficultyProfile struct {
	ID          DifficultyID
	MinNumber   int
	MaxNumber   int
	MaxAttempts int
}

// difficultyCatalog is fixed at process start. MinNumber < MaxNumber and
// MaxAttempts >= 1 hold for every entry.
var difficultyCatalog = map[DifficultyID]DifficultyProfile{
	DifficultyRookie:      {ID: DifficultyRookie, MinNumber: 1, MaxNumber: 100, MaxAttempts: 10},
	DifficultyNinja:       {ID: DifficultyNinja, MinNumber: 1, MaxNumber: 1000, MaxAttempts: 5},
	DifficultyMaster:      {ID: DifficultyMaster, MinNumber: 1, MaxNumber: 10000, MaxAttempts: 5},
	DifficultyGrandmaster: {ID: DifficultyGrandmaster, MinNumber: 1, MaxNumber: 1000, MaxAttempts: 3},
	DifficultyLegendary:   {ID: DifficultyLegendary, MinNumber: 1, MaxNumber: 10000, MaxAttempts: 3},
}

// ResolveDifficulty returns the profile for the supplied id.
func ResolveDifficulty(id DifficultyID) (DifficultyProfile, error) {
	profile, ok := difficultyCatalog[id]
	if !ok {
		return DifficultyProfile{}, ErrUnknownDifficulty
	}
	return profile, nil
}

// Difficulties lists every catalog entry in a stable order.
func Difficulties() []DifficultyProfile {
	order := []DifficultyID{
		DifficultyRookie,
		DifficultyNinja,
		DifficultyMaster,
		DifficultyGrandmaster,
		DifficultyLegendary,
	}
	profiles := make([]DifficultyProfile, 0, len(order))
	for _, id := range order {
		profiles = append(profiles, difficultyCatalog[id])
	}
	return profiles
}
