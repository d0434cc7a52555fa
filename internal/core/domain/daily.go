package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"
)

// ErrDailyAlreadyCompleted indicates the user already finished today's challenge.
var ErrDailyAlreadyCompleted = errors.New("daily challenge already completed")

// DailyChallengeDifficulty is the fixed profile served for the daily run.
const DailyChallengeDifficulty = DifficultyNinja

// ChallengeDate normalizes a timestamp to the UTC calendar day that scopes
// daily challenge uniqueness.
func ChallengeDate(at time.Time) time.Time {
	utc := at.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// DailyTarget derives the day's shared target number from the date so every
// player guesses against the same value.
func DailyTarget(date time.Time, profile DifficultyProfile) int {
	day := ChallengeDate(date).Format("2006-01-02")
	sum := sha256.Sum256([]byte("number-ninja:daily:" + day))
	span := profile.MaxNumber - profile.MinNumber + 1
	n := binary.BigEndian.Uint64(sum[:8])
	return profile.MinNumber + int(n%uint64(span))
}
