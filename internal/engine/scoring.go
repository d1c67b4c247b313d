package engine

import (
	"sort"

	"github.com/quizhaus/clueboard/internal/clueboard"
)

// Scoring is pure and side-effect-free: every function here computes from
// entity state and is invoked only by the engine.

// AnswerDelta computes the signed score change for an answer: ±points, or
// ±(points×2) while the double-points event is active.
func AnswerDelta(points int, correct, doubleActive bool) int {
	delta := points
	if doubleActive {
		delta *= 2
	}
	if !correct {
		delta = -delta
	}
	return delta
}

// ApplySteal moves floor(20%) of the leader's score to the lowest-scoring
// team. Ties break toward the lowest team id on both ends. Returns false
// without touching scores when no transfer applies: fewer than two teams,
// leader and lowest are the same team, or the leader's score is not
// positive (the amount would be zero).
func ApplySteal(teams []clueboard.Team) (clueboard.StealContext, bool) {
	if len(teams) < 2 {
		return clueboard.StealContext{}, false
	}
	from, to := 0, 0
	for i := range teams {
		if teams[i].Score > teams[from].Score ||
			(teams[i].Score == teams[from].Score && teams[i].ID < teams[from].ID) {
			from = i
		}
		if teams[i].Score < teams[to].Score ||
			(teams[i].Score == teams[to].Score && teams[i].ID < teams[to].ID) {
			to = i
		}
	}
	if from == to || teams[from].Score == teams[to].Score {
		return clueboard.StealContext{}, false
	}
	if teams[from].Score <= 0 {
		return clueboard.StealContext{}, false
	}
	amount := teams[from].Score / 5
	if amount > teams[from].Score {
		amount = teams[from].Score
	}
	if amount <= 0 {
		return clueboard.StealContext{}, false
	}
	teams[from].Score -= amount
	teams[to].Score += amount
	return clueboard.StealContext{
		ThiefID:    teams[to].ID,
		ThiefName:  teams[to].Name,
		VictimID:   teams[from].ID,
		VictimName: teams[from].Name,
		Amount:     amount,
	}, true
}

// Standing is one leaderboard row.
type Standing struct {
	TeamID int    `json:"teamId"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
}

// Leaderboard orders teams by score descending, ties broken by insertion
// order. The ordering is stable across repeated calls with unchanged scores.
func Leaderboard(teams []clueboard.Team) []Standing {
	standings := make([]Standing, len(teams))
	for i, t := range teams {
		standings[i] = Standing{TeamID: t.ID, Name: t.Name, Score: t.Score}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	return standings
}

// ResetScores zeroes every team's score unconditionally.
func ResetScores(teams []clueboard.Team) {
	for i := range teams {
		teams[i].Score = 0
	}
}

// RotateActive returns the id of the team after current in insertion order,
// wrapping around. Falls back to the first team when current is unknown.
func RotateActive(teams []clueboard.Team, current int) int {
	if len(teams) == 0 {
		return current
	}
	for i := range teams {
		if teams[i].ID == current {
			return teams[(i+1)%len(teams)].ID
		}
	}
	return teams[0].ID
}

// nextTeamID picks an id one past the highest in use.
func nextTeamID(teams []clueboard.Team) int {
	next := 1
	for _, t := range teams {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
