package game

// Point values for the scoring events. Wrong answers subtract but a score
// never drops below zero.
const (
	PointsCorrectAnswer = 10
	PointsWrongAnswer   = 5
	PointsRedCode       = 50
	PointsAIQuestion    = 20
)

// AnswerDelta is the score change one answer earns. The bonus multiplier
// scales regular questions only; AI-imported questions pay a flat value.
func AnswerDelta(correct, aiQuestion bool, bonus int) int {
	if !correct {
		return -PointsWrongAnswer
	}
	if aiQuestion {
		return PointsAIQuestion
	}
	if bonus < 1 {
		bonus = 1
	}
	return PointsCorrectAnswer * bonus
}

// ApplyDelta adds delta to a score, flooring at zero.
func ApplyDelta(score, delta int) int {
	score += delta
	if score < 0 {
		return 0
	}
	return score
}

// MaxPoints is the total achievable score for an event: every regular
// question at base value times the bonus multiplier, plus every AI-imported
// question at its fixed value.
func MaxPoints(regularQuestions, aiQuestions, bonus int) int {
	if bonus < 1 {
		bonus = 1
	}
	return regularQuestions*PointsCorrectAnswer*bonus + aiQuestions*PointsAIQuestion
}

// TargetLetters is how many password letters a score entitles to, given the
// configured reveal percentage. Zero max points or a zero percentage
// disables automatic reveal entirely.
func TargetLetters(score, maxPoints int, revealPercent float64) int {
	if maxPoints <= 0 || revealPercent <= 0 || score <= 0 {
		return 0
	}
	pointsPerLetter := float64(maxPoints) * revealPercent / 100
	if pointsPerLetter <= 0 {
		return 0
	}
	return int(float64(score) / pointsPerLetter)
}
