package sampling

import (
	"math/rand/v2"

	"decisionsampler/internal/models"
)

// Shuffle permutes issues in place with a Fisher-Yates shuffle: for i from the
// last index down to 1, swap with a uniformly chosen index in [0, i].
func Shuffle(issues []models.Issue, rng *rand.Rand) {
	for i := len(issues) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		issues[i], issues[j] = issues[j], issues[i]
	}
}
