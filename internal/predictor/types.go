package predictor

import "github.com/danielpatrickdp/mindreader/internal/choice"

// #region result
// Result records what one Update observed and decided.
type Result struct {
	Transition choice.Transition // opponent repeated or switched
	Outcome    choice.Outcome    // Win when the opponent beat the previous prediction
	Key        choice.Key        // bucket consulted for the next prediction
	Decision   choice.Transition // policy output; Shrug means fall back to a random bit
	Prediction int               // next prediction
	Guessing   bool              // Prediction came from the random source
}

// #endregion result
