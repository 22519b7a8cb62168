package seiz

// Parameter sets are fixed at model construction and never mutated. None of
// the numeric fields are range-checked by the engines: a probability outside
// [0,1] or a negative rate propagates into the draws unchanged. Validation
// belongs to the outer configuration layer, not the core.

// BaselineParams configures the baseline SEIZ model. Beta, B, Rho and Eps
// are continuous-time rates converted once via RateToProb; P and L are
// per-contact branch probabilities.
type BaselineParams struct {
	Beta float64 // S-I contact rate
	B    float64 // S-Z contact rate
	Rho  float64 // E -> I transition rate
	Eps  float64 // I -> E transition rate
	P    float64 // probability S -> I (vs E) after infectious contact
	L    float64 // probability S -> Z (vs E) after skeptic contact
	Dt   float64 // step duration for rate conversion
}

func (p BaselineParams) toMap() map[string]float64 {
	return map[string]float64{
		"beta": p.Beta, "b": p.B, "rho": p.Rho, "eps": p.Eps,
		"p": p.P, "l": p.L, "dt": p.Dt,
	}
}

// ModeratorParams configures the basic-moderator SEIZ model. All values are
// used directly as per-step probabilities; no rate conversion is applied.
type ModeratorParams struct {
	Beta    float64 // S-I contact probability
	B       float64 // S-Z contact probability
	Rho     float64 // E-I contact probability
	P       float64 // probability S -> I (vs E) after infectious contact
	Epsilon float64 // incubation probability E -> I
	L       float64 // probability S -> Z (vs E) after skeptic contact
	Mu      float64 // moderator intervention probability per infected agent
	M       float64 // probability a moderated agent returns to S
}

func (p ModeratorParams) toMap() map[string]float64 {
	return map[string]float64{
		"beta": p.Beta, "b": p.B, "rho": p.Rho, "p": p.P,
		"epsilon": p.Epsilon, "l": p.L, "mu": p.Mu, "m": p.M,
	}
}

// SmartModeratorParams configures the smart-moderator SEIZ model, which
// tracks per-agent trait profiles and toxic-message counts. As with
// ModeratorParams, values are per-step probabilities.
type SmartModeratorParams struct {
	Beta    float64 // S-I contact probability
	B       float64 // S-Z contact probability
	Rho     float64 // E-I contact probability
	P       float64 // probability S -> I (vs E) after infectious contact
	Epsilon float64 // incubation probability E -> I
	L       float64 // probability S -> Z (vs E) after skeptic contact
	N       int     // messages sent per step
	Theta   int     // toxic-message threshold for moderator intervention
	T       float64 // toxicity score threshold for classifying a message toxic
	Eta     float64 // base probability I -> E on successful moderation
	Lambda  float64 // probability E -> Z (also the fallback moderation branch)
}

func (p SmartModeratorParams) toMap() map[string]float64 {
	return map[string]float64{
		"beta": p.Beta, "b": p.B, "rho": p.Rho, "p": p.P,
		"epsilon": p.Epsilon, "l": p.L, "n": float64(p.N),
		"theta": float64(p.Theta), "T": p.T, "eta": p.Eta, "lambd": p.Lambda,
	}
}
