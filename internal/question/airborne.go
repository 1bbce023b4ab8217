package question

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// waypointCodes is the pool of three-letter fixes used in arrival-time
// prompts. Short uniform codes keep prompts readable in narrow terminals.
var waypointCodes = []string{
	"ALP", "BRV", "CHL", "DLT", "ECH", "FOX", "GLF", "HIL", "IND", "JUL",
	"KIL", "LIM", "MKE", "NVR", "OSC", "PAP", "QBC", "ROM", "SIE", "TNG",
}

// groundSpeeds are knots values with integer NM-per-minute rates, so leg
// times stay mental-arithmetic friendly.
var groundSpeeds = []int{240, 300, 360, 420, 480}

// AirborneGenerator produces airborne-numerical questions: fuel
// endurance, parcel drift, and arrival time. All operands come from the
// request's seeded RNG, so a fixed seed replays the same questions.
type AirborneGenerator struct{}

// Generate builds one question instance for the requested or a random
// configured topic.
func (g AirborneGenerator) Generate(req Request) (Spec, error) {
	if req.Rng == nil {
		return Spec{}, fmt.Errorf("airborne numerical: rng is required")
	}
	topic, err := g.pickTopic(req)
	if err != nil {
		return Spec{}, err
	}
	settings, ok := req.Settings[topic]
	if !ok {
		return Spec{}, fmt.Errorf("airborne numerical: no settings for topic %q", topic)
	}
	difficulty := clamp01(req.Difficulty)

	switch topic {
	case TopicFuelEndurance:
		return g.fuelEndurance(req.Rng, difficulty, settings), nil
	case TopicParcelDrift:
		return g.parcelDrift(req.Rng, difficulty, settings), nil
	case TopicArrivalTime:
		return g.arrivalTime(req.Rng, difficulty, settings)
	default:
		return Spec{}, fmt.Errorf("airborne numerical: unknown topic %q", topic)
	}
}

// pickTopic honors the request hint or draws a configured topic.
func (g AirborneGenerator) pickTopic(req Request) (Topic, error) {
	if req.Topic != "" {
		switch req.Topic {
		case TopicFuelEndurance, TopicParcelDrift, TopicArrivalTime:
			return req.Topic, nil
		default:
			return "", fmt.Errorf("airborne numerical: unknown topic %q", req.Topic)
		}
	}
	if len(req.Settings) == 0 {
		return "", fmt.Errorf("airborne numerical: no topics configured")
	}
	topics := make([]Topic, 0, len(req.Settings))
	for topic := range req.Settings {
		topics = append(topics, topic)
	}
	// Sorted before drawing so the same seed yields the same stream
	// regardless of map iteration order.
	sort.Slice(topics, func(i, j int) bool { return topics[i] < topics[j] })
	return topics[req.Rng.Intn(len(topics))], nil
}

// fuelEndurance asks for endurance hours given quantity and burn rate.
// Rates are multiples of 20 and endurance lands on half-hour steps, so
// quantities stay whole numbers.
func (g AirborneGenerator) fuelEndurance(rng *rand.Rand, difficulty float64, settings TopicSettings) Spec {
	rate := 20 * (3 + rng.Intn(lerpInt(4, 13, difficulty)))
	halfHours := 1 + rng.Intn(lerpInt(4, 10, difficulty))
	hours := float64(halfHours) * 0.5
	quantity := int(float64(rate) * hours)

	prompt := fmt.Sprintf(
		"Fuel on board: %d units. Consumption: %d units/hr.\nEndurance in hours?",
		quantity, rate,
	)
	return Spec{
		Domain:    DomainAirborneNumerical,
		Topic:     TopicFuelEndurance,
		Prompt:    prompt,
		Expected:  NumericExpected(EnduranceHours(float64(quantity), float64(rate))),
		Tolerance: settings.Tolerance,
		TimeLimit: settings.TimeLimit,
	}
}

// parcelDrift asks for the downwind displacement of a dropped parcel.
func (g AirborneGenerator) parcelDrift(rng *rand.Rand, difficulty float64, settings TopicSettings) Spec {
	wind := 5 + rng.Intn(lerpInt(6, 26, difficulty))
	altitude := 10 * (20 + rng.Intn(lerpInt(31, 181, difficulty)))

	prompt := fmt.Sprintf(
		"Parcel released at %d m altitude. Wind: %d m/s.\nDrift distance in metres (g = 9.81, no drag)?",
		altitude, wind,
	)
	return Spec{
		Domain:    DomainAirborneNumerical,
		Topic:     TopicParcelDrift,
		Prompt:    prompt,
		Expected:  NumericExpected(DriftMeters(float64(wind), float64(altitude))),
		Tolerance: settings.Tolerance,
		TimeLimit: settings.TimeLimit,
	}
}

// arrivalTime asks for an HHMM arrival given departure time, ground
// speed, and two to four route legs. The expected answer is text and
// graded as an exact match.
func (g AirborneGenerator) arrivalTime(rng *rand.Rand, difficulty float64, settings TopicSettings) (Spec, error) {
	speed := groundSpeeds[rng.Intn(len(groundSpeeds))]
	perMinute := speed / 60

	legCount := 2 + rng.Intn(lerpInt(1, 3, difficulty))
	minMinutes := 6
	maxMinutes := lerpInt(18, 28, difficulty)
	legs := make([]int, legCount)
	for i := range legs {
		legs[i] = perMinute * (minMinutes + rng.Intn(maxMinutes-minMinutes+1))
	}

	departure := fmt.Sprintf("%02d%02d", 6+rng.Intn(16), 5*rng.Intn(12))
	route := pickWaypoints(rng, legCount+1)

	arrival, err := ArrivalHHMM(departure, speed, legs)
	if err != nil {
		return Spec{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Depart %s at %s. Ground speed %d kt.\n", route[0], departure, speed)
	for i, distance := range legs {
		fmt.Fprintf(&b, "Leg %s-%s: %d NM.\n", route[i], route[i+1], distance)
	}
	fmt.Fprintf(&b, "Arrival time at %s (HHMM, 24-hour)?", route[legCount])

	return Spec{
		Domain:    DomainAirborneNumerical,
		Topic:     TopicArrivalTime,
		Prompt:    b.String(),
		Expected:  TextExpected(arrival),
		Tolerance: settings.Tolerance,
		TimeLimit: settings.TimeLimit,
	}, nil
}

// pickWaypoints draws n distinct codes from the pool.
func pickWaypoints(rng *rand.Rand, n int) []string {
	pool := make([]string, len(waypointCodes))
	copy(pool, waypointCodes)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := rng.Intn(len(pool))
		out = append(out, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return out
}

func clamp01(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x
}
