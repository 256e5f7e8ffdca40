package utils

import "errors"

// Profile measurements outside these bounds produce no reading.
const (
	minHeightCm = 50
	maxHeightCm = 250
	minWeightKg = 10
	maxWeightKg = 400
)

// Healthy adult BMI band used for the suggested weight range.
const (
	healthyBMIMin = 18.5
	healthyBMIMax = 24.9
)

var ErrImplausibleMeasurements = errors.New("height or weight outside plausible range")

// BMIReading is a body-mass index, its band, and the weight range that keeps
// the same height inside the healthy band.
type BMIReading struct {
	Value        float64
	Category     string
	HealthyMinKg float64
	HealthyMaxKg float64
}

var bmiBands = []struct {
	below float64
	label string
}{
	{18.5, "Underweight"},
	{25, "Normal weight"},
	{30, "Overweight"},
	{35, "Obesity class I"},
	{40, "Obesity class II"},
}

// ReadBMI takes height in centimeters and weight in kilograms.
func ReadBMI(heightCm, weightKg float64) (BMIReading, error) {
	if heightCm < minHeightCm || heightCm > maxHeightCm || weightKg < minWeightKg || weightKg > maxWeightKg {
		return BMIReading{}, ErrImplausibleMeasurements
	}

	m2 := (heightCm / 100) * (heightCm / 100)
	value := RoundTo1(weightKg / m2)
	return BMIReading{
		Value:        value,
		Category:     bmiCategory(value),
		HealthyMinKg: RoundTo1(healthyBMIMin * m2),
		HealthyMaxKg: RoundTo1(healthyBMIMax * m2),
	}, nil
}

func bmiCategory(bmi float64) string {
	for _, band := range bmiBands {
		if bmi < band.below {
			return band.label
		}
	}
	return "Obesity class III"
}
