package bodycomp

import (
	"gopkg.in/guregu/null.v3"
)

// Densities holds the physical constants used to convert tissue volume
// to tissue mass. Passed explicitly so that callers can override the
// defaults without mutating package state.
type Densities struct {
	FatKgPerCm3    float64
	MuscleKgPerCm3 float64
}

// DefaultDensities returns the literature values used by the original
// clinical workflow.
func DefaultDensities() Densities {
	return Densities{
		FatKgPerCm3:    0.9196,
		MuscleKgPerCm3: 1.06,
	}
}

// MetricKey is the stable identifier of one derived metric. Consumers
// must address metrics by key, never by position in the MetricSet.
type MetricKey string

const (
	VolumeMuscle          MetricKey = "volume_muscle"
	VolumeSubcutaneousFat MetricKey = "volume_subcutaneous_fat"
	VolumeTorsoFat        MetricKey = "volume_torso_fat"
	MassMuscle            MetricKey = "mass_muscle"
	MassSubcutaneousFat   MetricKey = "mass_subcutaneous_fat"
	MassTorsoFat          MetricKey = "mass_torso_fat"
	RatioSubcutToVisceral MetricKey = "ratio_subcutaneous_to_visceral"
	RatioFatToMuscle      MetricKey = "ratio_fat_to_muscle"
)

// MetricKeys returns all metric keys in report order: volumes, then
// masses, then ratios.
func MetricKeys() []MetricKey {
	return []MetricKey{
		VolumeMuscle,
		VolumeSubcutaneousFat,
		VolumeTorsoFat,
		MassMuscle,
		MassSubcutaneousFat,
		MassTorsoFat,
		RatioSubcutToVisceral,
		RatioFatToMuscle,
	}
}

// The display labels are kept in French for continuity with the
// reports the clinical team already archives.
var metricLabels = map[MetricKey]string{
	VolumeMuscle:          "Volume Muscle (cm³)",
	VolumeSubcutaneousFat: "Volume Graisse Sous-cutanée (cm³)",
	VolumeTorsoFat:        "Volume Graisse Viscerale (cm³)",
	MassMuscle:            "Masse Muscle (kg)",
	MassSubcutaneousFat:   "Masse Graisse Sous-cutanée (kg)",
	MassTorsoFat:          "Masse Graisse Viscerale (kg)",
	RatioSubcutToVisceral: "Rapport Graisse Sous-cutanée / Viscerale",
	RatioFatToMuscle:      "Rapport Graisse / Muscle",
}

// Label returns the human-readable report label for this metric.
func (k MetricKey) Label() string {
	return metricLabels[k]
}

// Metric is one labeled result. An invalid Value means the metric was
// not computable because a required sample was absent. Undefined is
// set only on ratios whose denominator was present but measured at
// zero mass, which is a distinct condition from a missing input.
type Metric struct {
	Key       MetricKey
	Label     string
	Value     null.Float
	Undefined bool
}

// MetricSet is the ordered list of the 8 derived metrics.
type MetricSet []Metric

// Get returns the metric with the given key.
func (m MetricSet) Get(key MetricKey) (Metric, bool) {
	for _, metric := range m {
		if metric.Key == key {
			return metric, true
		}
	}

	return Metric{}, false
}

// Compute derives volumes, masses, and the two fat ratios from the
// decoded samples. It is a pure function: absent roles propagate as
// invalid values through every metric that depends on them, and no
// partial substitute is ever computed.
func Compute(samples map[TissueRole]TissueSample, d Densities) MetricSet {
	volMuscle := sampleVolume(samples, SkeletalMuscle)
	volSubcut := sampleVolume(samples, SubcutaneousFat)
	volVisceral := sampleVolume(samples, TorsoFat)

	massMuscle := massFromVolume(volMuscle, d.MuscleKgPerCm3)
	massSubcut := massFromVolume(volSubcut, d.FatKgPerCm3)
	massVisceral := massFromVolume(volVisceral, d.FatKgPerCm3)

	ratioSubVisc, subViscUndefined := safeRatio(massSubcut, massVisceral)
	ratioFatMuscle, fatMuscleUndefined := safeRatio(nullSum(massSubcut, massVisceral), massMuscle)

	return MetricSet{
		metric(VolumeMuscle, volMuscle, false),
		metric(VolumeSubcutaneousFat, volSubcut, false),
		metric(VolumeTorsoFat, volVisceral, false),
		metric(MassMuscle, massMuscle, false),
		metric(MassSubcutaneousFat, massSubcut, false),
		metric(MassTorsoFat, massVisceral, false),
		metric(RatioSubcutToVisceral, ratioSubVisc, subViscUndefined),
		metric(RatioFatToMuscle, ratioFatMuscle, fatMuscleUndefined),
	}
}

func metric(key MetricKey, value null.Float, undefined bool) Metric {
	return Metric{
		Key:       key,
		Label:     key.Label(),
		Value:     value,
		Undefined: undefined,
	}
}

func sampleVolume(samples map[TissueRole]TissueSample, role TissueRole) null.Float {
	s, ok := samples[role]
	if !ok {
		return null.Float{}
	}

	return null.FloatFrom(s.VolumeCm3())
}

// massFromVolume converts a cm³ volume to a kg mass. The division by
// 1000 is the unit scaling inherited from the clinical protocol and
// must not be folded into the density constants.
func massFromVolume(volume null.Float, densityKgPerCm3 float64) null.Float {
	if !volume.Valid {
		return null.Float{}
	}

	return null.FloatFrom(volume.Float64 * densityKgPerCm3 / 1000)
}

// safeRatio divides num by den without ever raising. A missing input
// yields an invalid value; a present but zero denominator yields the
// undefined marker instead of ±Inf.
func safeRatio(num, den null.Float) (value null.Float, undefined bool) {
	if !num.Valid || !den.Valid {
		return null.Float{}, false
	}

	if den.Float64 == 0 {
		return null.Float{}, true
	}

	return null.FloatFrom(num.Float64 / den.Float64), false
}

func nullSum(a, b null.Float) null.Float {
	if !a.Valid || !b.Valid {
		return null.Float{}
	}

	return null.FloatFrom(a.Float64 + b.Float64)
}
