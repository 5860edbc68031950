package bodycomp

import (
	"math"
	"reflect"
	"testing"
)

func fullSampleSet() map[TissueRole]TissueSample {
	return map[TissueRole]TissueSample{
		SkeletalMuscle:  {Role: SkeletalMuscle, VoxelCount: 1000000, VoxelVolumeCm3: 0.001},
		SubcutaneousFat: {Role: SubcutaneousFat, VoxelCount: 500000, VoxelVolumeCm3: 0.001},
		TorsoFat:        {Role: TorsoFat, VoxelCount: 200000, VoxelVolumeCm3: 0.001},
	}
}

// Truth values hand-computed from the density constants.
func TestComputeFixture(t *testing.T) {
	metrics := Compute(fullSampleSet(), DefaultDensities())

	if len(metrics) != 8 {
		t.Fatalf("expected 8 metrics, got %d", len(metrics))
	}

	for _, v := range []struct {
		Key      MetricKey
		Expected float64
	}{
		{VolumeMuscle, 1000},
		{VolumeSubcutaneousFat, 500},
		{VolumeTorsoFat, 200},
		{MassMuscle, 1.06},
		{MassSubcutaneousFat, 0.4598},
		{MassTorsoFat, 0.18392},
		{RatioSubcutToVisceral, 2.5},
		{RatioFatToMuscle, (0.4598 + 0.18392) / 1.06},
	} {
		m, ok := metrics.Get(v.Key)
		if !ok {
			t.Fatalf("metric %s not found", v.Key)
		}
		if !m.Value.Valid {
			t.Fatalf("metric %s unexpectedly null", v.Key)
		}
		if m.Undefined {
			t.Fatalf("metric %s unexpectedly undefined", v.Key)
		}
		if math.Abs(m.Value.Float64-v.Expected) > 1e-12 {
			t.Errorf("metric %s: got %.12f, expected %.12f", v.Key, m.Value.Float64, v.Expected)
		}
	}
}

func TestComputeOrder(t *testing.T) {
	metrics := Compute(fullSampleSet(), DefaultDensities())

	for i, key := range MetricKeys() {
		if metrics[i].Key != key {
			t.Errorf("position %d: got %s, expected %s", i, metrics[i].Key, key)
		}
		if metrics[i].Label != key.Label() {
			t.Errorf("position %d: got label %q, expected %q", i, metrics[i].Label, key.Label())
		}
	}
}

func TestComputeMissingSamples(t *testing.T) {
	for _, v := range []struct {
		Name        string
		Remove      TissueRole
		WantNull    []MetricKey
		WantPresent []MetricKey
	}{
		{
			Name:        "missing muscle",
			Remove:      SkeletalMuscle,
			WantNull:    []MetricKey{VolumeMuscle, MassMuscle, RatioFatToMuscle},
			WantPresent: []MetricKey{VolumeSubcutaneousFat, MassTorsoFat, RatioSubcutToVisceral},
		},
		{
			Name:        "missing subcutaneous",
			Remove:      SubcutaneousFat,
			WantNull:    []MetricKey{VolumeSubcutaneousFat, MassSubcutaneousFat, RatioSubcutToVisceral, RatioFatToMuscle},
			WantPresent: []MetricKey{VolumeMuscle, MassMuscle, VolumeTorsoFat, MassTorsoFat},
		},
		{
			Name:        "missing visceral",
			Remove:      TorsoFat,
			WantNull:    []MetricKey{VolumeTorsoFat, MassTorsoFat, RatioSubcutToVisceral, RatioFatToMuscle},
			WantPresent: []MetricKey{VolumeMuscle, MassMuscle, VolumeSubcutaneousFat, MassSubcutaneousFat},
		},
	} {
		samples := fullSampleSet()
		delete(samples, v.Remove)

		metrics := Compute(samples, DefaultDensities())

		for _, key := range v.WantNull {
			m, _ := metrics.Get(key)
			if m.Value.Valid {
				t.Errorf("%s: metric %s should be null, got %f", v.Name, key, m.Value.Float64)
			}
			if m.Undefined {
				t.Errorf("%s: metric %s should be null, not undefined", v.Name, key)
			}
		}

		for _, key := range v.WantPresent {
			m, _ := metrics.Get(key)
			if !m.Value.Valid {
				t.Errorf("%s: metric %s should be computable", v.Name, key)
			}
		}
	}
}

// A present sample with zero positive voxels is a measured zero, not a
// missing upload: volumes and masses are 0, and ratios that divide by
// it are marked undefined rather than null.
func TestComputeZeroCount(t *testing.T) {
	samples := fullSampleSet()
	samples[TorsoFat] = TissueSample{Role: TorsoFat, VoxelCount: 0, VoxelVolumeCm3: 0.001}

	metrics := Compute(samples, DefaultDensities())

	for _, key := range []MetricKey{VolumeTorsoFat, MassTorsoFat} {
		m, _ := metrics.Get(key)
		if !m.Value.Valid || m.Value.Float64 != 0 {
			t.Errorf("metric %s: expected a valid 0, got %+v", key, m.Value)
		}
	}

	ratio, _ := metrics.Get(RatioSubcutToVisceral)
	if !ratio.Undefined {
		t.Error("subcutaneous/visceral ratio should be undefined when visceral mass is zero")
	}
	if ratio.Value.Valid {
		t.Errorf("undefined ratio should carry no value, got %f", ratio.Value.Float64)
	}

	// The fat/muscle ratio is still computable: its denominator is nonzero
	fatMuscle, _ := metrics.Get(RatioFatToMuscle)
	if !fatMuscle.Value.Valid {
		t.Error("fat/muscle ratio should remain computable")
	}
	if expected := 0.4598 / 1.06; math.Abs(fatMuscle.Value.Float64-expected) > 1e-12 {
		t.Errorf("fat/muscle ratio: got %.12f, expected %.12f", fatMuscle.Value.Float64, expected)
	}
}

func TestComputeZeroMuscleMass(t *testing.T) {
	samples := fullSampleSet()
	samples[SkeletalMuscle] = TissueSample{Role: SkeletalMuscle, VoxelCount: 0, VoxelVolumeCm3: 0.001}

	metrics := Compute(samples, DefaultDensities())

	fatMuscle, _ := metrics.Get(RatioFatToMuscle)
	if !fatMuscle.Undefined {
		t.Error("fat/muscle ratio should be undefined when muscle mass is zero")
	}
}

func TestComputeIdempotent(t *testing.T) {
	samples := fullSampleSet()

	first := Compute(samples, DefaultDensities())
	second := Compute(samples, DefaultDensities())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
