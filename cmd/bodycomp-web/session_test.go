package main

import (
	"net/url"
	"testing"

	"gopkg.in/guregu/null.v3"

	"github.com/fkucharczak/bodycomp"
)

func TestMetricsFormRoundTrip(t *testing.T) {
	samples := map[bodycomp.TissueRole]bodycomp.TissueSample{
		bodycomp.SkeletalMuscle: {Role: bodycomp.SkeletalMuscle, VoxelCount: 1000000, VoxelVolumeCm3: 0.001},
		bodycomp.TorsoFat:       {Role: bodycomp.TorsoFat, VoxelCount: 0, VoxelVolumeCm3: 0.001},
	}
	metrics := bodycomp.Compute(samples, bodycomp.DefaultDensities())

	form := url.Values{}
	for _, m := range metrics {
		form.Set(fieldName(m.Key), fieldValue(m))
	}

	rebuilt, err := metricsFromForm(form)
	if err != nil {
		t.Fatal(err)
	}

	if len(rebuilt) != len(metrics) {
		t.Fatalf("expected %d metrics, got %d", len(metrics), len(rebuilt))
	}

	for i, m := range metrics {
		got := rebuilt[i]
		if got.Key != m.Key || got.Label != m.Label {
			t.Errorf("position %d: got %s/%q, expected %s/%q", i, got.Key, got.Label, m.Key, m.Label)
		}
		if got.Undefined != m.Undefined {
			t.Errorf("%s: undefined = %v, expected %v", m.Key, got.Undefined, m.Undefined)
		}
		if got.Value != m.Value {
			t.Errorf("%s: value = %+v, expected %+v", m.Key, got.Value, m.Value)
		}
	}
}

func TestMetricsFromFormRejectsGarbage(t *testing.T) {
	form := url.Values{}
	form.Set(fieldName(bodycomp.VolumeMuscle), "not-a-number")

	if _, err := metricsFromForm(form); err == nil {
		t.Error("expected an error for a non-numeric field")
	}
}

func TestSanitizePatientID(t *testing.T) {
	for _, v := range []struct {
		In       string
		Expected string
	}{
		{"", "p_xxx"},
		{"  ", "p_xxx"},
		{"p_001", "p_001"},
		{"p 001", "p_001"},
		{`p"/\001`, "p___001"},
		{"../../etc/passwd", ".._.._etc_passwd"},
	} {
		if got := sanitizePatientID(v.In); got != v.Expected {
			t.Errorf("sanitizePatientID(%q) = %q, expected %q", v.In, got, v.Expected)
		}
	}
}

func TestDisplayValue(t *testing.T) {
	for _, v := range []struct {
		Metric   bodycomp.Metric
		Expected string
	}{
		{bodycomp.Metric{Value: null.FloatFrom(1.06)}, "1.0600"},
		{bodycomp.Metric{}, "—"},
		{bodycomp.Metric{Undefined: true}, "indéterminé"},
	} {
		if got := displayValue(v.Metric); got != v.Expected {
			t.Errorf("displayValue(%+v) = %q, expected %q", v.Metric, got, v.Expected)
		}
	}
}
