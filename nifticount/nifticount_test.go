package nifticount

import (
	"math"
	"testing"

	"github.com/henghuang/nifti"
)

func TestVoxelVolumeCm3(t *testing.T) {
	for _, v := range []struct {
		Spacing  [3]float32
		Expected float64
	}{
		{[3]float32{1, 1, 1}, 0.001},
		{[3]float32{2, 2, 2}, 0.008},
		{[3]float32{0.5, 0.5, 3}, 0.00075},
		// Negative spacing encodes orientation, not volume
		{[3]float32{-1, 1, 1}, 0.001},
	} {
		var hdr nifti.Nifti1Header
		hdr.Pixdim[1] = v.Spacing[0]
		hdr.Pixdim[2] = v.Spacing[1]
		hdr.Pixdim[3] = v.Spacing[2]

		if got := VoxelVolumeCm3(hdr); math.Abs(got-v.Expected) > 1e-12 {
			t.Errorf("spacing %v: got %.9f, expected %.9f", v.Spacing, got, v.Expected)
		}
	}
}

func TestReadFileMalformed(t *testing.T) {
	if _, err := ReadFile("testdata/does_not_exist.nii.gz"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
