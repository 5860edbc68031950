// Package nifticount reduces a NIfTI-1 segmentation volume to the two
// numbers the body-composition analysis needs: the count of positive
// voxels and the physical volume of one voxel.
package nifticount

import (
	"math"

	"github.com/carbocation/pfx"
	"github.com/henghuang/nifti"
)

// Stats summarizes one decoded segmentation file.
type Stats struct {
	// PositiveVoxels is the number of voxels with intensity
	// strictly greater than zero, i.e. voxels that belong to the
	// segmented tissue class.
	PositiveVoxels int64

	// VoxelVolumeCm3 is the physical size of one voxel in cubic
	// centimeters, from the header spacing.
	VoxelVolumeCm3 float64
}

// ReadFile parses a .nii or .nii.gz file and summarizes it. A file the
// nifti library cannot parse yields an error, never a silent zero.
func ReadFile(path string) (Stats, error) {
	img, err := parseImage(path, true)
	if err != nil {
		return Stats{}, pfx.Err(err)
	}

	hdr, err := parseHeader(path)
	if err != nil {
		return Stats{}, pfx.Err(err)
	}

	return Stats{
		PositiveVoxels: CountPositive(img),
		VoxelVolumeCm3: VoxelVolumeCm3(hdr),
	}, nil
}

// CountPositive walks the full grid, including the time dimension when
// present, and counts voxels with intensity > 0.
func CountPositive(img nifti.Nifti1Image) int64 {
	dims := img.GetDims()
	xm, ym, zm, tm := dims[0], dims[1], dims[2], dims[3]

	// 3D files leave the time dimension unset
	if tm < 1 {
		tm = 1
	}

	var count int64
	for t := 0; t < tm; t++ {
		for z := 0; z < zm; z++ {
			for x := 0; x < xm; x++ {
				for y := 0; y < ym; y++ {
					if float64(img.GetAt(x, y, z, t)) > 0 {
						count++
					}
				}
			}
		}
	}

	return count
}

// VoxelVolumeCm3 derives the per-voxel physical volume from the header
// spacing. Pixdim is in millimeters per axis, so the product is mm³
// and the division by 1000 converts to cm³. Some tools write negative
// spacing to encode orientation, hence the absolute value.
func VoxelVolumeCm3(hdr nifti.Nifti1Header) float64 {
	return math.Abs(float64(hdr.Pixdim[1])*float64(hdr.Pixdim[2])*float64(hdr.Pixdim[3])) / 1000
}
