package bodycomp

// TissueRole identifies one of the three segmented tissue classes
// produced by the whole-body MRI segmentation pipeline.
type TissueRole string

const (
	SkeletalMuscle  TissueRole = "skeletal_muscle"
	SubcutaneousFat TissueRole = "subcutaneous_fat"
	TorsoFat        TissueRole = "torso_fat"
)

// Roles returns the recognized tissue roles in display order.
func Roles() []TissueRole {
	return []TissueRole{SkeletalMuscle, SubcutaneousFat, TorsoFat}
}

// FileName returns the segmentation file name that the upload boundary
// requires for this role.
func (r TissueRole) FileName() string {
	return string(r) + ".nii.gz"
}

// RoleForFileName maps an uploaded file name back to its tissue role.
func RoleForFileName(name string) (TissueRole, bool) {
	for _, role := range Roles() {
		if role.FileName() == name {
			return role, true
		}
	}

	return "", false
}

// RequiredFileNames returns the exact set of file names that one
// analysis session must provide.
func RequiredFileNames() []string {
	roles := Roles()

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.FileName())
	}

	return names
}

// TissueSample is the decoded summary of one segmentation file. A
// sample that exists is present by definition: a zero VoxelCount is a
// valid measurement of an empty segmentation, not a missing upload.
type TissueSample struct {
	Role TissueRole

	// VoxelCount is the number of voxels with intensity strictly
	// greater than zero.
	VoxelCount int64

	// VoxelVolumeCm3 is the physical volume of one voxel in cubic
	// centimeters, derived from the image header spacing.
	VoxelVolumeCm3 float64
}

// VolumeCm3 returns the physical volume occupied by the segmented
// voxels.
func (s TissueSample) VolumeCm3() float64 {
	return float64(s.VoxelCount) * s.VoxelVolumeCm3
}
