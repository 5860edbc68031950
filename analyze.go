package bodycomp

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/carbocation/pfx"

	"github.com/fkucharczak/bodycomp/nifticount"
)

// ErrInputCount reports an upload set whose size is wrong even though
// no individual name is missing or unexpected (duplicate uploads).
var ErrInputCount = errors.New("exactly 3 segmentation files are required")

// ErrVoxelVolumeMismatch reports segmentation files whose headers
// disagree about the physical voxel size. The three files of one
// session must come from the same acquisition.
var ErrVoxelVolumeMismatch = errors.New("voxel volumes disagree between file headers")

// InputSetError reports an upload set whose file names do not exactly
// match the three required segmentation names.
type InputSetError struct {
	Missing []string
	Extra   []string
}

func (e InputSetError) Error() string {
	return fmt.Sprintf("uploaded files do not match the expected segmentation set (missing: %v, unexpected: %v)", e.Missing, e.Extra)
}

// DecodeError reports a segmentation file that could not be parsed.
type DecodeError struct {
	Path string
	Err  error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}

// CheckUploadSet validates a set of uploaded file names before any
// decoding begins. It reports every missing and unexpected name at
// once rather than failing on the first.
func CheckUploadSet(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}

	var missing []string
	for _, required := range RequiredFileNames() {
		if !seen[required] {
			missing = append(missing, required)
		}
	}

	var extra []string
	for name := range seen {
		if _, ok := RoleForFileName(name); !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	if len(missing) > 0 || len(extra) > 0 {
		return InputSetError{Missing: missing, Extra: extra}
	}

	// Names all match, so only duplicates can make the count wrong
	if len(names) != len(RequiredFileNames()) {
		return ErrInputCount
	}

	return nil
}

// AnalyzeFiles decodes each provided segmentation file, verifies that
// the headers agree on voxel size, and derives the metric set. Roles
// absent from paths simply yield null metrics downstream; a file that
// fails to decode aborts the whole session.
func AnalyzeFiles(paths map[TissueRole]string, d Densities) (MetricSet, error) {
	samples := make(map[TissueRole]TissueSample, len(paths))

	for _, role := range Roles() {
		path, ok := paths[role]
		if !ok {
			continue
		}

		stats, err := nifticount.ReadFile(path)
		if err != nil {
			return nil, pfx.Err(DecodeError{Path: path, Err: err})
		}

		samples[role] = TissueSample{
			Role:           role,
			VoxelCount:     stats.PositiveVoxels,
			VoxelVolumeCm3: stats.VoxelVolumeCm3,
		}
	}

	if err := checkVoxelVolumes(samples); err != nil {
		return nil, err
	}

	return Compute(samples, d), nil
}

// checkVoxelVolumes rejects sample sets whose headers disagree on
// voxel size beyond floating-point noise. The original workflow
// silently kept the last-read value, which could mask mixed-up
// uploads from different acquisitions.
func checkVoxelVolumes(samples map[TissueRole]TissueSample) error {
	const relTolerance = 1e-9

	var reference TissueSample
	haveReference := false

	for _, role := range Roles() {
		s, ok := samples[role]
		if !ok {
			continue
		}

		if !haveReference {
			reference = s
			haveReference = true
			continue
		}

		diff := math.Abs(s.VoxelVolumeCm3 - reference.VoxelVolumeCm3)
		if diff > relTolerance*math.Max(math.Abs(s.VoxelVolumeCm3), math.Abs(reference.VoxelVolumeCm3)) {
			return fmt.Errorf("%s (%g cm³) vs %s (%g cm³): %w",
				reference.Role.FileName(), reference.VoxelVolumeCm3,
				s.Role.FileName(), s.VoxelVolumeCm3,
				ErrVoxelVolumeMismatch)
		}
	}

	return nil
}
