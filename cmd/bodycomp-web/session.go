package main

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"

	"github.com/fkucharczak/bodycomp"
	"github.com/fkucharczak/bodycomp/xlsxreport"
)

const (
	// maxUploadBytes bounds one session's multipart payload.
	// Whole-body segmentations are tens of megabytes compressed.
	maxUploadBytes = 512 << 20

	defaultPatientID = "p_xxx"

	fieldPrefix = "metric_"
)

// spoolUploads writes each uploaded segmentation to a temp file so the
// NIfTI parser can read it by path, and returns the per-role paths
// plus a cleanup function that removes the temp files.
func spoolUploads(files []*multipart.FileHeader) (map[bodycomp.TissueRole]string, func(), error) {
	paths := make(map[bodycomp.TissueRole]string, len(files))

	cleanup := func() {
		for _, path := range paths {
			os.Remove(path)
		}
	}

	for _, fh := range files {
		role, ok := bodycomp.RoleForFileName(fh.Filename)
		if !ok {
			// CheckUploadSet ran before us, so this is a programming error
			cleanup()
			return nil, nil, pfx.Err(fmt.Errorf("unexpected upload name %q", fh.Filename))
		}

		src, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, nil, pfx.Err(err)
		}

		// The suffix matters: the parser sniffs gzip by extension
		dst, err := os.CreateTemp("", "bodycomp-*.nii.gz")
		if err != nil {
			src.Close()
			cleanup()
			return nil, nil, pfx.Err(err)
		}

		_, err = io.Copy(dst, src)
		src.Close()
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(dst.Name())
			cleanup()
			return nil, nil, pfx.Err(err)
		}

		paths[role] = dst.Name()
	}

	return paths, cleanup, nil
}

// displayValue renders one metric for the results table.
func displayValue(m bodycomp.Metric) string {
	switch {
	case m.Undefined:
		return "indéterminé"
	case !m.Value.Valid:
		return "—"
	default:
		return strconv.FormatFloat(m.Value.Float64, 'f', 4, 64)
	}
}

func fieldName(key bodycomp.MetricKey) string {
	return fieldPrefix + string(key)
}

// fieldValue serializes one metric into the download form at full
// precision, so the exported numbers match the computed ones exactly.
func fieldValue(m bodycomp.Metric) string {
	switch {
	case m.Undefined:
		return xlsxreport.UndefinedCell
	case !m.Value.Valid:
		return ""
	default:
		return strconv.FormatFloat(m.Value.Float64, 'g', -1, 64)
	}
}

// metricsFromForm rebuilds the metric set posted by the results page.
func metricsFromForm(form url.Values) (bodycomp.MetricSet, error) {
	out := make(bodycomp.MetricSet, 0, len(bodycomp.MetricKeys()))

	for _, key := range bodycomp.MetricKeys() {
		m := bodycomp.Metric{Key: key, Label: key.Label()}

		switch raw := form.Get(fieldName(key)); raw {
		case "":
			// Not computable in this session
		case xlsxreport.UndefinedCell:
			m.Undefined = true
		default:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("field %s: %w", fieldName(key), err))
			}
			m.Value = null.FloatFrom(v)
		}

		out = append(out, m)
	}

	return out, nil
}

// sanitizePatientID keeps the anonymized identifier usable as a file
// name inside the Content-Disposition header.
func sanitizePatientID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return defaultPatientID
	}

	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	return b.String()
}
