package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime"

	"github.com/fkucharczak/bodycomp"
	"github.com/fkucharczak/bodycomp/masschart"
	"github.com/fkucharczak/bodycomp/xlsxreport"
)

// indexData is the view model for the upload page.
type indexData struct {
	RequiredFiles []string
	Error         string
}

// resultRow is one line of the results table.
type resultRow struct {
	Label   string
	Display string
}

// hiddenField carries one metric value through the download form so
// that the server stays stateless between the analysis and the
// export.
type hiddenField struct {
	Name  string
	Value string
}

// resultsData is the view model for the results page.
type resultsData struct {
	Rows         []resultRow
	EncodedChart string
	Fields       []hiddenField
	PatientID    string
}

func (h *handler) Index(w http.ResponseWriter, r *http.Request) {
	Render(h, w, r, h.Global.Site, "index.html", indexData{RequiredFiles: bodycomp.RequiredFileNames()})
}

func (h *handler) Goroutines(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "%d goroutines are running\n", runtime.NumGoroutine())
}

// Analyze handles one full upload-decode-compute-render session. All
// failures are session-local: the page reports them and the server
// keeps serving.
func (h *handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["segmentations"]
	if len(files) == 0 {
		h.renderUploadError(w, r, "Veuillez déposer les 3 fichiers NIfTI (.nii.gz).")
		return
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}

	// Validate the name set before decoding anything
	if err := bodycomp.CheckUploadSet(names); err != nil {
		h.renderUploadError(w, r, err.Error())
		return
	}

	paths, cleanup, err := spoolUploads(files)
	if err != nil {
		HTTPError(h, w, r, err)
		return
	}
	defer cleanup()

	metrics, err := bodycomp.AnalyzeFiles(paths, h.Global.Densities)
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	var chartBuf bytes.Buffer
	if err := masschart.Render(&chartBuf, metrics); err != nil {
		HTTPError(h, w, r, err)
		return
	}

	data := resultsData{
		EncodedChart: base64.StdEncoding.EncodeToString(chartBuf.Bytes()),
		PatientID:    defaultPatientID,
	}
	for _, m := range metrics {
		data.Rows = append(data.Rows, resultRow{Label: m.Label, Display: displayValue(m)})
		data.Fields = append(data.Fields, hiddenField{Name: fieldName(m.Key), Value: fieldValue(m)})
	}

	Render(h, w, r, "Résultats", "results.html", data)
}

// Download re-materializes the metric set from the posted form and
// streams the .xlsx report under the anonymized patient identifier.
func (h *handler) Download(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	metrics, err := metricsFromForm(r.Form)
	if err != nil {
		HTTPError(h, w, r, err, http.StatusBadRequest)
		return
	}

	patientID := sanitizePatientID(r.Form.Get("patient_id"))

	w.Header().Set("Content-Type", xlsxreport.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, patientID))

	if err := xlsxreport.Write(w, metrics); err != nil {
		// Headers are already gone; all that remains is to log
		h.log.Println(r.Host, r.URL.Path, ":", err)
	}
}

func (h *handler) renderUploadError(w http.ResponseWriter, r *http.Request, message string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	Render(h, w, r, h.Global.Site, "index.html", indexData{
		RequiredFiles: bodycomp.RequiredFileNames(),
		Error:         message,
	})
}
