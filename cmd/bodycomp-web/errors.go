package main

import (
	"fmt"
	"net/http"
)

func HTTPError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	usedCode := http.StatusInternalServerError
	if len(code) > 0 {
		usedCode = code[0]
	}

	w.WriteHeader(usedCode)
	h.log.Println(r.Host, r.URL.Path, ":", usedCode, err)

	output := struct {
		StatusCode     int
		StatusCodeText string
		Error          string
	}{
		StatusCode:     usedCode,
		StatusCodeText: http.StatusText(usedCode),
		Error:          err.Error(),
	}

	page := Page{
		Title:   "Error",
		Site:    h.Global.Site,
		Company: h.Global.Company,
		Email:   h.Global.Email,
		Data:    output,
	}

	// Built from Render() but not calling Render() to avoid the
	// possibility of an infinite loop
	if err := h.Template("error.html").Execute(w, page); err != nil {
		fmt.Fprintf(w, "Error (%d) (%v) with %+v", output.StatusCode, err, page)
	}
}
