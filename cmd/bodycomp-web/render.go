package main

import (
	"net/http"
)

type Page struct {
	Title   string
	Site    string
	Company string
	Email   string
	Data    interface{}
}

func Render(h *handler, w http.ResponseWriter, r *http.Request, title string, tpl string, data interface{}) {
	page := Page{
		Title:   title,
		Site:    h.Global.Site,
		Company: h.Global.Company,
		Email:   h.Global.Email,
		Data:    data,
	}

	if tpl == "" {
		tpl = BaseFilename
	}

	if err := h.Template(tpl).Execute(w, page); err != nil {
		HTTPError(h, w, r, err)
	}
}
