package main

import (
	"github.com/fkucharczak/bodycomp"
)

type Global struct {
	log logger

	Site    string
	Company string
	Email   string

	Densities bodycomp.Densities
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
