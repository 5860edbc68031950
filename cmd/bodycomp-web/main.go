// bodycomp-web serves the single-page body-composition analysis tool:
// upload the three whole-body MRI segmentation files, read the derived
// volumes, masses, and fat ratios, and download the .xlsx report.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fkucharczak/bodycomp"
)

var global *Global

func main() {
	errors := make(chan error, 1)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig,
		os.Interrupt,
		os.Kill,
		syscall.SIGTERM,
		syscall.SIGUSR1,
	)

	defaults := bodycomp.DefaultDensities()

	port := flag.Int("port", 9021, "Port for HTTP server")
	fatDensity := flag.Float64("fat-density", defaults.FatKgPerCm3, "Fat density in kg/cm³")
	muscleDensity := flag.Float64("muscle-density", defaults.MuscleKgPerCm3, "Muscle density in kg/cm³")
	flag.Parse()

	global = &Global{
		Site:    "Analyse de Segmentation IRM",
		Company: "Analyse de segmentation IRM corps entier",
		Email:   "f.kucharczak@example.org",
		log:     log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),

		Densities: bodycomp.Densities{
			FatKgPerCm3:    *fatDensity,
			MuscleKgPerCm3: *muscleDensity,
		},
	}

	global.log.Println("Launching", global.Site)

	go func() {
		global.log.Println("Starting HTTP server on port", *port)
		if err := http.ListenAndServe(fmt.Sprintf(`:%d`, *port), router(global)); err != nil {
			errors <- err
			global.log.Println(err)
			sig <- syscall.SIGTERM
			return
		}
	}()

Outer:
	for {
		select {
		case sigl := <-sig:

			if sigl == syscall.SIGUSR1 {
				SigStatus()
				continue
			}

			// By default, exit
			global.log.Printf("\nExit: %s\n", sigl.String())

			break Outer

		case err := <-errors:
			if err == nil {
				global.log.Println("Finished")
				break Outer
			}

			// Return a status code indicating failure
			global.log.Println("Exiting due to error", err)
			os.Exit(1)
		}
	}
}

func SigStatus() {
	global.log.Println("There are", runtime.NumGoroutine(), "goroutines running")
}
