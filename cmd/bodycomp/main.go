// bodycomp derives tissue volumes, masses, and fat ratios from three
// whole-body MRI segmentation files and prints them as a
// tab-delimited table, optionally also writing the .xlsx report, a
// mass bar chart, and a CSV sidecar.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fkucharczak/bodycomp"
	"github.com/fkucharczak/bodycomp/masschart"
	"github.com/fkucharczak/bodycomp/xlsxreport"
)

func main() {
	var musclePath, subcutPath, visceralPath string
	var outXLSX, outChart, outCSV string
	var fatDensity, muscleDensity float64
	var ignoreNames bool

	defaults := bodycomp.DefaultDensities()

	flag.StringVar(&musclePath, "muscle", "", "Path to the skeletal_muscle.nii.gz segmentation.")
	flag.StringVar(&subcutPath, "subcutaneous", "", "Path to the subcutaneous_fat.nii.gz segmentation.")
	flag.StringVar(&visceralPath, "visceral", "", "Path to the torso_fat.nii.gz segmentation.")
	flag.StringVar(&outXLSX, "out", "", "(Optional) Path where the .xlsx report will be written.")
	flag.StringVar(&outChart, "chart", "", "(Optional) Path where the mass bar chart PNG will be written.")
	flag.StringVar(&outCSV, "csv", "", "(Optional) Path where a CSV copy of the report will be written.")
	flag.Float64Var(&fatDensity, "fat-density", defaults.FatKgPerCm3, "Fat density in kg/cm³.")
	flag.Float64Var(&muscleDensity, "muscle-density", defaults.MuscleKgPerCm3, "Muscle density in kg/cm³.")
	flag.BoolVar(&ignoreNames, "ignore-names", false, "(Optional) If true, skips checking that each file's basename matches its expected segmentation name.")
	flag.Parse()

	if musclePath == "" && subcutPath == "" && visceralPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	paths := make(map[bodycomp.TissueRole]string)
	if musclePath != "" {
		paths[bodycomp.SkeletalMuscle] = musclePath
	}
	if subcutPath != "" {
		paths[bodycomp.SubcutaneousFat] = subcutPath
	}
	if visceralPath != "" {
		paths[bodycomp.TorsoFat] = visceralPath
	}

	if !ignoreNames {
		for role, path := range paths {
			if base := filepath.Base(path); base != role.FileName() {
				log.Fatalf("-%s expects a file named %s, got %s (use -ignore-names to override)\n", flagNameForRole(role), role.FileName(), base)
			}
		}
	}

	metrics, err := bodycomp.AnalyzeFiles(paths, bodycomp.Densities{
		FatKgPerCm3:    fatDensity,
		MuscleKgPerCm3: muscleDensity,
	})
	if err != nil {
		log.Fatalln(err)
	}

	for _, m := range metrics {
		fmt.Printf("%s\t%s\n", m.Label, displayValue(m))
	}

	if outXLSX != "" {
		if err := writeXLSX(outXLSX, metrics); err != nil {
			log.Fatalln(err)
		}
	}

	if outChart != "" {
		if err := writeChart(outChart, metrics); err != nil {
			log.Fatalln(err)
		}
	}

	if outCSV != "" {
		if err := writeCSV(outCSV, metrics); err != nil {
			log.Fatalln(err)
		}
	}
}

func flagNameForRole(role bodycomp.TissueRole) string {
	switch role {
	case bodycomp.SkeletalMuscle:
		return "muscle"
	case bodycomp.SubcutaneousFat:
		return "subcutaneous"
	default:
		return "visceral"
	}
}

func writeXLSX(path string, metrics bodycomp.MetricSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return xlsxreport.Write(f, metrics)
}

func writeChart(path string, metrics bodycomp.MetricSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return masschart.Render(f, metrics)
}
