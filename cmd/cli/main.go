// Command cli runs a hypothesis test against a column of a CSV or XLSX file
// and prints the formatted result, optionally as a Markdown report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"hypotest/adapters/ingest"
	"hypotest/domain/hypothesis"
	"hypotest/internal/engine"
	"hypotest/internal/report"
)

func main() {
	var (
		file     = flag.String("file", "", "CSV or XLSX file to read (required)")
		column   = flag.String("column", "", "column to test (required)")
		column2  = flag.String("column2", "", "second column for the Welch two-sample test")
		kind     = flag.String("kind", "mean", "test kind: mean|variance|proportion|correlation|welch")
		alpha    = flag.Float64("alpha", 0.05, "significance level")
		tail     = flag.String("tail", "two", "tail: two|left|right")
		nullMean = flag.Float64("mu0", 0, "null mean for the mean test")
		nullVar  = flag.Float64("sigma0sq", 1, "null variance for the variance test")
		nullProp = flag.Float64("p0", 0.5, "null proportion for the proportion test")
		asReport = flag.Bool("report", false, "print a Markdown report instead of plain text")
	)
	flag.Parse()

	if *file == "" || *column == "" {
		flag.Usage()
		os.Exit(2)
	}

	ds, err := ingest.NewReader(*file).Read()
	if err != nil {
		log.Fatalf("ingest: %v", err)
	}
	values, err := ds.Column(*column)
	if err != nil {
		log.Fatalf("ingest: %v", err)
	}

	e := engine.New()
	var result hypothesis.HypothesisResult

	if hypothesis.TestKind(*kind) == hypothesis.KindWelch {
		if *column2 == "" {
			log.Fatal("welch test requires -column2")
		}
		groupB, err := ds.Column(*column2)
		if err != nil {
			log.Fatalf("ingest: %v", err)
		}
		result, err = e.RunWelchTwoSampleTest(values, groupB, *alpha, hypothesis.Tail(*tail))
		if err != nil {
			log.Fatalf("test: %v", err)
		}
	} else {
		cfg := hypothesis.DefaultConfig(hypothesis.TestKind(*kind))
		cfg.Alpha = *alpha
		cfg.Tail = hypothesis.Tail(*tail)
		cfg.NullMean = *nullMean
		cfg.NullVariance = *nullVar
		cfg.NullProportion = *nullProp

		result, err = e.RunOneSampleTest(values, cfg)
		if err != nil {
			log.Fatalf("test: %v", err)
		}
	}

	if *asReport {
		fmt.Print(report.Markdown(result))
		return
	}

	fmt.Println(result.TestName)
	fmt.Println(result.NullHypothesis)
	fmt.Println(result.AltHypothesis)
	fmt.Printf("statistic=%s p=%s critical=%s\n",
		engine.FormatNumber(result.Statistic),
		engine.FormatNumber(result.PValue),
		engine.FormatNumber(result.CriticalValue))
	fmt.Println(result.Interpretation)
}
