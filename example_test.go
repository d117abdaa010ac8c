package swtk_test

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tsawler/swtk"
	"github.com/tsawler/swtk/config"
	"github.com/tsawler/swtk/format"
	"github.com/tsawler/swtk/model"
)

// These examples mirror the package documentation. Those without an
// Output comment only need to compile since they read files.

func Example_renderReport() {
	f, err := os.Create("paper.html")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	analysis, err := swtk.Open("paper.tex").Render(f)
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range analysis.Warnings {
		fmt.Println("Warning:", w)
	}
}

func Example_withConfig() {
	cfg, err := config.Load("swtk.yaml")
	if err != nil {
		log.Fatal(err)
	}
	analysis, err := swtk.Open("paper.md").
		Config(cfg).
		Math(model.MathDisplay).
		Analyze()
	_ = analysis
	_ = err
}

func ExampleFormatWarnings() {
	fmt.Println(swtk.FormatWarnings([]swtk.Warning{
		{Line: 3, Message: "unbalanced brace"},
		{Message: "empty document"},
	}))
	// Output: line 3: unbalanced brace; empty document
}

func ExamplePaper_Only() {
	src := "The results were obtained quickly. We have data.\n"
	analysis := swtk.Must(swtk.FromReader(strings.NewReader(src), format.Plaintext).
		Only("passive-voice").
		Analyze())

	for _, r := range analysis.Document.Reports() {
		fmt.Println(r.Label)
	}
	// Output: Passive voice sentences
}
