// Package main запускает multichecker.
//
// Он включает:
// - стандартные анализаторы go/analysis/passes
// - все SA-анализаторы staticcheck
// - упрощение S1000 и поиск неиспользуемого кода U1000
// - публичный анализатор bodyclose
// - собственный анализатор noexit (запрещает os.Exit и log.Fatal* в main)
//
// Запуск:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"strings"

	"github.com/timakin/bodyclose/passes/bodyclose"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/unused"

	"github.com/Totarae/brevly/cmd/staticlint/noexit"
)

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		printf.Analyzer,
		unusedresult.Analyzer,
	}

	// SA-анализаторы
	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			list = append(list, a.Analyzer)
		}
	}

	// не-SA:
	if a := findAnalyzer(simple.Analyzers, "S1000"); a != nil {
		list = append(list, a) // select с одним case
	}
	list = append(list, unused.Analyzer.Analyzer) // U1000

	// публичный анализатор (не из staticcheck)
	list = append(list, bodyclose.Analyzer)

	// собственный анализатор
	list = append(list, noexit.NewAnalyzer())

	return list
}

func findAnalyzer(analyzers []*lint.Analyzer, name string) *analysis.Analyzer {
	for _, a := range analyzers {
		if a.Analyzer.Name == name {
			return a.Analyzer
		}
	}
	return nil
}
