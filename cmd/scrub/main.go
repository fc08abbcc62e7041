// Command scrub runs a cleaning job against local files: read input
// table(s), apply the configured pipeline, write the result, print the
// before/after statistics.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/jgrady/scrub/pkg/io/dataio"
	"github.com/jgrady/scrub/pkg/scrub"
	"github.com/jgrady/scrub/pkg/scrub/clean"
	"github.com/jgrady/scrub/pkg/scrub/merge"
	"github.com/jgrady/scrub/pkg/scrub/stats"
)

var version = "0.1.0-dev"

type fileRef struct {
	Path   string `json:"path" yaml:"path" toml:"path"`
	Format string `json:"format" yaml:"format" toml:"format"`
}

type job struct {
	Input   fileRef       `json:"input" yaml:"input" toml:"input"`
	Merge   []fileRef     `json:"merge" yaml:"merge" toml:"merge"`
	Options clean.Options `json:"options" yaml:"options" toml:"options"`
	Output  fileRef       `json:"output" yaml:"output" toml:"output"`
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	jobPath := flag.String("job", "", "Path to cleaning job file (json, yaml or toml)")
	flag.Parse()

	if *showVersion {
		fmt.Println("scrub", version)
		return
	}
	if *jobPath == "" {
		fmt.Fprintln(os.Stderr, "no job provided; try --job <file> or --version")
		os.Exit(2)
	}
	if err := run(*jobPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(jobPath string) error {
	j, err := loadJob(jobPath)
	if err != nil {
		return err
	}

	table, err := readRef(j.Input)
	if err != nil {
		return err
	}
	var extra []*scrub.Table
	for _, ref := range j.Merge {
		t, err := readRef(ref)
		if err != nil {
			return err
		}
		extra = append(extra, t)
	}
	if len(extra) > 0 {
		table = merge.Tables(table, extra...)
	}

	pipeline, err := clean.Build(&j.Options)
	if err != nil {
		return err
	}
	cleaned, warns, err := pipeline.Run(context.Background(), table)
	if err != nil {
		return err
	}
	for _, w := range warns {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	out, err := dataio.Write(cleaned, refFormat(j.Output))
	if err != nil {
		return err
	}
	if err := os.WriteFile(j.Output.Path, out, 0o644); err != nil {
		return err
	}

	printStats("input", stats.Compute(table))
	printStats("output", stats.Compute(cleaned))
	return nil
}

func loadJob(path string) (*job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var j job
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &j)
	case ".toml":
		err = toml.Unmarshal(b, &j)
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&j)
	}
	if err != nil {
		return nil, fmt.Errorf("parse job %s: %w", path, err)
	}
	if j.Input.Path == "" || j.Output.Path == "" {
		return nil, fmt.Errorf("job needs input.path and output.path")
	}
	if err := j.Options.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

func readRef(ref fileRef) (*scrub.Table, error) {
	b, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, err
	}
	return dataio.Read(b, refFormat(ref))
}

// refFormat resolves a file reference's format, falling back to the path
// extension.
func refFormat(ref fileRef) string {
	if ref.Format != "" {
		return ref.Format
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(ref.Path), "."))
}

func printStats(label string, st stats.DataStatistics) {
	fmt.Printf("%s: %d rows, %d columns\n", label, st.Rows, st.Columns)
	for _, name := range sortedKeys(st.DataTypes) {
		line := fmt.Sprintf("  %s (%s): missing=%d unique=%d",
			name, st.DataTypes[name], st.MissingValues[name], st.UniqueValues[name])
		if num, ok := st.NumericStats[name]; ok {
			line += fmt.Sprintf(" min=%.6g max=%.6g mean=%.6g std=%.6g",
				num.Min, num.Max, num.Mean, num.Std)
		}
		fmt.Println(line)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
