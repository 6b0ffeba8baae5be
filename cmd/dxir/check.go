package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dxir/internal/diag"
	"dxir/internal/diagfmt"
	"dxir/internal/dxutil"
	"dxir/internal/ir"
	"dxir/internal/shader"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <modules...>",
	Short: "Load bitcode modules and verify their debug bindings",
	Args:  cobra.MinimumNArgs(1),
	RunE:  checkExecution,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("json", false, "emit diagnostics as JSON")
}

type checkResult struct {
	path string
	bag  *diag.Bag
}

func checkExecution(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	maxDiags, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]checkResult, len(args))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			results[i] = checkOne(path, maxDiags)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	failed := false
	for _, res := range results {
		res.bag.Sort()
		res.bag.Dedup()
		if res.bag.HasErrors() {
			failed = true
		}
		if res.bag.Len() == 0 {
			if !quiet {
				fmt.Printf("%s: ok\n", res.path)
			}
			continue
		}
		fmt.Printf("%s:\n", res.path)
		if asJSON {
			if err := diagfmt.JSON(os.Stdout, res.bag); err != nil {
				return err
			}
			continue
		}
		diagfmt.Pretty(os.Stdout, res.bag, diagfmt.PrettyOpts{Color: colorEnabled(cmd)})
	}
	if failed {
		return fmt.Errorf("check failed")
	}
	return nil
}

// checkOne loads one module and runs the debug-binding verifier.
// Every failure becomes a diagnostic in the returned bag; the check
// never aborts the other files.
func checkOne(path string, maxDiags int) checkResult {
	bag := diag.NewBag(maxDiags)
	res := checkResult{path: path, bag: bag}

	buf, err := os.ReadFile(path)
	if err != nil {
		bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.BcMalformed, Message: err.Error()})
		return res
	}
	ctx := ir.NewContext(diag.BagReporter{Bag: bag})
	m := dxutil.LoadModuleFromBitcode(buf, ctx)
	if m == nil {
		bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.BcMalformed, Message: "not a valid bitcode module"})
		return res
	}
	shader.EnsureModule(m)
	dxutil.VerifyDebugBindings(m)
	return res
}
