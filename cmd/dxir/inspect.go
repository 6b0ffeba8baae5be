package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dxir/internal/diag"
	"dxir/internal/dxutil"
	"dxir/internal/ir"
	"dxir/internal/shader"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <module.dxbc>",
	Short: "Print a bitcode module's structure and debug metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  inspectExecution,
}

func init() {
	inspectCmd.Flags().Bool("lazy", false, "defer function body loading")
	inspectCmd.Flags().Bool("materialize", false, "with --lazy, load bodies after the summary")
}

func inspectExecution(cmd *cobra.Command, args []string) error {
	lazy, err := cmd.Flags().GetBool("lazy")
	if err != nil {
		return err
	}
	materialize, err := cmd.Flags().GetBool("materialize")
	if err != nil {
		return err
	}
	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	useColor := colorEnabled(cmd)

	buf, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	target, err := loadTarget(configFlag)
	if err != nil {
		return err
	}

	bag := diag.NewBag(100)
	ctx := ir.NewContext(diag.BagReporter{Bag: bag})
	var m *ir.Module
	if lazy {
		m = dxutil.LoadModuleFromBitcodeLazy(buf, ctx)
	} else {
		m = dxutil.LoadModuleFromBitcode(buf, ctx)
	}
	if m == nil {
		return fmt.Errorf("%s: not a valid bitcode module", args[0])
	}

	shader.EnsureModule(m)
	sm := shader.Get(m)

	header := color.New(color.Bold)
	printHeader := func(s string) {
		if useColor {
			header.Println(s)
		} else {
			fmt.Println(s)
		}
	}

	printHeader("module " + m.Name)
	triple := m.TargetTriple
	if triple == "" {
		triple = target.Triple
	}
	fmt.Printf("  target:  %s (ptr %d bytes)\n", triple, target.PtrSize)
	fmt.Printf("  stage:   %s\n", sm.Stage)
	fmt.Printf("  globals: %d\n", len(m.Globals))
	fmt.Printf("  funcs:   %d\n", len(m.Funcs))

	finder := sm.GetOrCreateDebugInfoFinder()
	printHeader("debug info")
	fmt.Printf("  compile units:      %d\n", len(finder.CompileUnits))
	fmt.Printf("  subprograms:        %d\n", len(finder.Subprograms))
	fmt.Printf("  global descriptors: %d\n", len(finder.GlobalVariables))

	printHeader("functions")
	for _, f := range m.Funcs {
		state := "materialized"
		if !f.IsMaterialized() {
			state = "deferred"
		}
		where := ""
		if sp := f.Subprogram; sp != nil {
			where = fmt.Sprintf("  %s:%d", sp.File, sp.Line)
		}
		fmt.Printf("  %s [%s]%s\n", f.Name(), state, where)
	}

	if lazy && materialize {
		for _, f := range m.Funcs {
			if err := f.Materialize(); err != nil {
				return fmt.Errorf("materialize %s: %w", f.Name(), err)
			}
		}
		fmt.Println("all function bodies materialized")
	}
	return nil
}
