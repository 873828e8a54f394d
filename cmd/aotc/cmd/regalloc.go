package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aotlang/aotc/internal/regalloc"
	"github.com/spf13/cobra"
)

var (
	gpRegs int
	fpRegs int
)

var regallocCmd = &cobra.Command{
	Use:   "regalloc <ranges-file>",
	Short: "Run linear-scan register allocation over a live range list",
	Long: `Reads a textual live range list, one range per line:

    <class> <start> <end>

class is "gp" or "fp". Ranges are allocated in the order they appear in
the file, which must already be sorted by start (spec §4.6). Physical
pools default to 8 registers per class; override with --gp-regs/--fp-regs.

This subcommand exercises internal/regalloc directly: the register
allocator operates on an externally supplied range list rather than one
lowered from this toolchain's own IR (no such lowering pass is in
scope).`,
	Args: cobra.ExactArgs(1),
	RunE: runRegalloc,
}

func init() {
	regallocCmd.Flags().IntVar(&gpRegs, "gp-regs", 8, "number of general-purpose physical registers in the pool")
	regallocCmd.Flags().IntVar(&fpRegs, "fp-regs", 8, "number of floating-point physical registers in the pool")
	rootCmd.AddCommand(regallocCmd)
}

func runRegalloc(cmd *cobra.Command, args []string) error {
	ranges, err := readRanges(args[0])
	if err != nil {
		exitWithError("%v", err)
		return fmt.Errorf("regalloc failed")
	}

	regPool := map[regalloc.RegisterClass][]regalloc.Register{
		regalloc.GeneralPurpose: physicalPool(regalloc.GeneralPurpose, gpRegs),
		regalloc.FloatingPoint:  physicalPool(regalloc.FloatingPoint, fpRegs),
	}

	alloc := regalloc.NewAllocator(regPool, ranges)
	alloc.Run()

	for i, r := range ranges {
		fmt.Fprintf(os.Stdout, "%d: [%d,%d) %s -> %s\n", i, r.Start, r.End, className(r.Class), describeAlloc(r.Alloc))
	}
	if len(alloc.Failed) > 0 {
		exitWithError("%d range(s) could not be allocated from the available pool", len(alloc.Failed))
		return fmt.Errorf("regalloc failed")
	}
	return nil
}

func physicalPool(cls regalloc.RegisterClass, n int) []regalloc.Register {
	regs := make([]regalloc.Register, n)
	for i := range regs {
		regs[i] = regalloc.Physical(cls, i)
	}
	return regs
}

func className(cls regalloc.RegisterClass) string {
	if cls == regalloc.FloatingPoint {
		return "fp"
	}
	return "gp"
}

func describeAlloc(r regalloc.Register) string {
	if r.IsNoRegister() {
		return "SPILL"
	}
	return fmt.Sprintf("%s%d", className(r.Class), r.ID)
}

// readRanges parses the "<class> <start> <end>" line format described in
// regallocCmd's help text. Each virtual register is numbered by its position
// among the parsed ranges; blank and comment lines are not counted.
func readRanges(path string) ([]*regalloc.LiveRange, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var ranges []*regalloc.LiveRange
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: expected \"<class> <start> <end>\", got %q", path, lineNo, line)
		}

		var cls regalloc.RegisterClass
		switch fields[0] {
		case "gp":
			cls = regalloc.GeneralPurpose
		case "fp":
			cls = regalloc.FloatingPoint
		default:
			return nil, fmt.Errorf("%s:%d: unknown register class %q", path, lineNo, fields[0])
		}

		start, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid start %q: %w", path, lineNo, fields[1], err)
		}
		end, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: invalid end %q: %w", path, lineNo, fields[2], err)
		}

		ranges = append(ranges, &regalloc.LiveRange{
			Reg:   regalloc.Virtual(cls, len(ranges)),
			Start: uint32(start),
			End:   uint32(end),
			Class: cls,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ranges, nil
}
