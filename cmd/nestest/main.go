// Command nestest drives the CPU core against nestest.nes in the
// conventions nestest.log documents: starting at $C000 in batch mode,
// tracing every instruction, and diffing against a reference log when one
// is given.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v2"

	"github.com/module/nes6502/nes"
)

func main() {
	app := &cli.App{
		Name:    "nestest",
		Usage:   "run a 6502 CPU core against the nestest reference ROM",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "batch",
				Aliases: []string{"b"},
				Usage:   "start at $C000 (nestest's automated self-test entry point)",
			},
			&cli.BoolFlag{
				Name:    "stepping",
				Aliases: []string{"s"},
				Usage:   "pause for Enter before each instruction",
			},
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Usage:   "reference trace to diff the run against, line by line",
			},
			&cli.IntFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log verbosity level (an integer; above 0, stepping mode prints the PC before each pause)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("usage: nestest [options] <rom.nes>", 2)
	}
	romPath := c.Args().Get(0)

	data, err := os.ReadFile(romPath)
	if err != nil {
		return cli.Exit(errors.Wrap(err, "reading rom"), 1)
	}

	bus := nes.NewBus()
	if err := bus.LoadROM(data); err != nil {
		return cli.Exit(errors.Wrap(err, "loading rom"), 1)
	}

	cpu := nes.NewCPU(bus)
	cpu.Init()
	if c.Bool("batch") {
		cpu.SetPC(0xC000)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	cpu.Trace = out

	var reference *bufio.Scanner
	if logPath := c.String("log"); logPath != "" {
		f, err := os.Open(logPath)
		if err != nil {
			return cli.Exit(errors.Wrap(err, "opening reference log"), 1)
		}
		defer f.Close()
		reference = bufio.NewScanner(f)
	}

	verbosity := c.Int("verbose")
	stepping := c.Bool("stepping")
	in := bufio.NewReader(os.Stdin)

	mismatch := false
	lineNo := 0
	for {
		if stepping {
			if verbosity > 0 {
				fmt.Fprintf(os.Stderr, "-- PC=$%04X, press Enter to step\n", cpu.PC)
			}
			in.ReadString('\n')
		}

		var traced string
		if reference != nil {
			traced = nes.Disassemble(peekNext(cpu, bus), cpu.PC, cpu, bus)
		}

		err := cpu.Step()
		lineNo++

		if reference != nil && traced != "" {
			if !reference.Scan() {
				break
			}
			want := reference.Text()
			got := traced
			if len(want) > 48 && len(got) > 48 {
				want = want[:48]
				got = got[:48]
			}
			if want != got {
				mismatch = true
				fmt.Fprintf(os.Stderr, "mismatch at line %d:\n  want: %s\n  got:  %s\n", lineNo, want, got)
				break
			}
		}

		if err != nil {
			if nes.IsBreak(err) {
				break
			}
			out.Flush()
			return cli.Exit(errors.Wrap(err, "step failed"), 1)
		}
	}

	out.Flush()
	if mismatch {
		return cli.Exit("trace mismatch against reference log", 1)
	}
	return nil
}

// peekNext decodes the instruction at the CPU's current PC without
// executing it, so the trace line used for comparison can be produced
// before Step's own internal trace (written to cpu.Trace) advances state.
func peekNext(cpu *nes.CPU, bus *nes.Bus) nes.Instruction {
	raw := [3]byte{bus.Read(cpu.PC), bus.Read(cpu.PC + 1), bus.Read(cpu.PC + 2)}
	inst, err := nes.Decode(raw[:])
	if err != nil {
		return nes.Instruction{}
	}
	return inst
}
