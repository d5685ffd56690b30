// Command sm83 runs a cartridge image against the SM83 core, either to
// completion (or a cycle cap) or under the interactive step debugger.
package main

import (
	"fmt"
	"log"
	"os"

	cli "github.com/urfave/cli/v2"

	"sm83/bus"
	"sm83/cartridge"
	"sm83/cpu"
)

func main() {
	app := &cli.App{
		Name:  "sm83",
		Usage: "run a Game Boy ROM against the SM83 CPU core",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "trace", Usage: "log every instruction boundary"},
			&cli.BoolFlag{Name: "debug", Usage: "start the interactive step debugger instead of free-running"},
			&cli.Uint64Flag{Name: "max-cycles", Usage: "stop after this many M-cycles (0 = unbounded)"},
		},
		ArgsUsage: "<rom-path>",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sm83:", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return cli.Exit("a ROM path is required", 1)
	}

	cart, err := cartridge.LoadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("loading %s: %v", path, err), 1)
	}

	b := bus.New(cart)
	c := cpu.New(b)
	c.ResetPostBoot()

	if ctx.Bool("trace") {
		c.Trace = true
		c.Tracer = traceStep
	}

	if ctx.Bool("debug") {
		if err := cpu.Debug(c); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}

	maxCycles := ctx.Uint64("max-cycles")
	var cycles uint64
	for {
		if c.Locked {
			return cli.Exit("CPU reached an illegal opcode and locked up", 2)
		}
		c.Step()
		cycles++
		if maxCycles != 0 && cycles >= maxCycles {
			break
		}
	}
	return nil
}

func traceStep(c *cpu.Cpu) {
	log.Printf("pc=%04x af=%04x bc=%04x de=%04x hl=%04x sp=%04x ime=%v",
		c.PC, c.AF, c.BC, c.DE, c.HL, c.SP, c.IME)
}
