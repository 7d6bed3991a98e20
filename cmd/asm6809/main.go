package main

import (
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v2"

	"tandycoco/asm6809/asm"
	"tandycoco/asm6809/container"
	"tandycoco/asm6809/source"
)

func assemble(filename string, c *cli.Context) error {
	reader := source.NewFileReader(filepath.Dir(filename))
	lines, err := reader.ReadLines(filepath.Base(filename))
	if err != nil {
		lines, err = reader.ReadLines(filename)
		if err != nil {
			return cli.Exit(fmt.Sprintf("unable to read [%s]: %v", filename, err), 1)
		}
	}

	prog := asm.NewProgram(reader)
	if err := prog.Assemble(lines); err != nil {
		fmt.Println(err.Error())
		return cli.Exit("", 1)
	}

	if c.Bool("print") {
		width := c.Int("width")
		for _, s := range prog.GetStatements() {
			line := s.String()
			if width > 0 && len(line) > width {
				line = line[:width]
			}
			fmt.Println(line)
		}
	}

	if c.Bool("symbols") {
		fmt.Print(prog.GetSymbolTable())
	}

	binary := prog.GetBinaryArray()
	name := c.String("name")
	if name == "" {
		name = prog.Name
	}
	if name == "" {
		name = filepath.Base(filename)
	}

	payload := container.File{
		Name:     name,
		Type:     container.FileTypeObject,
		DataType: container.DataTypeBinary,
		LoadAddr: prog.Origin,
		ExecAddr: prog.ExecAddress,
		Data:     binary,
	}

	if path := c.String("bin_file"); path != "" {
		w := container.BinaryWriter{}
		if err := w.Write(path, payload, c.Bool("append")); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if path := c.String("cas_file"); path != "" {
		w := container.CassetteWriter{}
		if err := w.Write(path, payload, c.Bool("append")); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if path := c.String("dsk_file"); path != "" {
		w := container.DiskWriter{}
		if err := w.Write(path, payload, c.Bool("append")); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "asm6809"
	app.Usage = "Two-pass cross-assembler for the 6809/6309 (Tandy Color Computer)"
	app.ArgsUsage = "filename"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "symbols", Usage: "print the symbol table after assembly"},
		&cli.BoolFlag{Name: "print", Usage: "print the assembled listing"},
		&cli.StringFlag{Name: "bin_file", Usage: "save assembled program as a raw binary file"},
		&cli.StringFlag{Name: "cas_file", Usage: "save assembled program as a cassette (.CAS) file"},
		&cli.StringFlag{Name: "dsk_file", Usage: "save assembled program as a disk (.DSK) file"},
		&cli.StringFlag{Name: "name", Usage: "program name stored in the container, overrides NAM"},
		&cli.BoolFlag{Name: "append", Usage: "append to an existing container file instead of failing"},
		&cli.IntFlag{Name: "width", Value: 100, Usage: "truncate listing lines to this width"},
	}
	app.Action = func(c *cli.Context) error {
		if c.Args().Len() < 1 {
			return cli.Exit("no input file specified", 1)
		}
		return assemble(c.Args().First(), c)
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
