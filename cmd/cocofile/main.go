package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v2"

	"tandycoco/asm6809/container"
)

func openContainer(filename string) (container.Reader, []byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	reader := container.Detect(data)
	if reader == nil {
		return nil, nil, fmt.Errorf("unable to determine file type for file [%s]", filename)
	}
	return reader, data, nil
}

func listFiles(filename string) error {
	reader, data, err := openContainer(filename)
	if err != nil {
		return err
	}
	files, err := reader.ListFiles(data)
	if err != nil {
		return err
	}
	for i, f := range files {
		fmt.Printf("-- File #%d --\n", i+1)
		fmt.Println(f.String())
	}
	return nil
}

func extractToBinary(filename string, only []string, appendExisting bool) error {
	reader, data, err := openContainer(filename)
	if err != nil {
		return err
	}
	files, err := reader.ListFiles(data)
	if err != nil {
		return err
	}

	wanted := map[string]bool{}
	for _, name := range only {
		wanted[strings.ToUpper(strings.TrimSpace(name))] = true
	}

	for i, f := range files {
		name := strings.TrimRight(f.Name, "\x00 ")
		if len(wanted) > 0 && !wanted[strings.ToUpper(name)] {
			continue
		}
		outName := name + ".bin"
		fmt.Printf("-- File #%d [%s] --\n", i+1, name)
		if err := container.WriteBinaryFile(outName, f.Data, appendExisting); err != nil {
			fmt.Printf("Unable to save binary file [%s]: %v\n", outName, err)
			continue
		}
		fmt.Printf("Saved as %s\n", outName)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "cocofile"
	app.Usage = "List and extract files from CoCo cassette and disk container images"
	app.ArgsUsage = "host_filename"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "list", Usage: "list all files in the container"},
		&cli.BoolFlag{Name: "to_bin", Usage: "extract files from the container as .bin files"},
		&cli.StringSliceFlag{Name: "files", Usage: "names of files to extract (default: all)"},
		&cli.BoolFlag{Name: "append", Usage: "append to an existing output file instead of failing"},
	}
	app.Action = func(c *cli.Context) error {
		if c.Args().Len() < 1 {
			return cli.Exit("no host file specified", 1)
		}
		filename := c.Args().First()

		if c.Bool("list") {
			if err := listFiles(filename); err != nil {
				return cli.Exit(err.Error(), 1)
			}
		}

		if c.Bool("to_bin") {
			if err := extractToBinary(filename, c.StringSlice("files"), c.Bool("append")); err != nil {
				return cli.Exit(err.Error(), 1)
			}
		}

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
