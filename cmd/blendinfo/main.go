// Command blendinfo is a thin demo front-end over the blend package: an
// illustration of the programmatic surface, not part of the decoder itself.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ozono/pyblenderfile"
)

const usage = `blendinfo - inspect a save file's embedded schema and object graph

Usage:
  blendinfo info <file>                 Show header and schema summary
  blendinfo list <file> [<type>]        List materialized objects, optionally filtered by type
  blendinfo doc [-dev] <file>           Render the schema as HTML to stdout
  blendinfo help                        Show this help message
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	var err error

	switch cmd {
	case "info":
		if len(os.Args) < 3 {
			err = fmt.Errorf("missing file path")
		} else {
			err = showInfo(os.Args[2])
		}
	case "list":
		if len(os.Args) < 3 {
			err = fmt.Errorf("missing file path")
		} else {
			typeName := ""
			if len(os.Args) > 3 {
				typeName = os.Args[3]
			}
			err = listObjects(os.Args[2], typeName)
		}
	case "doc":
		fs := flag.NewFlagSet("doc", flag.ExitOnError)
		dev := fs.Bool("dev", false, "include block index in the rendered doc")
		fs.Parse(os.Args[2:])
		if fs.NArg() < 1 {
			err = fmt.Errorf("missing file path")
		} else {
			err = renderDoc(fs.Arg(0), *dev)
		}
	case "help":
		fmt.Print(usage)
	default:
		fmt.Printf("Error: unknown command %q\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func showInfo(path string) error {
	bf, err := blend.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	h := bf.Header()
	fmt.Println("Save file information")
	fmt.Println("=====================")
	fmt.Printf("Magic:          %s\n", h.Magic)
	fmt.Printf("Pointer width:  %d bytes\n", h.PointerWidth)
	fmt.Printf("Version:        %s\n", h.Version)
	fmt.Printf("Structures:     %d\n", len(bf.Schema().Structures))
	fmt.Printf("Objects:        %d\n", len(bf.AllObjects()))

	return nil
}

func listObjects(path, typeName string) error {
	bf, err := blend.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	objs := bf.AllObjects()
	if typeName != "" {
		objs = bf.ObjectsOfType(typeName)
	}

	for _, o := range objs {
		fmt.Printf("%s @0x%x\n", o.TypeName, o.OldAddress)
	}

	return nil
}

func renderDoc(path string, dev bool) error {
	bf, err := blend.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	fmt.Println(bf.RenderDoc(dev))
	return nil
}
