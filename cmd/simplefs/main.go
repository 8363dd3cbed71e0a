package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/augustgold/simplefs"
	"github.com/augustgold/simplefs/disk"
	"github.com/augustgold/simplefs/presets"
)

const copyChunkSize = 16384

func main() {
	app := &cli.App{
		Name:      "simplefs",
		Usage:     "Format, mount, and inspect SimpleFS disk images",
		ArgsUsage: "<diskfile> <nblocks>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "preset",
				Usage: fmt.Sprintf("use a named disk size instead of <nblocks>: %s", strings.Join(presets.Names(), ", ")),
			},
		},
		Action: runShell,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func runShell(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("use: simplefs [--preset NAME] <diskfile> [nblocks]", 1)
	}

	path := c.Args().Get(0)

	var nblocks int
	if preset := c.String("preset"); preset != "" {
		blocks, err := presets.Lookup(preset)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		nblocks = int(blocks)
	} else {
		if c.Args().Len() < 2 {
			return cli.Exit("use: simplefs <diskfile> <nblocks>", 1)
		}
		n, err := strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid nblocks %q", c.Args().Get(1)), 1)
		}
		nblocks = n
	}

	device, err := disk.InitFileDevice(path, nblocks)
	if err != nil {
		return cli.Exit(fmt.Sprintf("couldn't initialize %s: %s", path, err), 1)
	}
	defer device.Close()

	fs := simplefs.New(device)
	fmt.Printf("opened emulated disk image %s with %d blocks\n", path, device.Size())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(" simplefs> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := fields[1:]

		switch cmd {
		case "format":
			if fs.Format() {
				fmt.Println("disk formatted.")
			} else {
				fmt.Println("format failed!")
			}

		case "mount":
			if fs.Mount() {
				fmt.Println("disk mounted.")
			} else {
				fmt.Println("mount failed!")
			}

		case "debug":
			fs.Debug()

		case "validate":
			if err := fs.Validate(); err != nil {
				fmt.Printf("inconsistent:\n%s\n", err)
			} else {
				fmt.Println("consistent.")
			}

		case "defrag":
			if fs.Defragment() {
				fmt.Println("disk defragmented.")
			} else {
				fmt.Println("defragment failed!")
			}

		case "getsize":
			if len(args) != 1 {
				fmt.Println("use: getsize <inumber>")
				continue
			}
			inumber, _ := strconv.Atoi(args[0])
			if result := fs.GetSize(inumber); result >= 0 {
				fmt.Printf("inode %d has size %d\n", inumber, result)
			} else {
				fmt.Println("getsize failed!")
			}

		case "create":
			if inumber := fs.Create(); inumber > 0 {
				fmt.Printf("created inode %d\n", inumber)
			} else {
				fmt.Println("create failed!")
			}

		case "delete":
			if len(args) != 1 {
				fmt.Println("use: delete <inumber>")
				continue
			}
			inumber, _ := strconv.Atoi(args[0])
			if fs.Delete(inumber) {
				fmt.Printf("inode %d deleted.\n", inumber)
			} else {
				fmt.Println("delete failed!")
			}

		case "cat":
			if len(args) != 1 {
				fmt.Println("use: cat <inumber>")
				continue
			}
			inumber, _ := strconv.Atoi(args[0])
			if !copyOutToWriter(fs, inumber, os.Stdout) {
				fmt.Println("cat failed!")
			}

		case "copyin":
			if len(args) != 2 {
				fmt.Println("use: copyin <filename> <inumber>")
				continue
			}
			inumber, _ := strconv.Atoi(args[1])
			if copyIn(fs, args[0], inumber) {
				fmt.Printf("copied file %s to inode %d\n", args[0], inumber)
			} else {
				fmt.Println("copy failed!")
			}

		case "copyout":
			if len(args) != 2 {
				fmt.Println("use: copyout <inumber> <filename>")
				continue
			}
			inumber, _ := strconv.Atoi(args[0])
			if copyOut(fs, inumber, args[1]) {
				fmt.Printf("copied inode %d to file %s\n", inumber, args[1])
			} else {
				fmt.Println("copy failed!")
			}

		case "help":
			printHelp()

		case "quit", "exit":
			fmt.Println("closing emulated disk.")
			return nil

		default:
			fmt.Printf("unknown command: %s\n", cmd)
			fmt.Println("type 'help' for a list of commands.")
		}
	}

	fmt.Println("closing emulated disk.")
	return nil
}

func printHelp() {
	fmt.Println("Commands are:")
	fmt.Println("    format")
	fmt.Println("    mount")
	fmt.Println("    debug")
	fmt.Println("    validate")
	fmt.Println("    defrag")
	fmt.Println("    create")
	fmt.Println("    delete  <inode>")
	fmt.Println("    cat     <inode>")
	fmt.Println("    copyin  <file> <inode>")
	fmt.Println("    copyout <inode> <file>")
	fmt.Println("    getsize <inode>")
	fmt.Println("    help")
	fmt.Println("    quit")
	fmt.Println("    exit")
}

func copyIn(fs *simplefs.FileSystem, filename string, inumber int) bool {
	file, err := os.Open(filename)
	if err != nil {
		fmt.Printf("couldn't open %s: %s\n", filename, err)
		return false
	}
	defer file.Close()

	buffer := make([]byte, copyChunkSize)
	offset := 0
	for {
		n, readErr := file.Read(buffer)
		if n > 0 {
			actual := fs.Write(inumber, buffer[:n], n, offset)
			offset += actual
			if actual != n {
				fmt.Printf("WARNING: write only wrote %d bytes, not %d bytes\n", actual, n)
				break
			}
		}
		if readErr != nil {
			break
		}
	}

	fmt.Printf("%d bytes copied\n", offset)
	return true
}

func copyOut(fs *simplefs.FileSystem, inumber int, filename string) bool {
	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("couldn't open %s: %s\n", filename, err)
		return false
	}
	defer file.Close()
	return copyOutToWriter(fs, inumber, file)
}

func copyOutToWriter(fs *simplefs.FileSystem, inumber int, w interface{ Write([]byte) (int, error) }) bool {
	buffer := make([]byte, copyChunkSize)
	offset := 0
	for {
		n := fs.Read(inumber, buffer, len(buffer), offset)
		if n <= 0 {
			break
		}
		w.Write(buffer[:n])
		offset += n
	}
	fmt.Printf("%d bytes copied\n", offset)
	return true
}
