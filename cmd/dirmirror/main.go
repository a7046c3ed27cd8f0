// Command dirmirror keeps a replica folder identical to a source folder.
package main

import "github.com/bolasblack/dirmirror/internal/cli"

func main() {
	cli.Execute()
}
