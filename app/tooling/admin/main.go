// This program performs administrative tasks for the word chain miner.
package main

import "github.com/ardanlabs/wordchain/app/tooling/admin/cmd"

func main() {
	cmd.Execute()
}
