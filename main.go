// SPDX-License-Identifier: MPL-2.0

// Command meow is a build backend for compiled Python extensions.
package main

import "github.com/typefriend/meow/cmd/meow"

func main() {
	cmd.Execute()
}
