// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/tidyfs/tidyfs/cmd/tidyfs"

func main() {
	cmd.Execute()
}
