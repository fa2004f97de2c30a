// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"os/user"

	"fwdgen/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the fwd REPL, %s!\n", currentUser.Username)
	fmt.Println("Type a declaration such as 'fn len(&self) -> usize to self.items'; prefix it with 'pub ' for pub methods.")
	repl.Start(os.Stdin, os.Stdout)
}
