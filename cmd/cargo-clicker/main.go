// Package main provides the CLI entrypoint for cargo-clicker.
package main

func main() {
	Execute()
}
