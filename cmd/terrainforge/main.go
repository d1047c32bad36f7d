// Command terrainforge is the CLI entry point for the terrain generation
// pipeline.
package main

import "terrainforge/internal/cmd"

func main() {
	cmd.Execute()
}
