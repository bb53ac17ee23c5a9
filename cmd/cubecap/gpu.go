//go:build !nogpu

package main

// Register gg's GPU accelerator. Without a usable adapter gg stays on the
// CPU rasterizer.
import _ "github.com/gogpu/gg/gpu"
