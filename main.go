package main

import (
	"os"

	"svgsmith/cmd"
)

// @title        SVGSmith API
// @version      1.0
// @description  AI 驱动的 SVG 与图标集生成服务
// @BasePath     /
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
