package main

import (
	"os"

	"github.com/pescuma/go-build"
)

// Usage: go run build.go [check|release]
func main() {
	cfg := build.NewBuilderConfig()
	cfg.Archs = []string{
		"darwin/amd64",
		"darwin/arm64",
		"linux/amd64",
		"linux/arm64",
		"windows/amd64",
	}

	b, err := build.NewBuilder(cfg)
	if err != nil {
		panic(err)
	}

	b.Targets.Add("check", []string{"license-check", "test"}, nil)
	b.Targets.Add("release", []string{"license-check", "test", "build", "zip"}, nil)

	target := "release"
	if len(os.Args) > 1 {
		target = os.Args[1]
	}

	err = b.RunTarget(target)
	if err != nil {
		panic(err)
	}
}
