//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pmzi/WordSmith/internal"
)

const binary = "ws"

const ldflags = "-s -w"

// Default target to run when none is specified
var Default = Build

// Build compiles ws into ./bin
func Build() error {
	mg.Deps(Vet)
	fmt.Println("Building", binary, internal.Version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", filepath.Join("bin", binary), "./cmd/ws")
}

// Test runs all tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs ws into $GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "-ldflags", ldflags, "./cmd/ws")
}

// Clean removes build output
func Clean() error {
	return os.RemoveAll("bin")
}
