//go:build mage
// +build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir = "bin"
	tmpDir = "tmp"
)

// binaries and whether they need cgo (the sqlite driver does)
var binaries = []struct {
	name string
	pkg  string
	cgo  bool
}{
	{"shop-web", "./cmd/web", false},
	{"shop-api", "./cmd/api", true},
	{"shop-createtable", "./cmd/tools/createtable", true},
}

var Default = Dev

// Dev runs the API and the storefront side by side.
func Dev() error {
	mg.Deps(Tidy)
	fmt.Println("API on :8000, storefront on :3000 (Ctrl+C stops both)")
	errc := make(chan error, 2)
	go func() { errc <- RunAPI() }()
	go func() { errc <- RunWeb() }()
	return <-errc
}

func RunWeb() error {
	return sh.RunV("go", "run", "./cmd/web")
}

func RunAPI() error {
	return sh.RunV("go", "run", "./cmd/api")
}

// CreateTable migrates the database named by DB_DRIVER/DB_DSN.
func CreateTable() error {
	return sh.RunV("go", "run", "./cmd/tools/createtable")
}

func Build() error {
	mg.Deps(Tidy)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	for _, b := range binaries {
		out := filepath.Join(binDir, b.name+exeSuffix())
		fmt.Println("Building:", out)
		env := map[string]string{"CGO_ENABLED": "0"}
		if b.cgo {
			env["CGO_ENABLED"] = "1"
		}
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, b.pkg); err != nil {
			return err
		}
	}
	return nil
}

func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

func TestRace() error {
	fmt.Println("Testing with -race...")
	return sh.RunV("go", "test", "./...", "-race", "-count=1")
}

func Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-w", "./cmd", "./internal", "./pkg", "./templates", "./magefile.go")
}

func Lint() error {
	fmt.Println("Linting (golangci-lint)...")
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		return fmt.Errorf("golangci-lint not found. Install with: mage Tools")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

func Check() error {
	mg.Deps(Fmt, Lint, Test)
	fmt.Println("Check OK.")
	return nil
}

func Tidy() error {
	fmt.Println("Tidying go.mod/go.sum...")
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	fmt.Println("Cleaning...")
	_ = os.RemoveAll(binDir)
	_ = os.RemoveAll(tmpDir)
	return nil
}

// Tools installs golangci-lint.
func Tools() error {
	fmt.Println("Installing golangci-lint...")
	if err := sh.RunV("go", "install", "github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest"); err != nil {
		return err
	}
	if _, err := exec.LookPath("golangci-lint"); err != nil && !errors.Is(err, exec.ErrNotFound) {
		return err
	}
	fmt.Println("Tools installed. Ensure GOBIN/GOPATH/bin is in PATH.")
	return nil
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
