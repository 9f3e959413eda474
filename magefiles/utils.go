//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryPath = "bin/vignette"
	configFile = "vignette.toml"
)

type goOptions struct {
	env    map[string]string
	stream bool
}

type goOption func(*goOptions)

func withEnv(key, value string) goOption {
	return func(o *goOptions) {
		if o.env == nil {
			o.env = map[string]string{}
		}
		o.env[key] = value
	}
}

func streamed() goOption {
	return func(o *goOptions) {
		o.stream = true
	}
}

// goCmd runs the go tool picked by mage. Captured output is only printed
// when the command fails, unless it is streamed or mage runs with -v.
func goCmd(args []string, options ...goOption) error {
	opts := &goOptions{}
	for _, o := range options {
		o(opts)
	}

	fmt.Printf("Executing: go %s\n", strings.Join(args, " "))
	stream := mg.Verbose() || opts.stream

	var b bytes.Buffer
	var stdout, stderr io.Writer = &b, &b
	if stream {
		stdout, stderr = os.Stdout, os.Stderr
	}
	if _, err := sh.Exec(opts.env, stdout, stderr, mg.GoCmd(), args...); err != nil {
		if !stream {
			fmt.Println("... failed command output:")
			fmt.Println(b.String())
		}
		return fmt.Errorf("go %s failed: %w", args[0], err)
	}
	return nil
}

func goTidy() error {
	if err := goCmd([]string{"mod", "tidy"}); err != nil {
		return fmt.Errorf("failed to run go mod tidy: %w", err)
	}
	return nil
}

func goTest(flags ...string) error {
	args := append([]string{"test"}, flags...)
	return goCmd(append(args, "./..."), streamed(), withEnv("CGO_ENABLED", "1"))
}

// runTestbed runs the main package with the shipped config. Environment
// overrides use the VIGNETTE_ prefix understood by the config loader.
func runTestbed(env map[string]string, flags ...string) error {
	options := []goOption{streamed()}
	for k, v := range env {
		options = append(options, withEnv(k, v))
	}
	args := append([]string{"run", ".", "-config", configFile}, flags...)
	return goCmd(args, options...)
}
