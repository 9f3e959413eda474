//go:build mage

package main

import (
	"fmt"
	"strconv"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed on a GLFW window with the Vulkan renderer.
func (Run) Testbed() error {
	fmt.Println("Run testbed...")
	return runTestbed(nil)
}

// Runs the testbed on a GLFW window with Vulkan validation and the debug overlay.
func (Run) Debug() error {
	fmt.Println("Run testbed with validation...")
	return runTestbed(map[string]string{
		"VIGNETTE_GRAPHICS_VALIDATION": "true",
		"VIGNETTE_DEBUG_OVERLAY":       "true",
		"VIGNETTE_LOG_LEVEL":           "debug",
	})
}

// Runs the testbed without a window for the given number of frames.
func (Run) Headless(frames int) error {
	fmt.Printf("Run testbed headless for %d frames...\n", frames)
	return runTestbed(nil, "-headless", "-frames", strconv.Itoa(frames))
}

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	return goTest()
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	return goTest("-race")
}
