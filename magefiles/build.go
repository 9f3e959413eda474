//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Tidies the module and builds the vignette binary into bin/.
func (Build) Binary() error {
	mg.Deps(goTidy)
	return goCmd([]string{"build", "-o", binaryPath, "."}, streamed())
}

// Vets every package.
func (Build) Vet() error {
	return goCmd([]string{"vet", "./..."}, streamed())
}
