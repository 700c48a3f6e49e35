// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build mage
// +build mage

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/livekit/mageutil"
	_ "github.com/maxbrunsfeld/counterfeiter/v6/generator"
)

const goChecksumFile = ".checksumgo"

// Default target to run when none is specified
// If not set, running mage will list available targets
var (
	Default     = Build
	checksummer = mageutil.NewChecksummer(".", goChecksumFile, ".go", ".mod")
)

func init() {
	checksummer.IgnoredPaths = []string{
		"pkg/connectivity/connectivityfakes",
		"pkg/hammer/hammerfakes",
		"pkg/session/sessionfakes",
		"pkg/transport/transportfakes",
	}
}

// explicitly reinstall all deps
func Deps() error {
	return installTools(true)
}

// builds the hammer binary
func Build() error {
	if !checksummer.IsChanged() {
		fmt.Println("up to date")
		return nil
	}

	fmt.Println("building...")
	if err := os.MkdirAll("bin", 0755); err != nil {
		return err
	}
	if err := mageutil.RunDir(context.Background(), "cmd/hammer", "go build -o ../../bin/livekit-hammer"); err != nil {
		return err
	}

	checksummer.WriteChecksum()
	return nil
}

// run unit tests
func Test() error {
	mg.Deps(setULimit)
	return mageutil.Run(context.Background(), "go test -race ./... -count=1")
}

// cleans up builds
func Clean() {
	fmt.Println("cleaning...")
	os.RemoveAll("bin")
	os.Remove(goChecksumFile)
}

// regenerate fakes
func Generate() error {
	mg.Deps(installDeps)

	fmt.Println("generating...")
	return mageutil.Run(context.Background(), "go generate ./...")
}

// implicitly install deps
func installDeps() error {
	return installTools(false)
}

func installTools(force bool) error {
	tools := map[string]string{
		"github.com/maxbrunsfeld/counterfeiter/v6": "v6.6.1",
	}
	for t, v := range tools {
		if err := mageutil.InstallTool(t, v, force); err != nil {
			return err
		}
	}
	return nil
}
